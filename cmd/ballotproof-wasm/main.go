//go:build js && wasm

// Command ballotproof-wasm exposes the ballot proof input generator to
// JavaScript environments. It registers a BallotProofWasm class with a
// single proofInputs(json) method and then blocks forever, as required for
// wasm programs.
package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/vocdoni/davinci-sdk-go/ballotproof"
)

const (
	jsClassName         = "BallotProofWasm"
	jsBallotProofInputs = "proofInputs"
	nArgs               = 1 // JSON string with BallotProofInputs
)

func generateProofInputs(args []js.Value) any {
	if len(args) != nArgs {
		return JSResult(nil, fmt.Errorf("invalid number of arguments, expected %d got %d", nArgs, len(args)))
	}
	// parse the inputs from the first argument
	inputs, err := FromJSONValue[ballotproof.BallotProofInputs](args[0])
	if err != nil {
		return JSResult(nil, fmt.Errorf("invalid inputs: %v", err))
	}
	// generate the circom inputs
	result, err := ballotproof.GenerateBallotProofInputs(&inputs)
	if err != nil {
		return JSResult(nil, fmt.Errorf("error generating ballot proof inputs: %v", err))
	}
	// encode result to json to return it
	bRes, err := json.Marshal(result)
	if err != nil {
		return JSResult(nil, fmt.Errorf("error encoding result: %v", err))
	}
	return JSResult(string(bRes))
}

func main() {
	class := js.ValueOf(map[string]any{})
	class.Set(jsBallotProofInputs, js.FuncOf(func(this js.Value, args []js.Value) any {
		return generateProofInputs(args)
	}))
	js.Global().Set(jsClassName, class)
	// keep the wasm instance alive
	select {}
}
