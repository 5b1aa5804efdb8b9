// Command davinci-ballotproof reads a ballot proof inputs JSON document and
// emits the witness inputs for the circom ballot validity circuit along
// with the data required to cast the vote through the sequencer API.
package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/vocdoni/davinci-sdk-go/ballotproof"
	"github.com/vocdoni/davinci-sdk-go/log"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	log.Init(cfg.Log.Level, cfg.Log.Output)

	data, err := readInput(cfg.Input)
	if err != nil {
		log.Fatalf("failed to read inputs: %v", err)
	}

	inputs := &ballotproof.BallotProofInputs{}
	if err := json.Unmarshal(data, inputs); err != nil {
		log.Fatalf("failed to parse inputs: %v", err)
	}
	log.Debugw("generating ballot proof inputs",
		"processID", inputs.ProcessID.String(),
		"numFields", len(inputs.FieldValues),
	)

	result, err := ballotproof.GenerateBallotProofInputs(inputs)
	if err != nil {
		log.Fatalf("failed to generate ballot proof inputs: %v", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode result: %v", err)
	}
	if err := writeOutput(cfg.Output, out); err != nil {
		log.Fatalf("failed to write result: %v", err)
	}
	log.Infow("ballot proof inputs generated", "voteID", result.VoteID.String())
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	data = append(data, '\n')
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
