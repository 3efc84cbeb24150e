// Package main provides the elevenlabs CLI tool.
//
// Usage:
//
//	elevenlabs [flags] <service> <command> [args]
//
// Services:
//
//	tts      - Text-to-speech synthesis
//	voices   - Voice management
//	models   - Model listing
//	user     - Account information
//	history  - Generation history
//	stt      - Speech-to-text transcription
//	sound    - Sound effect generation
//	agents   - Conversational AI agents
//	config   - Configuration management
//
// Configuration:
//
//	The CLI stores configuration in ~/.elevenlabs/config.yaml
//	Use 'elevenlabs config' commands to manage contexts.
package main

import (
	"os"

	"github.com/longcipher/elevenlabs-go/cmd/elevenlabs/commands"
	"github.com/longcipher/elevenlabs-go/pkg/cli"
)

func main() {
	if err := commands.Execute(); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
