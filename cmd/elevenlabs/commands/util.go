package commands

import (
	"fmt"
	"time"

	"github.com/longcipher/elevenlabs-go/pkg/cli"
	"github.com/longcipher/elevenlabs-go/pkg/elevenlabs"
)

// loadRequest loads a request from a YAML or JSON file
func loadRequest(path string, v any) error {
	return cli.LoadRequest(path, v)
}

// outputBytes outputs binary data to a file
func outputBytes(data []byte, outputPath string) error {
	return cli.OutputBytes(data, outputPath)
}

// printSuccess prints a success message
func printSuccess(format string, args ...any) {
	cli.PrintSuccess(format, args...)
}

// requireInputFile checks if input file is provided
func requireInputFile() error {
	if getInputFile() == "" {
		return fmt.Errorf("input file is required, use -f flag")
	}
	return nil
}

// formatBytes formats bytes to human readable string
func formatBytes(bytes int) string {
	return cli.FormatBytesInt(bytes)
}

// createClient creates an ElevenLabs API client from context configuration
func createClient(ctx *cli.Context) *elevenlabs.Client {
	var opts []elevenlabs.Option

	if ctx.BaseURL != "" {
		opts = append(opts, elevenlabs.WithBaseURL(ctx.BaseURL))
	}
	if ctx.Timeout > 0 {
		opts = append(opts, elevenlabs.WithTimeout(time.Duration(ctx.Timeout)*time.Second))
	}
	if ctx.MaxRetries > 0 {
		opts = append(opts, elevenlabs.WithMaxRetries(ctx.MaxRetries))
	}

	return elevenlabs.NewClient(ctx.APIKey, opts...)
}
