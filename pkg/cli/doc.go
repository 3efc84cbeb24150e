// Package cli provides common utilities for the elevenlabs command-line
// tool.
//
// This package includes:
//   - Configuration management (contexts)
//   - Output formatting (JSON, YAML, raw)
//   - Request file loading (YAML/JSON)
//
// Configuration is stored in ~/.elevenlabs/config.yaml, supporting
// multiple contexts similar to kubectl.
//
// Example usage:
//
//	cfg, err := cli.LoadConfig()
//
//	ctx, err := cfg.GetCurrentContext()
//
//	cli.Output(result, cli.OutputOptions{
//	    Format: cli.FormatJSON,
//	    File:   outputPath,
//	})
package cli
