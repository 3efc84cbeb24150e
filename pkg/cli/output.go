package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// OutputFormat selects how a structured result is rendered.
type OutputFormat string

const (
	// FormatYAML renders YAML, the default for terminal use.
	FormatYAML OutputFormat = "yaml"
	// FormatJSON renders indented JSON for piping into jq and friends.
	FormatJSON OutputFormat = "json"
	// FormatRaw writes byte and string results verbatim.
	FormatRaw OutputFormat = "raw"
)

// OutputOptions selects the renderer and destination for Output.
type OutputOptions struct {
	// Format picks the renderer. Empty means FormatYAML.
	Format OutputFormat

	// File is the destination path. Empty writes to stdout.
	File string

	// Writer overrides File when set.
	Writer io.Writer
}

// Output renders result and writes it to the configured destination.
func Output(result any, opts OutputOptions) error {
	w := io.Writer(os.Stdout)
	switch {
	case opts.Writer != nil:
		w = opts.Writer
	case opts.File != "":
		f, err := os.Create(opts.File)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch opts.Format {
	case FormatYAML, "":
		return writeYAML(w, result)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case FormatRaw:
		switch v := result.(type) {
		case []byte:
			_, err := w.Write(v)
			return err
		case string:
			_, err := io.WriteString(w, v)
			return err
		default:
			return writeYAML(w, result)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}
}

func writeYAML(w io.Writer, result any) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// OutputBytes writes binary data, typically audio, to a file. Binary
// results never go to stdout.
func OutputBytes(data []byte, path string) error {
	if path == "" {
		return fmt.Errorf("output file path is required for binary data")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// PrintSuccess prints a success message with checkmark.
func PrintSuccess(format string, args ...any) {
	fmt.Printf("✓ "+format+"\n", args...)
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// PrintInfo prints an informational hint.
func PrintInfo(format string, args ...any) {
	fmt.Printf("ℹ "+format+"\n", args...)
}

// PrintVerbose prints to stderr when verbose mode is on, keeping
// stdout clean for pipeable output.
func PrintVerbose(verbose bool, format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}
