package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	err := Output(map[string]any{"voice_id": "v1"}, OutputOptions{
		Format: FormatJSON,
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["voice_id"] != "v1" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestOutputYAMLDefault(t *testing.T) {
	var buf bytes.Buffer
	err := Output(map[string]string{"name": "Rachel"}, OutputOptions{
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}
	if !strings.Contains(buf.String(), "name: Rachel") {
		t.Errorf("yaml output = %q", buf.String())
	}
}

func TestOutputRaw(t *testing.T) {
	var buf bytes.Buffer
	err := Output([]byte("raw-bytes"), OutputOptions{
		Format: FormatRaw,
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}
	if buf.String() != "raw-bytes" {
		t.Errorf("raw output = %q", buf.String())
	}
}

func TestOutputUnsupportedFormat(t *testing.T) {
	err := Output("x", OutputOptions{Format: "xml", Writer: &bytes.Buffer{}})
	if err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestOutputToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	err := Output(map[string]string{"k": "v"}, OutputOptions{
		Format: FormatJSON,
		File:   path,
	})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output file: %v", err)
	}
	if !strings.Contains(string(data), `"k": "v"`) {
		t.Errorf("file content = %q", data)
	}
}

func TestOutputBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.mp3")
	if err := OutputBytes([]byte("audio"), path); err != nil {
		t.Fatalf("OutputBytes error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "audio" {
		t.Errorf("file content = %q", data)
	}

	if err := OutputBytes([]byte("x"), ""); err == nil {
		t.Error("empty path should error")
	}
}

func TestPrintHelpers(t *testing.T) {
	capture := func(f func()) string {
		t.Helper()
		old := os.Stdout
		r, w, err := os.Pipe()
		if err != nil {
			t.Fatalf("pipe: %v", err)
		}
		os.Stdout = w
		f()
		w.Close()
		os.Stdout = old
		var buf bytes.Buffer
		buf.ReadFrom(r)
		return buf.String()
	}

	if got := capture(func() { PrintSuccess("saved %s", "out.mp3") }); got != "✓ saved out.mp3\n" {
		t.Errorf("PrintSuccess output = %q", got)
	}
	if got := capture(func() { PrintInfo("more after %s", "item1") }); got != "ℹ more after item1\n" {
		t.Errorf("PrintInfo output = %q", got)
	}
	// Error and verbose output go to stderr, keeping stdout pipeable.
	if got := capture(func() { PrintError("boom") }); got != "" {
		t.Errorf("PrintError wrote to stdout: %q", got)
	}
	if got := capture(func() { PrintVerbose(true, "ctx %s", "dev") }); got != "" {
		t.Errorf("PrintVerbose wrote to stdout: %q", got)
	}
}

func TestParseRequest(t *testing.T) {
	type req struct {
		Text    string `json:"text" yaml:"text"`
		ModelID string `json:"model_id" yaml:"model_id"`
	}

	var fromYAML req
	if err := ParseRequest([]byte("text: hello\nmodel_id: m1\n"), "req.yaml", &fromYAML); err != nil {
		t.Fatalf("ParseRequest yaml: %v", err)
	}
	if fromYAML.Text != "hello" || fromYAML.ModelID != "m1" {
		t.Errorf("yaml parsed = %+v", fromYAML)
	}

	var fromJSON req
	if err := ParseRequest([]byte(`{"text": "hi", "model_id": "m2"}`), "req.json", &fromJSON); err != nil {
		t.Fatalf("ParseRequest json: %v", err)
	}
	if fromJSON.Text != "hi" {
		t.Errorf("json parsed = %+v", fromJSON)
	}

	var sniffed req
	if err := ParseRequest([]byte(`{"text": "sniffed"}`), "req.txt", &sniffed); err != nil {
		t.Fatalf("ParseRequest sniff: %v", err)
	}
	if sniffed.Text != "sniffed" {
		t.Errorf("sniffed = %+v", sniffed)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.00 KB"},
		{3 * 1024 * 1024, "3.00 MB"},
		{5 * 1024 * 1024 * 1024, "5.00 GB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatQuota(t *testing.T) {
	if got := FormatQuota(1200, 10000); got != "1.2k/10.0k" {
		t.Errorf("FormatQuota = %q", got)
	}
	if got := FormatQuota(500, 2_000_000); got != "500/2.0M" {
		t.Errorf("FormatQuota = %q", got)
	}
}
