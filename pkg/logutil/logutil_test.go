package logutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	t.Cleanup(func() { SetOutput(io.Discard) })

	logger := GetLogger("[foo] ")
	// Discarded.
	logger.Println("before")

	var buf bytes.Buffer
	SetOutput(&buf)
	logger.Println("hello")
	GetLogger("[bar] ").Println("world")

	got := buf.String()
	if strings.Contains(got, "before") {
		t.Errorf("output contains message logged before SetOutput: %q", got)
	}
	for _, want := range []string{"[foo] ", "hello", "[bar] ", "world"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q does not contain %q", got, want)
		}
	}
}

func TestSetOutputFile(t *testing.T) {
	t.Cleanup(func() { SetOutput(io.Discard) })

	fname := filepath.Join(t.TempDir(), "log")
	logger := GetLogger("[file] ")
	if err := SetOutputFile(fname); err != nil {
		t.Fatal(err)
	}
	logger.Println("to file")
	if err := SetOutputFile(""); err != nil {
		t.Fatal(err)
	}
	logger.Println("discarded")

	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[file] ") || !strings.Contains(string(data), "to file") {
		t.Errorf("log file content %q, want message", data)
	}
	if strings.Contains(string(data), "discarded") {
		t.Errorf("log file content %q contains message logged after reset", data)
	}
}

func TestSetOutputFile_BadPath(t *testing.T) {
	err := SetOutputFile(filepath.Join(t.TempDir(), "no", "such", "dir", "log"))
	if err == nil {
		t.Errorf("SetOutputFile with bad path returned nil error")
	}
}
