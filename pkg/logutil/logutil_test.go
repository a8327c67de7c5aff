package logutil

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetOutput(t *testing.T) {
	logger := GetLogger("[test] ")
	defer SetOutput(io.Discard)

	var sb strings.Builder
	SetOutput(&sb)
	logger.Println("hello")

	if got := sb.String(); !strings.Contains(got, "[test] hello") {
		t.Errorf("got log %q, want it to contain %q", got, "[test] hello")
	}
}

func TestSetOutputFile(t *testing.T) {
	logger := GetLogger("[test] ")
	defer SetOutput(io.Discard)

	fname := filepath.Join(t.TempDir(), "log")
	if err := SetOutputFile(fname); err != nil {
		t.Fatal(err)
	}
	logger.Println("to file")
	SetOutput(io.Discard)

	content, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "[test] to file") {
		t.Errorf("got file content %q", content)
	}
}
