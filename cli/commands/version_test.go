package commands

import (
	"bytes"
	"encoding/json"
	"runtime"
	"strings"
	"testing"
)

func TestVersionVariables(t *testing.T) {
	// Verify default values are set
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if Commit == "" {
		t.Error("Commit should not be empty")
	}
	if BuildDate == "" {
		t.Error("BuildDate should not be empty")
	}
}

func TestVersionCommand(t *testing.T) {
	var stdout bytes.Buffer
	app := newTestApp(t, nil, strings.NewReader(""), &stdout, &bytes.Buffer{})
	app.SetArgs([]string{"version"})

	if err := app.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	out := stdout.String()
	if !strings.HasPrefix(out, "mandala "+Version+"\n") {
		t.Errorf("output = %q, want prefix %q", out, "mandala "+Version)
	}
	if !strings.Contains(out, runtime.GOOS+"/"+runtime.GOARCH) {
		t.Errorf("output missing platform: %q", out)
	}
}

func TestVersionCommandJSON(t *testing.T) {
	var stdout bytes.Buffer
	app := newTestApp(t, nil, strings.NewReader(""), &stdout, &bytes.Buffer{})
	app.SetArgs([]string{"version", "--json"})

	if err := app.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var info versionInfo
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout.String(), err)
	}
	if info.Version != Version || info.GoVersion != runtime.Version() {
		t.Errorf("info = %+v", info)
	}
}
