package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestDebugOnlyWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})

	SetVerbose(false)
	Debug("hidden %d", 1)
	if buf.Len() != 0 {
		t.Errorf("output written while verbose off: %q", buf.String())
	}

	SetVerbose(true)
	Debug("shown %d", 2)
	Warn("careful")
	Info("done")

	out := buf.String()
	for _, want := range []string{"[DEBUG] shown 2", "[WARN] careful", "[INFO] done"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
