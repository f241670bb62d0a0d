package log

import (
	"bytes"
	"os"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetLevel(None)

	SetLevel(Info)
	Debugf("debug %d", 1)
	Infof("info %d", 2)

	if have := buf.String(); have != "info 2\n" {
		t.Errorf("unexpected output. want=%q have=%q", "info 2\n", have)
	}

	if Enabled(Debug) {
		t.Errorf("expected debug level to be disabled")
	}
	if !Enabled(Info) {
		t.Errorf("expected info level to be enabled")
	}

	buf.Reset()
	SetLevel(None)
	Infof("hidden")
	Printf("always")

	if have := buf.String(); have != "always\n" {
		t.Errorf("unexpected output. want=%q have=%q", "always\n", have)
	}
}
