package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("json handler at debug", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(&buf, "json", true)
		log.Debug("markers set", "file", "a.test")
		if !strings.Contains(buf.String(), `"msg":"markers set"`) {
			t.Errorf("expected json output, got %q", buf.String())
		}
	})

	t.Run("text handler drops debug when not verbose", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(&buf, "text", false)
		log.Debug("hidden")
		log.Warn("shown")
		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("expected debug line to be dropped, got %q", out)
		}
		if !strings.Contains(out, "msg=shown") {
			t.Errorf("expected warn line, got %q", out)
		}
	})
}
