package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		verbose   bool
		wantDebug bool
	}{
		{false, false},
		{true, true},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		log := New(&buf, tt.verbose)
		log.Debug("placing component", zap.String("id", "pdf-tools"))
		log.Warn("backup skipped")
		_ = log.Sync()

		out := buf.String()
		if got := strings.Contains(out, "placing component"); got != tt.wantDebug {
			t.Errorf("verbose=%v: debug written = %v, want %v\n%s", tt.verbose, got, tt.wantDebug, out)
		}
		if !strings.Contains(out, "backup skipped") {
			t.Errorf("verbose=%v: warning missing\n%s", tt.verbose, out)
		}
	}
}
