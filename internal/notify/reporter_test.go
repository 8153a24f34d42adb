package notify

import (
	"bytes"
	"testing"
)

func TestReporter_Show(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Show("Could not find VRChat log.")

	if got := buf.String(); got != "Could not find VRChat log.\n" {
		t.Errorf("output = %q", got)
	}
}

func TestReporter_Quiet(t *testing.T) {
	tests := []struct {
		name     string
		terminal bool
		want     string
	}{
		{"terminal rings bell", true, "\a"},
		{"non-terminal stays silent", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := NewReporter(&buf,
				WithQuiet(true),
				WithTerminalCheck(func() bool { return tt.terminal }),
			)

			r.Show("Could not find visits from VRChat log.")

			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsTerminal_Buffer(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("bytes.Buffer reported as terminal")
	}
}
