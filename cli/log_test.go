package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLogConfig_Scan(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want logConfig
	}{
		{
			name: "separate values",
			args: []string{"--log-level", "debug", "--log-format", "json", "show"},
			want: logConfig{Level: "debug", Format: "json", Pretty: true},
		},
		{
			name: "assigned values",
			args: []string{"--log-level=warn", "--log-time-layout=kitchen"},
			want: logConfig{Level: "warn", TimeLayout: "kitchen", Pretty: true},
		},
		{
			name: "negated booleans",
			args: []string{"--log-caller", "--no-log-pretty"},
			want: logConfig{Caller: true},
		},
		{
			name: "explicit boolean",
			args: []string{"--log-pretty=false", "--log-caller=true"},
			want: logConfig{Caller: true},
		},
		{
			name: "stops at terminator",
			args: []string{"--", "--log-level", "error"},
			want: logConfig{Pretty: true},
		},
		{
			name: "flag as value is not consumed",
			args: []string{"--log-level", "--log-caller"},
			want: logConfig{Caller: true, Pretty: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := logConfig{Pretty: true}
			got.scan(tt.args)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("scan() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanBool(t *testing.T) {
	tests := []struct {
		name, value string
		assigned    bool
		want, ok    bool
	}{
		{"--log-caller", "", false, true, true},
		{"--no-log-caller", "", false, false, true},
		{"--log-caller", "false", true, false, true},
		{"--no-log-caller", "false", true, true, true},
		{"--log-caller", "maybe", true, false, false},
	}

	for _, tt := range tests {
		got, ok := scanBool(tt.name, tt.value, tt.assigned)
		if got != tt.want || ok != tt.ok {
			t.Errorf("scanBool(%q, %q, %v) = %v, %v, want %v, %v",
				tt.name, tt.value, tt.assigned, got, ok, tt.want, tt.ok)
		}
	}
}
