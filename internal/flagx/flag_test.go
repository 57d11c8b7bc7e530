package flagx

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		names []string
		want  []string
	}{
		{
			name:  "short flag with separate value",
			args:  []string{"-c", "juke.json", "-u", "http://localhost:8000"},
			names: []string{"c", "config"},
			want:  []string{"-c", "juke.json"},
		},
		{
			name:  "double dash with equals",
			args:  []string{"--config=alt.json", "-u", "http://localhost"},
			names: []string{"c", "config"},
			want:  []string{"--config=alt.json"},
		},
		{
			name:  "unknown flags and positionals dropped",
			args:  []string{"-x", "1", "--y=2", "positional", "-"},
			names: []string{"c"},
			want:  []string{},
		},
		{
			name:  "trailing flag without value kept",
			args:  []string{"-c"},
			names: []string{"c"},
			want:  []string{"-c"},
		},
		{
			name:  "next dash token is not a value",
			args:  []string{"-c", "-u", "http://x"},
			names: []string{"c"},
			want:  []string{"-c"},
		},
		{
			name:  "equals value may start with dashes",
			args:  []string{"-config=--weird.json"},
			names: []string{"config"},
			want:  []string{"-config=--weird.json"},
		},
		{
			name:  "several owned flags keep order",
			args:  []string{"-u", "http://api", "-c", "juke.json", "--other", "x", "-l", "debug"},
			names: []string{"u", "l"},
			want:  []string{"-u", "http://api", "-l", "debug"},
		},
		{
			name:  "repeated flag preserved",
			args:  []string{"-c", "one.json", "-c", "two.json"},
			names: []string{"c"},
			want:  []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:  "empty args",
			args:  nil,
			names: []string{"c"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.names...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("FilterArgs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfigPath(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"-c", "/etc/juke.json"}, "/etc/juke.json"},
		{"long with equals", []string{"--config=/tmp/j.json", "-u", "x"}, "/tmp/j.json"},
		{"absent", []string{"-u", "http://api", "-l", "debug"}, ""},
		{"last wins", []string{"-c", "/a.json", "-config", "/b.json"}, "/b.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigPath(tt.args))
		})
	}
}
