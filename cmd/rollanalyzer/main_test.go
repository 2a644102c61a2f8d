package main

import "testing"

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want cliArgs
	}{
		{
			name: "all flags",
			args: []string{"--frames", "/tmp/clip", "--fps", "24", "--output", "out.json"},
			want: cliArgs{framesDir: "/tmp/clip", outputPath: "out.json", fps: 24},
		},
		{
			name: "no flags",
			args: nil,
			want: cliArgs{},
		},
		{
			name: "invalid fps falls back to zero",
			args: []string{"--frames", "/tmp/clip", "--fps", "fast"},
			want: cliArgs{framesDir: "/tmp/clip"},
		},
		{
			name: "flag value not consumed as flag",
			args: []string{"--fps", "--frames"},
			want: cliArgs{},
		},
		{
			name: "trailing flag without value",
			args: []string{"--fps", "30", "--frames"},
			want: cliArgs{fps: 30},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseArgs(tt.args); got != tt.want {
				t.Errorf("parseArgs(%v) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}
