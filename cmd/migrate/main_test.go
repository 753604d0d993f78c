package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want command
	}{
		{name: "по умолчанию up", args: nil, want: command{name: "up"}},
		{name: "down", args: []string{"down"}, want: command{name: "down"}},
		{name: "steps вниз", args: []string{"steps", "-2"}, want: command{name: "steps", arg: -2}},
		{name: "force", args: []string{"force", "1"}, want: command{name: "force", arg: 1}},
		{name: "version", args: []string{"version"}, want: command{name: "version"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCommand(tt.args)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommand_Invalid(t *testing.T) {
	for _, args := range [][]string{
		{"sideways"},
		{"up", "1"},
		{"steps"},
		{"steps", "two"},
		{"force", "-1"},
	} {
		_, err := parseCommand(args)
		require.ErrorIs(t, err, errUsage, "args=%v", args)
	}
}
