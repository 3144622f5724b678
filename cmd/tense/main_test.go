package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanRunWithoutContainer(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{name: "no args opens the tracker", args: nil, want: false},
		{name: "help flag", args: []string{"--help"}, want: true},
		{name: "short help on subcommand", args: []string{"stats", "-h"}, want: true},
		{name: "version flag", args: []string{"--version"}, want: true},
		{name: "help subcommand", args: []string{"help", "add"}, want: true},
		{name: "config keygen", args: []string{"config", "keygen"}, want: true},
		{name: "config template", args: []string{"config", "template"}, want: true},
		{name: "config init", args: []string{"config", "init", "--backend", "git"}, want: true},
		{name: "config show needs the container", args: []string{"config", "show"}, want: false},
		{name: "bare config", args: []string{"config"}, want: false},
		{name: "tracking command", args: []string{"start", "Focus"}, want: false},
		{name: "help after terminator is a title", args: []string{"add", "--", "--help"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canRunWithoutContainer(tt.args))
		})
	}
}
