// Package main is the entry point for the tense CLI.
package main

import (
	"fmt"
	"os"

	"github.com/runoshun/present-tense/internal/app"
	"github.com/runoshun/present-tense/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Create dependency injection container
	container, err := app.New(app.Options{
		ConfigPath: os.Getenv("TENSE_CONFIG"),
		DataDir:    os.Getenv("TENSE_DATA_DIR"),
	})
	if err != nil {
		return runWithoutContainer(fmt.Errorf("failed to initialize: %w", err))
	}
	defer func() { _ = container.Close() }()

	// Create and execute root command
	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}

// runWithoutContainer handles a broken config or data directory.
// Help, version and the config setup commands still work so the user can repair it.
func runWithoutContainer(initErr error) error {
	if canRunWithoutContainer(os.Args[1:]) {
		return cli.NewRootCommand(nil, version).Execute()
	}
	return initErr
}

func canRunWithoutContainer(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "help":
		return true
	case "config":
		if len(args) > 1 {
			switch args[1] {
			case "keygen", "template", "init":
				return true
			}
		}
	}
	for _, arg := range args {
		if arg == "--version" || arg == "-v" || arg == "--help" || arg == "-h" {
			return true
		}
		if arg == "--" {
			break
		}
	}
	return false
}
