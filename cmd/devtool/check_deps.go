package main

import (
	"fmt"
	"strings"
)

type CheckDepsCommand struct{}

func (c *CheckDepsCommand) Name() string {
	return "check-deps"
}

func (c *CheckDepsCommand) Description() string {
	return "Check for required dependencies"
}

func (c *CheckDepsCommand) Run(args []string) error {
	PrintHeader("Checking dependencies...")

	hasError := false

	// Output: go version go1.24.0 linux/amd64
	if version, err := getCommandOutput("go", "version"); err == nil {
		PrintSuccess("Go installed: %s", field(version, 2))
	} else {
		PrintError("Go not found! Install from: https://go.dev/dl/")
		hasError = true
	}

	// Output: Docker version 27.0.3, build 7d4bcd8
	if version, err := getCommandOutput("docker", "--version"); err == nil {
		PrintSuccess("Docker installed: %s", strings.TrimRight(field(version, 2), ","))
	} else {
		PrintWarning("Docker not found (needed for integration tests)")
	}

	// Output: Docker Compose version v2.20.2
	if version, err := getCommandOutput("docker", "compose", "version"); err == nil {
		PrintSuccess("Docker Compose installed: %s", field(version, 3))
	} else {
		PrintWarning("Docker Compose not found (optional)")
	}

	if hasError {
		return fmt.Errorf("missing required dependencies")
	}
	PrintSuccess("Environment check complete!")
	return nil
}

// field returns the i-th whitespace separated word, or the whole string when there are fewer
func field(s string, i int) string {
	parts := strings.Fields(s)
	if len(parts) > i {
		return parts[i]
	}
	return s
}
