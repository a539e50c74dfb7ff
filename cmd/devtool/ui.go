package main

import (
	"fmt"
	"os/exec"
	"strings"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

func printColored(color, symbol, format string, a ...any) {
	fmt.Printf(color+symbol+" "+format+colorReset+"\n", a...)
}

func PrintInfo(format string, a ...any)    { printColored(colorBlue, "ℹ", format, a...) }
func PrintSuccess(format string, a ...any) { printColored(colorGreen, "✓", format, a...) }
func PrintWarning(format string, a ...any) { printColored(colorYellow, "⚠", format, a...) }
func PrintError(format string, a ...any)   { printColored(colorRed, "✗", format, a...) }

func PrintHeader(title string) {
	fmt.Printf("\n"+colorYellow+"=== %s ==="+colorReset+"\n", title)
}

// shellMeta are rejected in command arguments even though exec.Command never invokes a shell
var shellMeta = []string{"|", "`", "$(", "&&", "||", ">", "<"}

// checkHostile rejects arguments carrying line breaks, NUL bytes or shell metacharacters.
// '&' alone and ';' stay allowed so connection URLs pass.
func checkHostile(inputs ...string) error {
	for _, s := range inputs {
		if strings.ContainsAny(s, "\n\r\x00") {
			return fmt.Errorf("hostile input detected: control character in %q", s)
		}
		for _, p := range shellMeta {
			if strings.Contains(s, p) {
				return fmt.Errorf("hostile input detected: pattern %q in %q", p, s)
			}
		}
	}
	return nil
}

// getCommandOutput runs a version probe and returns its trimmed stdout
func getCommandOutput(name string, args ...string) (string, error) {
	if err := checkHostile(append([]string{name}, args...)...); err != nil {
		return "", err
	}
	// #nosec G204 - arguments are checked above
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
