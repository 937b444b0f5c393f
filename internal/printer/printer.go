// Package printer formats terminal output for the CLI commands.
package printer

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func init() {
	// Honor NO_COLOR; otherwise keep color on even without a TTY so piped
	// output matches what users see.
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
)

// Success prints a green check-marked line.
func Success(format string, a ...any) {
	green.Printf("✓ "+format+"\n", a...)
}

// Info prints a plain line.
func Info(format string, a ...any) {
	fmt.Printf(format+"\n", a...)
}

// Warning prints a yellow line to stderr.
func Warning(format string, a ...any) {
	yellow.Fprintf(os.Stderr, "! "+format+"\n", a...)
}

// Failure prints a red line to stderr.
func Failure(format string, a ...any) {
	red.Fprintf(os.Stderr, "✗ "+format+"\n", a...)
}
