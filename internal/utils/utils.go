package utils

import (
	"fmt"
	"io"
	"os"
)

// Color output helpers
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
)

// Output receives the Print helpers' messages
var Output io.Writer = os.Stdout

// PrintSuccess prints a success message
func PrintSuccess(msg string, args ...interface{}) {
	fmt.Fprintf(Output, ColorGreen+"✓ "+msg+ColorReset+"\n", args...)
}

// PrintError prints an error message
func PrintError(msg string, args ...interface{}) {
	fmt.Fprintf(Output, ColorRed+"✗ "+msg+ColorReset+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(msg string, args ...interface{}) {
	fmt.Fprintf(Output, ColorCyan+"ℹ "+msg+ColorReset+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(msg string, args ...interface{}) {
	fmt.Fprintf(Output, ColorYellow+"⚠ "+msg+ColorReset+"\n", args...)
}

// PrintField prints a "label: value" line with the label highlighted
func PrintField(w io.Writer, label, value string) {
	fmt.Fprintf(w, ColorBlue+"%-10s"+ColorReset+" %s\n", label+":", value)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
