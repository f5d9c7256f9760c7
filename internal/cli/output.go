package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Output formatting helpers

var (
	greenMark  = color.New(color.FgGreen).SprintFunc()
	redMark    = color.New(color.FgRed).SprintFunc()
	yellowMark = color.New(color.FgYellow).SprintFunc()
	blueMark   = color.New(color.FgBlue).SprintFunc()
)

// printInfo prints an informational message.
func printInfo(msg string) {
	if globalQuiet {
		return
	}
	fmt.Println(msg)
}

// printSuccess prints a success message.
func printSuccess(msg string) {
	if globalQuiet {
		return
	}
	fmt.Printf("%s %s\n", greenMark("✓"), msg)
}

// printWarning prints a warning message.
func printWarning(msg string) {
	if globalQuiet {
		return
	}
	fmt.Printf("%s %s\n", yellowMark("⚠"), msg)
}

// printProgress prints a progress indicator.
func printProgress(msg string) {
	if globalQuiet {
		return
	}
	fmt.Printf("%s %s\n", blueMark("→"), msg)
}

// printError prints an error message to stderr. Errors are shown even
// in quiet mode.
func printError(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", redMark("✗"), err)
}
