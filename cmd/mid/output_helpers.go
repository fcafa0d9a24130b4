package main

import (
	"encoding/json"
	"os"

	"golang.org/x/term"
)

func encodeJSONToStdout(value any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

const defaultOutputWidth = 80

// outputWidth returns the terminal width, or a default when stdout is not
// a terminal.
func outputWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultOutputWidth
	}
	return width
}
