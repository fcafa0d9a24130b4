package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/amonks/markitdown/tracker"
	"github.com/spf13/cobra"
)

// promptConfirmer asks on out and reads the answer from in. Anything but
// "y" or "yes" declines, including end of input.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (p *promptConfirmer) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N] ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(p.out)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func confirmerFor(cmd *cobra.Command, yes bool) tracker.Confirmer {
	if yes {
		return tracker.AlwaysConfirm
	}
	return &promptConfirmer{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.ErrOrStderr()}
}

// declined reports a refused confirmation without failing the command.
func declined(cmd *cobra.Command, err error) error {
	if errors.Is(err, tracker.ErrNotConfirmed) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
		return nil
	}
	return err
}
