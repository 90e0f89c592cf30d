package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/appreview/internal/core/domain"
)

// collectionOf picks the collection selected by --all.
func collectionOf(all bool) domain.Collection {
	if all {
		return domain.CollectionAll
	}
	return domain.CollectionShortlisted
}

// openCollection passes the collection's gate and loads it if needed.
func openCollection(cmd *cobra.Command, c domain.Collection, password string) error {
	if err := requireCatalog(); err != nil {
		return err
	}
	if gate, gated := c.Gate(); gated {
		if err := unlock(cmd, gate, password); err != nil {
			return err
		}
	}

	if catalogService.Status(c).State == domain.LoadReady {
		return nil
	}
	status, err := catalogService.Load(cmd.Context(), c)
	if err != nil {
		return fmt.Errorf("loading %s: %w", c.Label(), err)
	}
	if status.Skipped > 0 {
		cmd.PrintErrf("warning: skipped %d records without a usable ApplicationId\n", status.Skipped)
	}
	return nil
}

// unlock opens a gate, prompting for the password when none was given.
func unlock(cmd *cobra.Command, gate domain.Gate, password string) error {
	if accessService == nil {
		return fmt.Errorf("access %w", errNotConfigured)
	}
	if accessService.IsUnlocked(gate) {
		return nil
	}
	if password == "" {
		var err error
		password, err = readPassword(cmd, gate.Prompt()+": ")
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
	}
	return accessService.Unlock(gate, password)
}

// readPassword prompts on stderr and reads without echo from a terminal,
// or one line from piped input.
var readPassword = func(cmd *cobra.Command, prompt string) (string, error) {
	cmd.PrintErr(prompt)

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		cmd.PrintErrln()
		return string(b), err
	}

	return readLine(cmd.InOrStdin())
}

// readLine reads up to a newline one byte at a time, so consecutive prompts
// on the same piped input each get their own line.
func readLine(r io.Reader) (string, error) {
	var line strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				break
			}
			line.WriteByte(buf[0])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return strings.TrimSpace(line.String()), nil
}

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// terminalWidth is the wrap width for rendered markdown.
func terminalWidth(cmd *cobra.Command) int {
	if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 20 {
			return min(w, 120)
		}
	}
	return 80
}
