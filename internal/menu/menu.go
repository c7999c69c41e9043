// Package menu bridges the record collection and an interactive selector.
// The selector itself is an external program driven over stdin/stdout; it
// gets a list of lines and hands one back, or nothing at all.
package menu

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strconv"
	"strings"
)

// Menu is the capability the dispatcher needs from a selector: present some
// items under a prompt, get one line back. The result is the chosen item
// verbatim, free text the user typed instead, or "" when they cancelled.
// current, when non-empty, names the item to mark as the present value.
type Menu interface {
	Choose(items []string, current, prompt string) (string, error)
}

// Supported lists the external menu programs the bridge can drive.
var Supported = []string{"bemenu", "dmenu", "rofi", "fzf"}

const currentMarker = " <-- current"

const (
	minRows = 1
	maxRows = 255
)

// Command drives one of the supported external menu programs.
type Command struct {
	path string // resolved binary path
	name string
	rows int
}

// NewCommand resolves name on PATH and returns a runner for it. The rows
// hint is clamped to what the programs accept.
func NewCommand(name string, rows int) (*Command, error) {
	if !slices.Contains(Supported, name) {
		return nil, fmt.Errorf("unsupported menu program: %s", name)
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, &SpawnError{Program: name, Err: err}
	}
	if rows < minRows {
		rows = minRows
	} else if rows > maxRows {
		rows = maxRows
	}
	return &Command{path: path, name: name, rows: rows}, nil
}

// Choose implements Menu by writing items to the program's stdin and
// reading the selection from its stdout.
func (c *Command) Choose(items []string, current, prompt string) (string, error) {
	rows := strconv.Itoa(c.rows)
	var args []string
	switch c.name {
	case "rofi":
		args = []string{"-dmenu", "-i", "-l", rows, "-p", prompt}
	case "fzf":
		args = []string{"-i", "--print-query", "--prompt", prompt + "> "}
	default: // bemenu, dmenu
		args = []string{"-i", "-l", rows, "-p", prompt}
	}

	out, err := c.run(args, strings.Join(markCurrent(items, current), "\n"))
	if err != nil {
		return "", err
	}
	if c.name == "fzf" {
		out = decodeFzf(out)
	}
	return strings.TrimSuffix(strings.TrimSpace(out), currentMarker), nil
}

func (c *Command) run(args []string, input string) (string, error) {
	cmd := exec.Command(c.path, args...)
	cmd.Stdin = strings.NewReader(input)
	cmd.Stderr = os.Stderr // fzf draws its interface here

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// fzf exits 1 when the query matched no item; its stdout
			// still carries the typed text. Any other non-zero exit is
			// the user escaping out, a normal cancel.
			if exitErr.ExitCode() == 1 && len(out) > 0 {
				return string(out), nil
			}
			return "", nil
		}
		return "", &SpawnError{Program: c.name, Err: err}
	}
	return string(out), nil
}

// markCurrent appends the current marker to the matching item so the user
// can see which value a modify prompt started from.
func markCurrent(items []string, current string) []string {
	if current == "" {
		return items
	}
	marked := slices.Clone(items)
	for i, item := range marked {
		if item == current {
			marked[i] = item + currentMarker
			break
		}
	}
	return marked
}

// decodeFzf picks the selection out of --print-query output: the query is
// the first line, the chosen item the second. With no match fzf prints the
// query alone, which becomes free-typed input.
func decodeFzf(out string) string {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) >= 2 && strings.TrimSpace(lines[len(lines)-1]) != "" {
		return lines[len(lines)-1]
	}
	return lines[0]
}

// SpawnError means an external collaborator could not be launched.
type SpawnError struct {
	Program string
	Err     error
}

// Error implements the error interface.
func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Program, e.Err)
}

// Unwrap exposes the underlying launch failure.
func (e *SpawnError) Unwrap() error {
	return e.Err
}
