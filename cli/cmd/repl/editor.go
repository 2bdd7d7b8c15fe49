package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/phrasegen/log"
)

const defaultEditor = "vi"

// editBindingsCommand implements [tea.ExecCommand] for the bindings
// edit-decode-retry loop. It writes the current bindings as YAML to a temp
// file, opens the user's editor, and decodes the result. On a decode error
// the user is prompted to re-edit; declining exits the program.
type editBindingsCommand struct {
	vars    map[string]any
	ctxFunc func() context.Context
	logger  log.Logger

	// edited holds the decoded bindings, or nil if the edit was cancelled.
	edited map[string]any

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (c *editBindingsCommand) SetStdin(r io.Reader)  { c.stdin = r }
func (c *editBindingsCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *editBindingsCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit loop. It returns [ErrEditDeclined] if the user
// declines to correct bindings that cannot be decoded.
func (c *editBindingsCommand) Run() error {
	ctx := c.ctxFunc()

	content, err := yaml.Marshal(c.vars)
	if err != nil {
		return ErrDecodeBindings.Wrap(err)
	}

	if len(c.vars) == 0 {
		content = []byte("# name: value\n")
	}

	f, err := os.CreateTemp("", "phrasegen-bindings-*.yaml")
	if err != nil {
		return err
	}

	path := f.Name()
	f.Close()

	defer os.Remove(path)

	for {
		if err := os.WriteFile(path, content, 0o600); err != nil {
			return err
		}

		if err := c.runEditor(ctx, path); err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		if strings.TrimSpace(string(data)) == "" {
			return nil
		}

		vars, err := decodeBindings(data)

		c.logger.TraceContext(ctx, "editor decode attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", err == nil),
		)

		if err == nil {
			c.edited = vars

			return nil
		}

		fmt.Fprintf(c.stderr, "\n%s\n", err)
		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}

		content = data
	}
}

// runEditor opens $EDITOR, or vi, on path and waits for it to exit.
func (c *editBindingsCommand) runEditor(ctx context.Context, path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = c.stdin
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr

	return cmd.Run()
}

// decodeBindings decodes a YAML mapping of variable bindings. A document
// holding only comments decodes to empty bindings.
func decodeBindings(data []byte) (map[string]any, error) {
	var vars map[string]any
	if err := yaml.Unmarshal(data, &vars); err != nil {
		return nil, ErrDecodeBindings.Wrap(err)
	}

	if vars == nil {
		vars = map[string]any{}
	}

	return vars, nil
}
