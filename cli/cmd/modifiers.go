package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ardnew/phrasegen/modifier"
)

// Modifiers lists the registered modifiers.
type Modifiers struct {
	Plain bool `help:"Print one tab-separated modifier per line."`
}

// Run executes the modifiers command.
func (m *Modifiers) Run(ctx context.Context) error {
	w := stdout(ctx)
	mods := modifier.Default().All()

	if m.Plain {
		for _, mod := range mods {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n",
				mod.Name, shorthand(mod), mod.Description); err != nil {
				return ErrWriteResults.Wrap(err)
			}
		}

		return nil
	}

	_, err := fmt.Fprintln(w, modifierTable(mods))
	if err != nil {
		return ErrWriteResults.Wrap(err)
	}

	return nil
}

func modifierTable(mods []modifier.Modifier) *table.Table {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("MODIFIER", "SHORTHAND", "DESCRIPTION").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}

			return cell
		})

	for _, mod := range mods {
		t.Row(mod.Name, shorthand(mod), mod.Description)
	}

	return t
}

func shorthand(m modifier.Modifier) string {
	if !m.HasShorthand() {
		return ""
	}

	return string(m.Shorthand)
}
