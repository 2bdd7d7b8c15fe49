package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/phrasegen/phrase"
)

func TestBuild_Run(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vars.yaml", "name: ana\nvip: true\n")
	writeFile(t, dir, "greet.yaml", "cheer:\n  hello: hi\n")
	writeFile(t, dir, "open.txt", "# openers\nHello\nWelcome\n")

	ctx := WithSearchPath(t.Context(), []string{dir})

	b := Build{
		Templates: []string{"?{$vip}{dear} {$name}C"},
		Files:     []string{"open.txt"},
		Inputs:    Inputs{Bindings: "vars.yaml", Variants: []string{"greet.yaml"}},
		Output:    outputText,
		Max:       phrase.DefaultMaxExpansions,
	}

	var buf bytes.Buffer
	if err := b.run(ctx, &buf); err != nil {
		t.Fatal(err)
	}

	want := "Hello dear Ana\nWelcome dear Ana\n"
	if got := buf.String(); got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
}

func TestBuild_Variants(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "greet.yaml", "cheer:\n  hello: hi\n")

	b := Build{
		Templates: []string{"#Hello# there"},
		Inputs:    Inputs{Variants: []string{"greet.yaml"}},
		Output:    outputText,
	}

	var buf bytes.Buffer
	if err := b.run(WithSearchPath(t.Context(), []string{dir}), &buf); err != nil {
		t.Fatal(err)
	}

	if got, want := buf.String(), "Hello there\nHi there\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestBuild_Errors(t *testing.T) {
	dir := t.TempDir()
	ctx := WithSearchPath(t.Context(), []string{dir})

	tests := []struct {
		name  string
		build Build
		want  error
	}{
		{"no templates", Build{Output: outputText}, ErrNoTemplates},
		{"missing file", Build{Files: []string{"none.txt"}, Output: outputText}, ErrFileNotFound},
		{"unknown modifier", Build{Templates: []string{"{$a|nope}"}, Output: outputText}, phrase.ErrModifierNotFound},
		{
			"limit",
			Build{Templates: []string{"[a|b] [c|d] [e|f]"}, Max: 4, Output: outputText},
			phrase.ErrExpansionLimitExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			err := tt.build.run(ctx, &buf)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}

			if buf.Len() != 0 {
				t.Errorf("wrote %q on error", buf.String())
			}
		})
	}
}

func TestBuild_Groups(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "one\n\n# skip\ntwo\n")
	writeFile(t, dir, "empty.txt", "# nothing\n")

	b := Build{Templates: []string{"three"}, Files: []string{"a.txt", "empty.txt"}}

	groups, err := b.groups(WithSearchPath(t.Context(), []string{dir}))
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, g := range groups {
		got = append(got, strings.Join(g, ","))
	}

	if want := "one,two|three"; strings.Join(got, "|") != want {
		t.Errorf("groups = %q, want %q", strings.Join(got, "|"), want)
	}
}

func TestBuild_InputFiles(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeFile(t, dir, "t.txt", "x\n")
	vars := writeFile(t, dir, "vars.yaml", "")

	b := Build{Files: []string{"t.txt", "-"}, Inputs: Inputs{Bindings: "vars.yaml"}}

	got, err := b.inputFiles(WithSearchPath(t.Context(), []string{dir}))
	if err != nil {
		t.Fatal(err)
	}

	if strings.Join(got, "|") != tmpl+"|"+vars {
		t.Errorf("inputFiles = %v, want [%s %s]", got, tmpl, vars)
	}
}
