package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/phrasegen/modifier"
)

func TestModifiers_Plain(t *testing.T) {
	var buf bytes.Buffer

	if err := (&Modifiers{Plain: true}).Run(outputContext(t, &buf)); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != len(modifier.Default().All()) {
		t.Fatalf("got %d lines, want one per modifier", len(lines))
	}

	var found bool

	for _, line := range lines {
		if strings.HasPrefix(line, "capitalize\tC\t") {
			found = true
		}
	}

	if !found {
		t.Errorf("no line for capitalize with shorthand C in:\n%s", buf.String())
	}
}

func TestModifiers_Table(t *testing.T) {
	var buf bytes.Buffer

	if err := (&Modifiers{}).Run(outputContext(t, &buf)); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"MODIFIER", "SHORTHAND", "DESCRIPTION", "plural", "expr"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestVariants_Run(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "greet:\n  hello: hi\n")
	writeFile(t, dir, "b.yaml", "greet:\n  hello: [hey, howdy]\n")

	var buf bytes.Buffer

	ctx := WithSearchPath(outputContext(t, &buf), []string{dir})
	if err := (&Variants{Variants: []string{"a.yaml", "b.yaml"}}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	var got map[string]map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, buf.String())
	}

	repl, ok := got["greet"]["hello"].([]any)
	if !ok || len(repl) != 2 || repl[0] != "hey" {
		t.Errorf("greet.hello = %#v, want [hey howdy]", got["greet"]["hello"])
	}
}
