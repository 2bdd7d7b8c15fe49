package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolveYAML(t *testing.T) {
	doc := `
log:
  level: debug
  pretty: false
  time_layout: Kitchen
path: [/a, /b]
build:
  output: json
  max: 50
`

	r, err := resolveYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}

	cfg, ok := r.(config)
	if !ok {
		t.Fatalf("resolver type = %T, want config", r)
	}

	want := map[string]any{
		"log-level":       "debug",
		"log-pretty":      false,
		"log-time-layout": "Kitchen",
		"build-output":    "json",
		"build-max":       "50",
	}

	for key, value := range want {
		if cfg[key] != value {
			t.Errorf("config[%q] = %#v, want %#v", key, cfg[key], value)
		}
	}

	if list, ok := cfg["path"].([]any); !ok || len(list) != 2 || list[0] != "/a" {
		t.Errorf("config[path] = %#v, want [/a /b]", cfg["path"])
	}
}

func TestResolveYAML_Invalid(t *testing.T) {
	r, err := resolveYAML(strings.NewReader("log: [unclosed"))
	if err != nil {
		t.Fatalf("resolveYAML error = %v, want ignored", err)
	}

	if cfg, _ := r.(config); len(cfg) != 0 {
		t.Errorf("config = %v, want empty", cfg)
	}
}

type resolveCLI struct {
	Level string `default:"warn"`

	Build struct {
		Output string `default:"text"`
	} `cmd:""`

	Other struct {
		Output string `default:"text"`
	} `cmd:""`
}

func parseResolved(t *testing.T, cfg config, args ...string) resolveCLI {
	t.Helper()

	var cli resolveCLI

	parser, err := kong.New(&cli, kong.Resolvers(cfg))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse(args); err != nil {
		t.Fatal(err)
	}

	return cli
}

func TestConfig_Resolve(t *testing.T) {
	cfg := config{"level": "info", "output": "yaml", "build-output": "json"}

	cli := parseResolved(t, cfg, "build")
	if cli.Level != "info" || cli.Build.Output != "json" {
		t.Errorf("build: level=%q output=%q, want info json", cli.Level, cli.Build.Output)
	}

	cli = parseResolved(t, cfg, "other")
	if cli.Other.Output != "yaml" {
		t.Errorf("other: output=%q, want yaml", cli.Other.Output)
	}
}

func TestConfig_CommandLineWins(t *testing.T) {
	cli := parseResolved(t, config{"level": "info"}, "--level=error", "build")
	if cli.Level != "error" {
		t.Errorf("level = %q, want error", cli.Level)
	}
}
