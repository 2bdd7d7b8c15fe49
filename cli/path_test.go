package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/phrasegen/pkg"
)

func TestSearchPath(t *testing.T) {
	flag1, flag2, env1 := t.TempDir(), t.TempDir(), t.TempDir()
	missing := filepath.Join(t.TempDir(), "missing")

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	env := strings.Join([]string{env1, missing, flag1}, string(os.PathListSeparator))

	got := searchPath(env, flag1, flag2, file)

	want := []string{flag1, flag2, env1}
	if isDir(pkg.ConfigDir()) {
		want = append(want, pkg.ConfigDir())
	}

	if !slices.Equal(got, want) {
		t.Errorf("searchPath = %v, want %v", got, want)
	}
}

func TestSearchPath_Empty(t *testing.T) {
	got := searchPath("")
	for _, dir := range got {
		if dir != pkg.ConfigDir() {
			t.Errorf("searchPath(\"\") includes %q", dir)
		}
	}
}

func TestConfigPath(t *testing.T) {
	got := configPath("config.yaml")
	if want := filepath.Join(pkg.ConfigDir(), "config.yaml"); got != want {
		t.Errorf("configPath = %q, want %q", got, want)
	}
}
