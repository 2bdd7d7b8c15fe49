package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/alecthomas/kong"
)

// writeFile creates dir/name holding content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

// outputContext returns a context whose command output is written to buf.
func outputContext(t *testing.T, buf *bytes.Buffer) context.Context {
	t.Helper()

	return WithContext(t.Context(), &kong.Context{Kong: &kong.Kong{Stdout: buf}})
}

func TestLocate(t *testing.T) {
	dir1, dir2 := t.TempDir(), t.TempDir()
	only2 := writeFile(t, dir2, "vars.yaml", "a: 1\n")
	both1 := writeFile(t, dir1, "both.yaml", "")
	writeFile(t, dir2, "both.yaml", "")

	ctx := WithSearchPath(t.Context(), []string{dir1, dir2})

	tests := []struct {
		name    string
		want    string
		wantErr error
	}{
		{"-", "-", nil},
		{only2, only2, nil},
		{"vars.yaml", only2, nil},
		{"both.yaml", both1, nil},
		{"missing.yaml", "", ErrFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := locate(ctx, tt.name)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("locate(%q) error = %v, want %v", tt.name, err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("locate(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestLocateAll_Dedupe(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", "")
	b := writeFile(t, dir, "b.yaml", "")

	link := filepath.Join(dir, "link.yaml")
	if err := os.Symlink(a, link); err != nil {
		t.Skip("symlinks unsupported:", err)
	}

	ctx := WithSearchPath(t.Context(), []string{dir})

	got, err := locateAll(ctx, []string{"-", a, "b.yaml", link, "-", b})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"-", a, b}
	if !slices.Equal(got, want) {
		t.Errorf("locateAll = %v, want %v", got, want)
	}
}

func TestStdout(t *testing.T) {
	if got := stdout(t.Context()); got != os.Stdout {
		t.Errorf("stdout without kong context = %v, want os.Stdout", got)
	}

	var buf bytes.Buffer
	if got := stdout(outputContext(t, &buf)); got != &buf {
		t.Errorf("stdout = %v, want kong Stdout", got)
	}
}
