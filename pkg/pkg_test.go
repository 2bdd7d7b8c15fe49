package pkg

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	expected := "phrasegen"
	if Name != expected {
		t.Errorf("Expected Name to be %q, got %q", expected, Name)
	}
}

func TestDescription(t *testing.T) {
	expected := "Phrase template expander"
	if Description != expected {
		t.Errorf("Expected Description to be %q, got %q", expected, Description)
	}
}

func TestVersion(t *testing.T) {
	// Version is embedded from VERSION file, so it should not be empty.
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("Failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); Version != content {
		t.Errorf("Expected Version to be %q, got %q", content, Version)
	}
}

func TestAuthor(t *testing.T) {
	if len(Author) == 0 {
		t.Error("Expected Author to have at least one entry")
	}

	// Test if a known author is present
	if len(Author) > 0 {
		expectedName := "ardnew"
		expectedEmail := "andrew@ardnew.com"

		if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
			return a.Name == expectedName && a.Email == expectedEmail
		}) {
			t.Errorf("Expected Author to contain %q, %q", expectedName, expectedEmail)
		}
	}
}

func TestAuthorStruct(t *testing.T) {
	// Test that Author slice has the expected structure
	for i, author := range Author {
		if author.Name == "" && author.Email == "" {
			t.Errorf("Author[%d] must define at least Name or Email", i)
		}
	}
}

func TestExecutableName(t *testing.T) {
	tests := map[string]string{
		"/usr/local/bin/phrasegen": "phrasegen",
		"/tmp/go-build/cli.test":   "cli",
		`C:\bin\phrasegen.exe`:     "phrasegen",
		"__debug_bin3551478":       Name,
		"/home/u/.hidden":          "hidden",
		"...":                      Name,
	}

	for path, want := range tests {
		if filepath.Separator != '\\' && strings.Contains(path, `\`) {
			continue
		}

		if got := executableName(path); got != want {
			t.Errorf("executableName(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestEnvVar(t *testing.T) {
	tests := map[string]string{
		"path":       "PHRASEGEN_PATH",
		"config dir": "PHRASEGEN_CONFIG_DIR",
		"cache-dir":  "PHRASEGEN_CACHE_DIR",
	}

	for key, want := range tests {
		if got := EnvVar(key); got != want {
			t.Errorf("EnvVar(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestUserDir(t *testing.T) {
	env := EnvVar("test dir")
	base := func() (string, error) { return "/base", nil }

	t.Setenv(env, "/override")

	if got := userDir(env, base, ".hidden"); got != "/override" {
		t.Errorf("userDir with %s set = %q, want /override", env, got)
	}

	t.Setenv(env, "")

	if got, want := userDir(env, base, ".hidden"), filepath.Join("/base", Prefix()); got != want {
		t.Errorf("userDir = %q, want %q", got, want)
	}

	home := t.TempDir()
	t.Setenv("HOME", home)

	failing := func() (string, error) { return "", os.ErrNotExist }
	if got, want := userDir(env, failing, ".hidden"), filepath.Join(home, ".hidden", Prefix()); got != want {
		t.Errorf("userDir fallback = %q, want %q", got, want)
	}
}

func TestAuthorInfoString(t *testing.T) {
	tests := []struct {
		author AuthorInfo
		want   string
	}{
		{AuthorInfo{"ardnew", "andrew@ardnew.com"}, "ardnew <andrew@ardnew.com>"},
		{AuthorInfo{Name: "ardnew"}, "ardnew"},
		{AuthorInfo{Email: "andrew@ardnew.com"}, "<andrew@ardnew.com>"},
	}

	for _, tt := range tests {
		if got := tt.author.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
