package hints

// Notes:
// - ForBrowserConnect tests cannot use t.Parallel(): they use t.Setenv()
//   and replace the package-level IsInContainer variable.

import (
	"strings"
	"testing"
)

func stubContainer(t *testing.T, inContainer bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return inContainer }
}

// ---------------------------------------------------------------------------
// TestForBrowserConnect - Environment-dependent suggestions
// ---------------------------------------------------------------------------

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		container   bool
		ci          string
		noSandbox   string
		browserBin  string
		wantSandbox bool
		wantBin     bool
	}{
		{"in CI", false, "true", "", "", true, true},
		{"in docker", true, "", "", "", true, true},
		{"sandbox already disabled", true, "", "1", "", false, true},
		{"browser bin set", false, "", "", "/usr/bin/chrome", false, false},
		{"local machine", false, "", "", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubContainer(t, tt.container)
			t.Setenv("CI", tt.ci)
			t.Setenv("GITHUB_ACTIONS", "")
			t.Setenv("GITLAB_CI", "")
			t.Setenv("JENKINS_URL", "")
			t.Setenv("ROD_NO_SANDBOX", tt.noSandbox)
			t.Setenv("ROD_BROWSER_BIN", tt.browserBin)

			hint := ForBrowserConnect()

			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("hint = %q, want hint prefix", hint)
			}
			if got := strings.Contains(hint, "ROD_NO_SANDBOX"); got != tt.wantSandbox {
				t.Errorf("ROD_NO_SANDBOX suggested = %v, want %v", got, tt.wantSandbox)
			}
			if got := strings.Contains(hint, "ROD_BROWSER_BIN"); got != tt.wantBin {
				t.Errorf("ROD_BROWSER_BIN suggested = %v, want %v", got, tt.wantBin)
			}
			if !strings.Contains(hint, "--pdf") {
				t.Error("expected the skip-rendering suggestion")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestForConfigNotFound
// ---------------------------------------------------------------------------

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains string
		excludes string
	}{
		{"no paths", nil, "--config", "create"},
		{"user config path suggested", []string{"./team.yaml", "/home/u/.config/go-docx2md/team.yaml"}, "create /home/u/.config/go-docx2md/team.yaml", ""},
		{"unrelated paths only", []string{"./team.yaml"}, "--config", "create"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("hint = %q, want to contain %q", hint, tt.contains)
			}
			if tt.excludes != "" && strings.Contains(hint, tt.excludes) {
				t.Errorf("hint = %q, should not contain %q", hint, tt.excludes)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestForNotDocx / TestForUnresolved
// ---------------------------------------------------------------------------

func TestForNotDocx(t *testing.T) {
	t.Parallel()

	if hint := ForNotDocx("old/Report.DOC"); !strings.Contains(hint, "save as .docx") {
		t.Errorf("legacy hint = %q", hint)
	}
	if hint := ForNotDocx("broken.docx"); !strings.Contains(hint, "word/document.xml") {
		t.Errorf("package hint = %q", hint)
	}
}

func TestForUnresolved(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		images, links int
		want          []string
	}{
		{"nothing unresolved", 0, 0, nil},
		{"images only", 2, 0, []string{"#unresolved-image-N"}},
		{"both", 1, 3, []string{"#unresolved-image-N", `rel="..."`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForUnresolved(tt.images, tt.links)
			if tt.want == nil && hint != "" {
				t.Errorf("hint = %q, want empty", hint)
			}
			for _, w := range tt.want {
				if !strings.Contains(hint, w) {
					t.Errorf("hint = %q, want to contain %q", hint, w)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFormat_Consistency
// ---------------------------------------------------------------------------

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	for _, hint := range []string{
		ForTimeout(),
		ForOutputDirectory(),
		ForConfigNotFound(nil),
		ForNotDocx("x.docx"),
		ForUnresolved(1, 1),
	} {
		if !strings.HasPrefix(hint, "\n  hint: ") {
			t.Errorf("hint %q lacks the standard prefix", hint)
		}
		if strings.Count(hint, "hint:") != 1 {
			t.Errorf("hint %q should carry one prefix", hint)
		}
	}
	if format("") != "" || formatHints(nil) != "" {
		t.Error("empty hints should format to empty string")
	}
}
