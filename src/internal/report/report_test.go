package report

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VectorBits/abi2sol/src/internal/iface"
)

func sweep() *iface.Summary {
	s := iface.NewSummary("out", "abi2json/interfaces")
	s.Add(iface.FileResult{Path: "out/a/Token.json", Interface: "IToken", Status: iface.StatusConverted, Functions: 2})
	s.Add(iface.FileResult{Path: "out/b/Token.json", Interface: "IToken", Status: iface.StatusConverted, Functions: 1})
	s.Add(iface.FileResult{Path: "out/Events.json", Interface: "IEvents", Status: iface.StatusSkipped, Reason: iface.ReasonEmpty})
	s.Add(iface.FileResult{Path: "out/build-info/x.json", Interface: "Ix", Status: iface.StatusSkipped, Reason: iface.ReasonNoABI})
	s.Add(iface.FileResult{
		Path:      "out/Bad.json",
		Interface: "IBad",
		Status:    iface.StatusFailed,
		Err:       &iface.FileError{Kind: iface.KindParse, Path: "out/Bad.json", Err: errors.New("malformed JSON")},
	})
	s.AddCollision(iface.Collision{Interface: "IToken", Overwritten: "out/a/Token.json", By: "out/b/Token.json"})
	s.Finish()
	return s
}

func TestMarkdownGenerator(t *testing.T) {
	content, err := NewMarkdownGenerator().Generate(NewReport("core", sweep()))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(content, "# abi2sol Sweep Report\n\n**Target**: core\n"))
	assert.Contains(t, content, "- **Artifacts**: 5\n")
	assert.Contains(t, content, "- **Converted**: 2\n")
	assert.Contains(t, content, "- **Failed**: 1\n")
	assert.Contains(t, content, "- **empty**: 1\n- **no-abi**: 1\n")
	assert.Contains(t, content, "| `out/Bad.json` | ParseError | malformed JSON |")
	assert.Contains(t, content, "| IToken | `out/a/Token.json` | `out/b/Token.json` |")
	assert.Contains(t, content, "| 🟢 converted | `out/a/Token.json` | IToken | 2 functions |")
	assert.Contains(t, content, "| ⚪ skipped | `out/Events.json` | IEvents | empty |")
}

func TestMarkdownGeneratorNoSummary(t *testing.T) {
	_, err := NewMarkdownGenerator().Generate(&Report{Target: "core"})
	assert.Error(t, err)
}

func TestReporterGenerateAndSave(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := NewReporter(NewMarkdownGenerator(), NewFileStorage(fs, "reports"))

	rep := NewReport("core/periphery", sweep())
	rep.GeneratedAt = time.Unix(0, 42)

	path, err := r.GenerateAndSave(rep)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("reports", "sweep_report_core_periphery_42.md"), path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# abi2sol Sweep Report")

	entries, err := afero.ReadDir(fs, "reports")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSanitizeFilenameComponent(t *testing.T) {
	tests := map[string]string{
		"":             "unknown",
		"  core  ":     "core",
		"a/b c":        "a_b_c",
		"../..":        "unknown",
		"v0.8-release": "v0.8-release",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeFilenameComponent(in), in)
	}
}
