package inventory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/shinji-kodama/docsync/internal/logger"
	"github.com/shinji-kodama/docsync/internal/model"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"atx heading", "# Getting Started\n\nBody", "Getting Started"},
		{"first h1 wins", "intro\n\n## Sub\n\n# Main\n\n# Second\n", "Main"},
		{"emphasis inside", "# Using *docsync* `sync`\n", "Using docsync sync"},
		{"setext heading", "Overview\n========\n", "Overview"},
		{"front matter title", "---\ntitle: From Meta\n---\n# Heading\n", "From Meta"},
		{"front matter without title", "---\nweight: 3\n---\n# Heading\n", "Heading"},
		{"crlf front matter", "---\r\ntitle: Windows\r\n---\r\nbody\r\n", "Windows"},
		{"no heading", "just text\n", ""},
		{"only h2", "## Sub\n", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Title([]byte(tt.source)))
		})
	}
}

func TestIsMarkdown(t *testing.T) {
	assert.True(t, IsMarkdown("guide.md"))
	assert.True(t, IsMarkdown("sub/page.MDX"))
	assert.True(t, IsMarkdown("notes.markdown"))
	assert.False(t, IsMarkdown("logo.png"))
	assert.False(t, IsMarkdown("md"))
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	write("guide.md", "# Guide\n")
	write("sub/page.md", "# Page\n")
	write("img/logo.png", "PNG")
	write(".git/HEAD", "ref")

	entries := Collect(context.Background(), root)

	assert.Equal(t, []model.FileEntry{
		{Path: "guide.md", Size: 8, Title: "Guide"},
		{Path: "img/logo.png", Size: 3},
		{Path: "sub/page.md", Size: 7, Title: "Page"},
	}, entries)
}

// TestCollect_MissingRootWarns checks that enumeration failures are
// swallowed and reported as a warning.
func TestCollect_MissingRootWarns(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	entries := Collect(ctx, filepath.Join(t.TempDir(), "missing"))

	assert.Empty(t, entries)
	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "could not list files", warnings[0].Message)
}

func TestLog(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	Log(ctx, "materialized", []model.FileEntry{{Path: "a.md"}, {Path: "b.md"}})

	assert.Equal(t, 2, logs.FilterLevelExact(zapcore.DebugLevel).Len())
	infos := logs.FilterLevelExact(zapcore.InfoLevel).All()
	require.Len(t, infos, 1)
	assert.Equal(t, int64(2), infos[0].ContextMap()["files"])
}
