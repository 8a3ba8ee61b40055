package inventory

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/docsync/internal/fsutil"
	"github.com/shinji-kodama/docsync/internal/logger"
	"github.com/shinji-kodama/docsync/internal/model"
)

// maxTitleBytes bounds how much of a page is read to find its title.
const maxTitleBytes = 256 << 10

// Collect returns an entry for every regular file under root, skipping git
// metadata. Markdown pages carry their title. On a walk error the entries
// gathered so far are returned.
func Collect(ctx context.Context, root string) []model.FileEntry {
	var entries []model.FileEntry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel != "." && fsutil.SkipGitMetadata(rel, d) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		entry := model.FileEntry{Path: rel}
		if info, ierr := d.Info(); ierr == nil {
			entry.Size = info.Size()
		}
		if IsMarkdown(rel) {
			entry.Title = pageTitle(ctx, path)
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		logger.Warn(ctx, "could not list files", zap.String("root", root), zap.Error(err))
	}
	return entries
}

// Log narrates entries at debug level, one line per file, followed by an
// info summary.
func Log(ctx context.Context, label string, entries []model.FileEntry) {
	for _, e := range entries {
		logger.Debug(ctx, label, zap.String("file", e.Path), zap.Int64("size", e.Size), zap.String("title", e.Title))
	}
	logger.Info(ctx, label, zap.Int("files", len(entries)))
}

// IsMarkdown reports whether name has a Markdown extension.
func IsMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".mdx", ".markdown":
		return true
	default:
		return false
	}
}

func pageTitle(ctx context.Context, path string) string {
	f, err := os.Open(path)
	if err != nil {
		logger.Warn(ctx, "could not read page", zap.String("path", path), zap.Error(err))
		return ""
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, maxTitleBytes))
	if err != nil {
		logger.Warn(ctx, "could not read page", zap.String("path", path), zap.Error(err))
		return ""
	}
	return Title(data)
}

// Title returns the page title of a Markdown document: the front matter
// `title` if present, otherwise the text of the first level-1 heading.
func Title(source []byte) string {
	meta, body := splitFrontMatter(source)
	if len(meta) > 0 {
		var fm struct {
			Title string `yaml:"title"`
		}
		if err := yaml.Unmarshal(meta, &fm); err == nil && strings.TrimSpace(fm.Title) != "" {
			return strings.TrimSpace(fm.Title)
		}
	}

	root := goldmark.New().Parser().Parse(text.NewReader(body))

	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok || h.Level != 1 {
			return gmast.WalkContinue, nil
		}
		title = strings.TrimSpace(inlineText(h, body))
		return gmast.WalkStop, nil
	})
	return title
}

// inlineText concatenates the text segments below n.
func inlineText(n gmast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *gmast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *gmast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(inlineText(c, source))
		}
	}
	return buf.String()
}

// splitFrontMatter separates a leading `---` delimited YAML block.
func splitFrontMatter(source []byte) (meta, body []byte) {
	normalized := bytes.ReplaceAll(source, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return nil, source
	}
	rest := normalized[len("---\n"):]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return nil, source
	}
	meta = rest[:end]
	body = rest[end+len("\n---"):]
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}
	return meta, body
}
