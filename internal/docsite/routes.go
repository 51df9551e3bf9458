package docsite

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Routes maps page routes ("/guide/installation", "/guide/") to page titles.
type Routes map[string]string

// skipDirs are never part of the page tree.
var skipDirs = map[string]bool{
	".vitepress":   true,
	"node_modules": true,
	"public":       true,
}

// DiscoverRoutes walks docsDir for markdown pages and reads each page's
// title from its frontmatter, falling back to the first level-one heading.
func DiscoverRoutes(docsDir string) (Routes, error) {
	md := goldmark.New(goldmark.WithExtensions(meta.Meta))
	routes := make(Routes)

	err := filepath.WalkDir(docsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != docsDir && (skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}
		rel, err := filepath.Rel(docsDir, path)
		if err != nil {
			return err
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		routes[RouteFor(filepath.ToSlash(rel))] = pageTitle(md, src)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover routes in %s: %w", docsDir, err)
	}
	return routes, nil
}

// RouteFor converts a slash-separated page path relative to the docs root
// into its route.
func RouteFor(rel string) string {
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	if rel == "index" {
		return "/"
	}
	if strings.HasSuffix(rel, "/index") {
		return "/" + strings.TrimSuffix(rel, "index")
	}
	return "/" + rel
}

func pageTitle(md goldmark.Markdown, src []byte) string {
	ctx := parser.NewContext()
	doc := md.Parser().Parse(text.NewReader(src), parser.WithContext(ctx))

	if m := meta.Get(ctx); m != nil {
		if t, ok := m["title"].(string); ok && t != "" {
			return t
		}
	}

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			title = headingText(h, src)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}

func headingText(h *ast.Heading, src []byte) string {
	var b strings.Builder
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
		} else {
			for cc := c.FirstChild(); cc != nil; cc = cc.NextSibling() {
				if t, ok := cc.(*ast.Text); ok {
					b.Write(t.Segment.Value(src))
				}
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// Resolves reports whether a site-relative link points at a known page.
// Links may carry a .html or .md suffix; "/foo" also matches "/foo/".
func (r Routes) Resolves(link string) bool {
	if r == nil {
		return false
	}
	l := stripFragment(link)
	for _, ext := range []string{".html", ".md"} {
		l = strings.TrimSuffix(l, ext)
	}
	if _, ok := r[l]; ok {
		return true
	}
	if !strings.HasSuffix(l, "/") {
		_, ok := r[l+"/"]
		return ok
	}
	return false
}

// HasPrefix reports whether any route lies under prefix.
func (r Routes) HasPrefix(prefix string) bool {
	for route := range r {
		if strings.HasPrefix(route, prefix) {
			return true
		}
	}
	return false
}

// Sorted returns the routes in lexical order.
func (r Routes) Sorted() []string {
	out := make([]string, 0, len(r))
	for route := range r {
		out = append(out, route)
	}
	sort.Strings(out)
	return out
}
