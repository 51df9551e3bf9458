package docsite

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr), "want *multierror.Error, got %T", err)
	out := make(map[string]string)
	for _, e := range merr.Errors {
		var fe *FieldError
		require.True(t, errors.As(e, &fe), "want *FieldError, got %T", e)
		out[fe.Field] = fe.Message
	}
	return out
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate(ValidateOptions{}))
}

func TestDefaultReturnsFreshValue(t *testing.T) {
	a := Default()
	a.ThemeConfig.Nav[0].Text = "changed"
	b := Default()
	assert.Equal(t, "Home", b.ThemeConfig.Nav[0].Text)
}

func TestValidateSidebarKeyMustBeNavTarget(t *testing.T) {
	s := Default()
	s.ThemeConfig.Sidebar = append(s.ThemeConfig.Sidebar, SidebarGroup{
		Prefix: "/orphan/",
		Sections: []SidebarSection{{Text: "Orphan", Items: []NavEntry{
			{Text: "Page", Link: "/orphan/page"},
		}}},
	})

	errs := fieldErrors(t, s.Validate(ValidateOptions{}))
	assert.Contains(t, errs, `themeConfig.sidebar["/orphan/"]`)

	// A page route under the prefix makes it valid.
	routes := Routes{"/orphan/page": "Page"}
	for _, r := range []string{"/", "/guide/", "/guide/installation", "/guide/quick-start", "/guide/admin",
		"/guide/settings", "/guide/custom-targets", "/features/", "/features/clean", "/features/targets",
		"/features/restore-point", "/features/bigfiles", "/features/disk-type", "/faq/", "/faq/troubleshooting",
		"/changelog"} {
		routes[r] = ""
	}
	require.NoError(t, s.Validate(ValidateOptions{Routes: routes}))
}

func TestValidateLabelsAndBase(t *testing.T) {
	s := Default()
	s.Base = "/docs/"
	s.ThemeConfig.Nav = []NavEntry{
		{Text: "Home", Link: "/docs/"},
		{Text: "", Link: "/docs/guide/"},
		{Text: "Elsewhere", Link: "/guide/"},
		{Text: "GitHub", Link: "https://github.com/kio/ccleanplus"},
	}
	s.ThemeConfig.Sidebar = Sidebar{{Prefix: "/docs/guide/", Sections: []SidebarSection{
		{Text: "Start", Items: []NavEntry{{Text: "Intro", Link: "/docs/guide/"}, {Text: " ", Link: "/docs/guide/x"}}},
	}}}

	errs := fieldErrors(t, s.Validate(ValidateOptions{}))
	assert.Contains(t, errs, "themeConfig.nav[1].text")
	assert.Contains(t, errs, "themeConfig.nav[2].link")
	assert.Contains(t, errs, `themeConfig.sidebar["/docs/guide/"][0].items[1].text`)
	assert.NotContains(t, errs, "themeConfig.nav[3].link", "external links are exempt")
	assert.NotContains(t, errs, `themeConfig.sidebar["/docs/guide/"]`)
}

func TestValidateReportsEverything(t *testing.T) {
	s := Default()
	s.Title = ""
	s.Base = "docs"
	s.ThemeConfig.Nav = append(s.ThemeConfig.Nav, NavEntry{Text: "Again", Link: "/guide/"})
	s.ThemeConfig.SocialLinks = []SocialLink{{Icon: "myspace", Link: "http://x"}}
	s.ThemeConfig.EditLink = &EditLinkConfig{Pattern: "/edit", Text: ""}
	s.ThemeConfig.Search = &SearchConfig{Provider: "google"}
	s.ThemeConfig.Footer = &FooterConfig{}
	s.Markdown.Theme = &CodeTheme{Light: "x"}
	s.ThemeConfig.Sidebar = append(s.ThemeConfig.Sidebar,
		SidebarGroup{Prefix: "guide", Sections: nil},
		SidebarGroup{Prefix: "/faq/", Sections: []SidebarSection{{Text: "", Items: nil}}},
	)

	errs := fieldErrors(t, s.Validate(ValidateOptions{}))
	for _, field := range []string{
		"title",
		"base",
		"themeConfig.nav[5].link",
		"themeConfig.socialLinks[0].icon",
		"themeConfig.socialLinks[0].link",
		"themeConfig.editLink.pattern",
		"themeConfig.editLink.text",
		"themeConfig.search.provider",
		"themeConfig.footer",
		"markdown.theme",
		`themeConfig.sidebar["guide"]`,
		`themeConfig.sidebar["/faq/"][0].text`,
		`themeConfig.sidebar["/faq/"][0].items`,
	} {
		assert.Contains(t, errs, field)
	}
}

func TestValidateWithRoutesChecksTargets(t *testing.T) {
	s := Default()
	routes := Routes{"/": "Home", "/guide/": "Guide"}
	errs := fieldErrors(t, s.Validate(ValidateOptions{Routes: routes}))
	assert.Contains(t, errs, "themeConfig.nav[2].link")
	assert.NotContains(t, errs, "themeConfig.nav[0].link")
	assert.NotContains(t, errs, "themeConfig.nav[1].link")
}

const sampleYAML = `
title: Sample Docs
description: test
base: /
cleanUrls: true
lastUpdated: false
themeConfig:
  nav:
    - { text: Home, link: / }
    - { text: Zeta, link: /zeta/ }
    - { text: Alpha, link: /alpha/ }
  sidebar:
    /zeta/:
      - text: Zeta
        items:
          - { text: One, link: /zeta/one }
    /alpha/:
      - text: Alpha
        collapsed: true
        items:
          - { text: Two, link: /alpha/two }
  search:
    provider: local
`

func TestParseKeepsSidebarOrder(t *testing.T) {
	s, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	require.Len(t, s.ThemeConfig.Sidebar, 2)
	assert.Equal(t, "/zeta/", s.ThemeConfig.Sidebar[0].Prefix)
	assert.Equal(t, "/alpha/", s.ThemeConfig.Sidebar[1].Prefix)

	sections, ok := s.ThemeConfig.Sidebar.Lookup("/alpha/")
	require.True(t, ok)
	require.NotNil(t, sections[0].Collapsed)
	assert.True(t, *sections[0].Collapsed)

	require.NoError(t, s.Validate(ValidateOptions{}))
}

func TestValidateDuplicateSidebarKey(t *testing.T) {
	doc := strings.Replace(sampleYAML, "    /alpha/:", `    /zeta/:
      - text: Zeta again
        items:
          - { text: Three, link: /zeta/three }
    /alpha/:`, 1)
	s, err := Parse([]byte(doc))
	require.NoError(t, err, "repeated sidebar keys survive parsing so Validate can name them")
	require.Len(t, s.ThemeConfig.Sidebar, 3)
	assert.Equal(t, "/zeta/", s.ThemeConfig.Sidebar[1].Prefix)

	errs := fieldErrors(t, s.Validate(ValidateOptions{}))
	assert.Equal(t, "duplicate sidebar key", errs[`themeConfig.sidebar["/zeta/"]`])
	assert.NotContains(t, errs, `themeConfig.sidebar["/alpha/"]`)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(nil)
	require.Error(t, err)

	_, err = Parse([]byte("title: x\nunknownKey: 1\n"))
	require.Error(t, err)

	_, err = Parse([]byte("title: x\nthemeConfig:\n  sidebar: [1, 2]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sidebar")
}

func TestYAMLRoundTrip(t *testing.T) {
	want := Default()
	data, err := want.Marshal()
	require.NoError(t, err)

	got, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestJSONShapeAndRoundTrip(t *testing.T) {
	want := Default()
	data, err := want.JSON()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "C Cleaner Plus", raw["title"])
	assert.Equal(t, true, raw["cleanUrls"])
	theme := raw["themeConfig"].(map[string]any)
	assert.Contains(t, theme, "nav")
	assert.Contains(t, theme, "sidebar")
	assert.Equal(t, "local", theme["search"].(map[string]any)["provider"])

	// Sidebar keys appear in declaration order.
	str := string(data)
	assert.Less(t, strings.Index(str, `"/guide/": [`), strings.Index(str, `"/features/": [`))
	assert.Less(t, strings.Index(str, `"/features/": [`), strings.Index(str, `"/faq/": [`))

	var got Site
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want, got)
}

func TestSidebarUnmarshalJSONRejectsArray(t *testing.T) {
	var s Sidebar
	require.Error(t, json.Unmarshal([]byte(`[1]`), &s))
}

func TestRenderConfigModule(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().RenderConfigModule(&buf))
	out := buf.String()
	assert.Contains(t, out, "import { defineConfig } from 'vitepress'")
	assert.Contains(t, out, "export default defineConfig({")
	assert.Contains(t, out, `"title": "C Cleaner Plus"`)
}

func TestWriteFilesAndLoad(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "config.json")
	require.NoError(t, Default().WriteJSON(jsonPath))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))

	modPath := filepath.Join(dir, "config.mts")
	require.NoError(t, Default().WriteConfigModule(modPath))
	assert.FileExists(t, modPath)

	yamlPath := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(sampleYAML), 0o644))
	s, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "Sample Docs", s.Title)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
