package docsite

// SiteMetadata holds the top-level site options.
type SiteMetadata struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	// Base is the URL path the site is served under, e.g. "/" or "/docs/".
	Base        string `yaml:"base" json:"base"`
	Lang        string `yaml:"lang,omitempty" json:"lang,omitempty"`
	CleanURLs   bool   `yaml:"cleanUrls" json:"cleanUrls"`
	LastUpdated bool   `yaml:"lastUpdated" json:"lastUpdated"`
}

// NavEntry is one link in the top navigation bar or a sidebar section.
type NavEntry struct {
	Text string `yaml:"text" json:"text"`
	Link string `yaml:"link" json:"link"`
}

// SidebarSection is a titled, ordered group of links.
type SidebarSection struct {
	Text      string     `yaml:"text" json:"text"`
	Collapsed *bool      `yaml:"collapsed,omitempty" json:"collapsed,omitempty"`
	Items     []NavEntry `yaml:"items" json:"items"`
}

// SidebarGroup is the list of sections shown for pages under Prefix.
type SidebarGroup struct {
	Prefix   string
	Sections []SidebarSection
}

// Sidebar is an ordered mapping from URL prefix to sections.
type Sidebar []SidebarGroup

// Lookup returns the sections registered for prefix.
func (s Sidebar) Lookup(prefix string) ([]SidebarSection, bool) {
	for _, g := range s {
		if g.Prefix == prefix {
			return g.Sections, true
		}
	}
	return nil, false
}

// SocialLink is an icon link in the navigation bar.
type SocialLink struct {
	Icon string `yaml:"icon" json:"icon"`
	Link string `yaml:"link" json:"link"`
}

// FooterConfig is the page footer.
type FooterConfig struct {
	Message   string `yaml:"message" json:"message"`
	Copyright string `yaml:"copyright" json:"copyright"`
}

// EditLinkConfig renders the "edit this page" link. Pattern must contain
// the :path placeholder.
type EditLinkConfig struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Text    string `yaml:"text" json:"text"`
}

// SearchConfig selects the search provider.
type SearchConfig struct {
	Provider string `yaml:"provider" json:"provider"`
}

// ThemeConfig groups the default-theme options.
type ThemeConfig struct {
	Nav         []NavEntry      `yaml:"nav" json:"nav"`
	Sidebar     Sidebar         `yaml:"sidebar" json:"sidebar"`
	SocialLinks []SocialLink    `yaml:"socialLinks,omitempty" json:"socialLinks,omitempty"`
	Footer      *FooterConfig   `yaml:"footer,omitempty" json:"footer,omitempty"`
	EditLink    *EditLinkConfig `yaml:"editLink,omitempty" json:"editLink,omitempty"`
	Search      *SearchConfig   `yaml:"search,omitempty" json:"search,omitempty"`
}

// CodeTheme names the syntax highlighting themes.
type CodeTheme struct {
	Light string `yaml:"light" json:"light"`
	Dark  string `yaml:"dark" json:"dark"`
}

// MarkdownConfig holds markdown rendering options.
type MarkdownConfig struct {
	LineNumbers bool       `yaml:"lineNumbers" json:"lineNumbers"`
	Theme       *CodeTheme `yaml:"theme,omitempty" json:"theme,omitempty"`
}

// Site is the complete documentation site configuration.
type Site struct {
	SiteMetadata `yaml:",inline"`
	ThemeConfig  ThemeConfig     `yaml:"themeConfig" json:"themeConfig"`
	Markdown     *MarkdownConfig `yaml:"markdown,omitempty" json:"markdown,omitempty"`
}

// Known social icons and search providers.
var (
	socialIcons = map[string]bool{
		"github": true, "gitee": true, "discord": true, "twitter": true, "x": true,
		"youtube": true, "mastodon": true, "linkedin": true, "slack": true,
		"facebook": true, "instagram": true, "npm": true, "bilibili": true,
	}
	searchProviders = map[string]bool{"local": true, "algolia": true}
)

// Default returns the ccp documentation site configuration. Each call
// builds a fresh value.
func Default() Site {
	collapsed := false
	return Site{
		SiteMetadata: SiteMetadata{
			Title:       "C Cleaner Plus",
			Description: "A powerful C: drive cleanup tool for Windows",
			Base:        "/",
			Lang:        "en-US",
			CleanURLs:   true,
			LastUpdated: true,
		},
		ThemeConfig: ThemeConfig{
			Nav: []NavEntry{
				{Text: "Home", Link: "/"},
				{Text: "Guide", Link: "/guide/"},
				{Text: "Features", Link: "/features/"},
				{Text: "FAQ", Link: "/faq/"},
				{Text: "Changelog", Link: "/changelog"},
			},
			Sidebar: Sidebar{
				{Prefix: "/guide/", Sections: []SidebarSection{
					{Text: "Getting Started", Items: []NavEntry{
						{Text: "Introduction", Link: "/guide/"},
						{Text: "Installation", Link: "/guide/installation"},
						{Text: "Quick Start", Link: "/guide/quick-start"},
						{Text: "Administrator Rights", Link: "/guide/admin"},
					}},
					{Text: "Configuration", Items: []NavEntry{
						{Text: "Settings File", Link: "/guide/settings"},
						{Text: "Custom Targets", Link: "/guide/custom-targets"},
					}},
				}},
				{Prefix: "/features/", Sections: []SidebarSection{
					{Text: "Cleaning", Items: []NavEntry{
						{Text: "Regular Clean", Link: "/features/clean"},
						{Text: "Clean Targets", Link: "/features/targets"},
						{Text: "Restore Points", Link: "/features/restore-point"},
					}},
					{Text: "Large Files", Collapsed: &collapsed, Items: []NavEntry{
						{Text: "Large File Scan", Link: "/features/bigfiles"},
						{Text: "Disk Detection", Link: "/features/disk-type"},
					}},
				}},
				{Prefix: "/faq/", Sections: []SidebarSection{
					{Text: "FAQ", Items: []NavEntry{
						{Text: "Common Questions", Link: "/faq/"},
						{Text: "Troubleshooting", Link: "/faq/troubleshooting"},
					}},
				}},
			},
			SocialLinks: []SocialLink{
				{Icon: "github", Link: "https://github.com/kio/ccleanplus"},
			},
			Footer: &FooterConfig{
				Message:   "Released under the MIT License.",
				Copyright: "Copyright © 2025 Kio",
			},
			EditLink: &EditLinkConfig{
				Pattern: "https://github.com/kio/ccleanplus/edit/main/docs/:path",
				Text:    "Edit this page on GitHub",
			},
			Search: &SearchConfig{Provider: "local"},
		},
		Markdown: &MarkdownConfig{
			LineNumbers: true,
			Theme:       &CodeTheme{Light: "github-light", Dark: "github-dark"},
		},
	}
}
