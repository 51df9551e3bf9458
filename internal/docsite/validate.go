package docsite

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// FieldError describes one invalid field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateOptions tunes Validate.
type ValidateOptions struct {
	// Routes, when set, are the pages that exist in the docs directory.
	// Internal links must then resolve to one of them.
	Routes Routes
}

type validator struct {
	errs *multierror.Error
}

func (v *validator) add(field, format string, args ...interface{}) {
	v.errs = multierror.Append(v.errs, &FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// IsExternal reports whether link leaves the site.
func IsExternal(link string) bool {
	l := strings.ToLower(link)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://") || strings.HasPrefix(l, "mailto:")
}

// Validate checks the configuration and returns every problem found, or nil.
func (s Site) Validate(opts ValidateOptions) error {
	v := &validator{}

	if strings.TrimSpace(s.Title) == "" {
		v.add("title", "must not be empty")
	}
	base := s.Base
	if !strings.HasPrefix(base, "/") || !strings.HasSuffix(base, "/") {
		v.add("base", "must start and end with '/', got %q", base)
		base = "/"
	}

	navTargets := make(map[string]bool)
	for i, n := range s.ThemeConfig.Nav {
		field := fmt.Sprintf("themeConfig.nav[%d]", i)
		s.checkEntry(v, field, n, base, opts.Routes)
		if !IsExternal(n.Link) && n.Link != "" {
			key := stripFragment(n.Link)
			if navTargets[key] {
				v.add(field+".link", "duplicate nav target %q", n.Link)
			}
			navTargets[key] = true
		}
	}

	seen := make(map[string]bool)
	for _, g := range s.ThemeConfig.Sidebar {
		field := fmt.Sprintf("themeConfig.sidebar[%q]", g.Prefix)
		switch {
		case !strings.HasPrefix(g.Prefix, "/"):
			v.add(field, "key must be a URL path prefix starting with '/'")
		case seen[g.Prefix]:
			v.add(field, "duplicate sidebar key")
		case !navTargets[g.Prefix] && !opts.Routes.HasPrefix(trimBase(g.Prefix, base)):
			v.add(field, "key is neither a nav target nor a prefix of any page route")
		}
		seen[g.Prefix] = true

		if len(g.Sections) == 0 {
			v.add(field, "has no sections")
		}
		for si, sec := range g.Sections {
			sfield := fmt.Sprintf("%s[%d]", field, si)
			if strings.TrimSpace(sec.Text) == "" {
				v.add(sfield+".text", "section title must not be empty")
			}
			if len(sec.Items) == 0 {
				v.add(sfield+".items", "section has no items")
			}
			for ii, it := range sec.Items {
				s.checkEntry(v, fmt.Sprintf("%s.items[%d]", sfield, ii), it, base, opts.Routes)
			}
		}
	}

	for i, sl := range s.ThemeConfig.SocialLinks {
		field := fmt.Sprintf("themeConfig.socialLinks[%d]", i)
		if !socialIcons[sl.Icon] {
			v.add(field+".icon", "unknown icon %q", sl.Icon)
		}
		if u, err := url.Parse(sl.Link); err != nil || u.Scheme != "https" || u.Host == "" {
			v.add(field+".link", "must be an absolute https URL, got %q", sl.Link)
		}
	}

	if f := s.ThemeConfig.Footer; f != nil && f.Message == "" && f.Copyright == "" {
		v.add("themeConfig.footer", "set message or copyright, or omit the footer")
	}
	if e := s.ThemeConfig.EditLink; e != nil {
		if !strings.Contains(e.Pattern, ":path") {
			v.add("themeConfig.editLink.pattern", "must contain the :path placeholder")
		}
		if !IsExternal(e.Pattern) {
			v.add("themeConfig.editLink.pattern", "must be an absolute URL")
		}
		if strings.TrimSpace(e.Text) == "" {
			v.add("themeConfig.editLink.text", "must not be empty")
		}
	}
	if sc := s.ThemeConfig.Search; sc != nil && !searchProviders[sc.Provider] {
		v.add("themeConfig.search.provider", "unknown provider %q", sc.Provider)
	}
	if m := s.Markdown; m != nil && m.Theme != nil && (m.Theme.Light == "" || m.Theme.Dark == "") {
		v.add("markdown.theme", "both light and dark themes are required")
	}

	return v.errs.ErrorOrNil()
}

func (s Site) checkEntry(v *validator, field string, e NavEntry, base string, routes Routes) {
	if strings.TrimSpace(e.Text) == "" {
		v.add(field+".text", "label must not be empty")
	}
	if e.Link == "" {
		v.add(field+".link", "target must not be empty")
		return
	}
	if IsExternal(e.Link) {
		return
	}
	if !strings.HasPrefix(e.Link, base) {
		v.add(field+".link", "target %q must start with base path %q", e.Link, base)
		return
	}
	if routes != nil && !routes.Resolves(trimBase(e.Link, base)) {
		v.add(field+".link", "target %q does not match any page", e.Link)
	}
}

func stripFragment(link string) string {
	if i := strings.IndexAny(link, "#?"); i >= 0 {
		return link[:i]
	}
	return link
}

// trimBase maps a site link to a route relative to the docs root.
func trimBase(link, base string) string {
	return "/" + strings.TrimPrefix(stripFragment(link), base)
}
