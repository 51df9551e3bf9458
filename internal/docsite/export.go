package docsite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/kio/ccleanplus/internal/fsutil"
)

// MarshalJSON writes the sidebar as an object whose keys keep their order.
func (s Sidebar) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(g.Prefix)
		if err != nil {
			return nil, err
		}
		sections := g.Sections
		if sections == nil {
			sections = []SidebarSection{}
		}
		val, err := json.Marshal(sections)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a sidebar object in key order.
func (s *Sidebar) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("sidebar must be a JSON object")
	}
	out := Sidebar{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		prefix, ok := tok.(string)
		if !ok {
			return fmt.Errorf("sidebar key must be a string")
		}
		var sections []SidebarSection
		if err := dec.Decode(&sections); err != nil {
			return fmt.Errorf("sidebar %q: %w", prefix, err)
		}
		out = append(out, SidebarGroup{Prefix: prefix, Sections: sections})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

// JSON renders the configuration object the site generator consumes.
func (s Site) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// WriteJSON atomically writes the JSON configuration to path.
func (s Site) WriteJSON(path string) error {
	data, err := s.JSON()
	if err != nil {
		return fmt.Errorf("encode site config: %w", err)
	}
	return fsutil.WriteFileAtomic(path, append(data, '\n'), 0o644)
}

// RenderConfigModule writes a .vitepress/config.mts module that exports
// the configuration through defineConfig.
func (s Site) RenderConfigModule(w io.Writer) error {
	data, err := s.JSON()
	if err != nil {
		return fmt.Errorf("encode site config: %w", err)
	}
	_, err = fmt.Fprintf(w, "// Generated by ccp docs export. Do not edit.\nimport { defineConfig } from 'vitepress'\n\nexport default defineConfig(%s)\n", data)
	return err
}

// WriteConfigModule atomically writes the config module to path.
func (s Site) WriteConfigModule(path string) error {
	var buf bytes.Buffer
	if err := s.RenderConfigModule(&buf); err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}
