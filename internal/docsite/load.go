package docsite

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a site configuration from a YAML file.
func Load(path string) (Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Site{}, fmt.Errorf("read site config: %w", err)
	}
	site, err := Parse(data)
	if err != nil {
		return Site{}, fmt.Errorf("%s: %w", path, err)
	}
	return site, nil
}

// Parse decodes a YAML site configuration. Unknown keys are rejected.
func Parse(data []byte) (Site, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var site Site
	if err := dec.Decode(&site); err != nil {
		if errors.Is(err, io.EOF) {
			return Site{}, errors.New("site config is empty")
		}
		return Site{}, fmt.Errorf("parse site config: %w", err)
	}
	return site, nil
}

// MarshalYAML writes the sidebar as a mapping in prefix order.
func (s Sidebar) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, g := range s {
		var val yaml.Node
		if err := val.Encode(g.Sections); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: g.Prefix},
			&val,
		)
	}
	return node, nil
}

// UnmarshalYAML reads a prefix → sections mapping, keeping key order.
func (s *Sidebar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: sidebar must be a mapping of path prefix to sections", node.Line)
	}
	out := make(Sidebar, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		var sections []SidebarSection
		if err := val.Decode(&sections); err != nil {
			return fmt.Errorf("sidebar %q: %w", key.Value, err)
		}
		out = append(out, SidebarGroup{Prefix: key.Value, Sections: sections})
	}
	*s = out
	return nil
}

// Marshal encodes the site back to YAML.
func (s Site) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
