package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Paths follow the file layout, for example:
//
//	log_level
//	accent_fallback
//	global.border_width
//	global.active_color
//	global.animations.fade.duration
//	window_rules.0.pattern
//	window_rules.1.inactive_color
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	// Exact-path file source wins.
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}

	// Window rule fields fall back to the global section they inherit from.
	if parts := strings.SplitN(path, ".", 3); len(parts) == 3 && parts[0] == "window_rules" {
		if src, ok := res.Sources["global."+parts[2]]; ok {
			return value, src, nil
		}
	}

	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	var node yaml.Node
	if err := node.Encode(cfg.Document()); err != nil {
		return nil, err
	}
	cur := &node
	if cur.Kind == yaml.DocumentNode && len(cur.Content) > 0 {
		cur = cur.Content[0]
	}

	for _, part := range strings.Split(path, ".") {
		next, ok := child(cur, part)
		if !ok {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		cur = next
	}

	var value any
	if err := cur.Decode(&value); err != nil {
		return nil, err
	}
	return value, nil
}

func child(node *yaml.Node, key string) (*yaml.Node, bool) {
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == key {
				return node.Content[i+1], true
			}
		}
	case yaml.SequenceNode:
		idx, err := strconv.Atoi(key)
		if err == nil && idx >= 0 && idx < len(node.Content) {
			return node.Content[idx], true
		}
	}
	return nil, false
}
