package store

import (
	"encoding/json"
	"fmt"
	"strings"
)

// flatten decomposes a tree value into scalar leaves keyed by relative path.
// An empty prefix addresses the value itself. Nil values and empty objects
// produce no leaves, which makes the enclosing write a plain delete.
func flatten(prefix string, value any, out map[string]any) error {
	obj, ok := value.(map[string]any)
	if !ok {
		if value == nil {
			return nil
		}
		out[prefix] = value
		return nil
	}

	for key, child := range obj {
		if key == "" || strings.ContainsRune(key, '/') {
			return fmt.Errorf("invalid object key %q", key)
		}
		p := key
		if prefix != "" {
			p = prefix + "/" + key
		}
		if err := flatten(p, child, out); err != nil {
			return err
		}
	}
	return nil
}

// compose rebuilds a nested tree value from leaf rows. Leaves are absolute
// paths; root is the subtree being read. A scalar stored exactly at root is
// returned as-is. No rows yields nil.
func compose(root string, leaves map[string][]byte) (any, error) {
	if raw, ok := leaves[root]; ok {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("corrupt leaf at %q: %w", root, err)
		}
		return v, nil
	}

	tree := make(map[string]any)
	for path, raw := range leaves {
		rel := strings.TrimPrefix(path, root+"/")
		if rel == path {
			continue
		}

		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("corrupt leaf at %q: %w", path, err)
		}

		node := tree
		segs := strings.Split(rel, "/")
		for _, seg := range segs[:len(segs)-1] {
			child, ok := node[seg].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[seg] = child
			}
			node = child
		}
		node[segs[len(segs)-1]] = v
	}

	if len(tree) == 0 {
		return nil, nil
	}
	return tree, nil
}
