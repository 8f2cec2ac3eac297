package render

import (
	"encoding/json"
	"fmt"

	"sigs.k8s.io/yaml"
)

// Encode renders an API object as canonical YAML. Encoding goes
// through JSON, so map keys come out sorted and the output is stable
// across runs. Marshaling artifacts of the typed structs, the null
// creationTimestamp and the empty status block, are stripped; the
// API server owns both.
func Encode(obj any) ([]byte, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to encode object: %w", err)
	}

	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to encode object: %w", err)
	}
	delete(tree, "status")
	pruneNullCreationTimestamps(tree)

	out, err := yaml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to encode object: %w", err)
	}
	return out, nil
}

// pruneNullCreationTimestamps removes the creationTimestamp: null
// entries ObjectMeta marshals for objects that never touched the API
// server. They appear at every nesting level with a pod template.
func pruneNullCreationTimestamps(tree map[string]any) {
	if v, ok := tree["creationTimestamp"]; ok && v == nil {
		delete(tree, "creationTimestamp")
	}
	for _, v := range tree {
		switch child := v.(type) {
		case map[string]any:
			pruneNullCreationTimestamps(child)
		case []any:
			for _, item := range child {
				if m, ok := item.(map[string]any); ok {
					pruneNullCreationTimestamps(m)
				}
			}
		}
	}
}

func newDocument(kind, name string, obj any) (Document, error) {
	data, err := Encode(obj)
	if err != nil {
		return Document{}, fmt.Errorf("%s/%s: %w", kind, name, err)
	}
	return Document{Kind: kind, Name: name, Object: obj, Bytes: data}, nil
}
