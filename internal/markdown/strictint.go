package markdown

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// StrictInt is a frontmatter integer that only accepts YAML integers.
// A plain int64 field would silently truncate 25.99 to 25.
type StrictInt int64

func (i *StrictInt) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!int" {
		return fmt.Errorf("line %d: %q is not an integer", node.Line, node.Value)
	}

	var v int64
	if err := node.Decode(&v); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*i = StrictInt(v)
	return nil
}
