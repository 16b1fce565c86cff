package rules

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a rule document mapping field names to declarations.
// Each declaration is either a type name or a mapping. Field order follows
// the document.
//
//	email: email
//	password:
//	  type: password
//	  options:
//	    min: 10
//	password_confirm:
//	  type: password
//	  options:
//	    shouldMatch: password
func ParseYAML(doc []byte) (*Set, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(doc, &root); err != nil {
		return nil, errors.Join(ErrParsingRules, err)
	}
	return setFromNode(&root)
}

// ParseJSON decodes a JSON rule document. JSON is read as YAML flow
// syntax, so key order is preserved the same way.
func ParseJSON(doc []byte) (*Set, error) {
	return ParseYAML(doc)
}

// Parse reads a YAML or JSON rule document.
func Parse(r io.Reader) (*Set, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, errors.Join(ErrParsingRules, err)
	}
	return ParseYAML(buf.Bytes())
}

func setFromNode(root *yaml.Node) (*Set, error) {
	n := root
	if n.Kind == 0 {
		return NewSet(), nil
	}
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return NewSet(), nil
		}
		n = n.Content[0]
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: expected a mapping of fields", ErrParsingRules, n.Line)
	}

	set := NewSet()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		var decl Declaration
		if err := value.Decode(&decl); err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", ErrParsingRules, key.Value, err)
		}
		set.Add(key.Value, decl)
	}
	return set, nil
}

// UnmarshalYAML accepts a bare type name as shorthand and a single check
// mapping in place of a list.
func (d *Declaration) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		*d = Shorthand(Type(n.Value))
		return nil
	}
	if n.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Value == "checks" && n.Content[i+1].Kind == yaml.MappingNode {
				single := n.Content[i+1]
				n.Content[i+1] = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: []*yaml.Node{single}}
			}
		}
	}
	type plain Declaration
	return n.Decode((*plain)(d))
}

// UnmarshalYAML accepts a boolean or a condition mapping.
func (r *Requirement) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return fmt.Errorf("required: %w", err)
		}
		*r = Requirement{value: b}
		return nil
	}
	var c Condition
	if err := n.Decode(&c); err != nil {
		return err
	}
	*r = Requirement{condition: &c}
	return nil
}

// UnmarshalYAML keeps the literal text of numeric bounds.
func (l *Limit) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: bound must be a scalar", n.Line)
	}
	*l = Limit(n.Value)
	return nil
}

// UnmarshalYAML accepts a bare expression or a {test, err} mapping.
func (p *Pattern) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		*p = Pattern{Expr: n.Value}
		return nil
	}
	type plain Pattern
	return n.Decode((*plain)(p))
}

// UnmarshalYAML accepts a bare target or a {target, err} mapping, where
// value is read as a synonym of target.
func (m *Match) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		*m = Match{Target: n.Value}
		return nil
	}
	var raw struct {
		Target string `yaml:"target"`
		Value  string `yaml:"value"`
		Err    string `yaml:"err"`
	}
	if err := n.Decode(&raw); err != nil {
		return err
	}
	*m = Match{Target: raw.Target, Err: raw.Err}
	if m.Target == "" {
		m.Target = raw.Value
	}
	return nil
}
