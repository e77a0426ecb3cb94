package rulefile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// Parse decodes a YAML (or JSON) rule set. Mapping order is kept, so fields
// and rules evaluate in the order they appear in the document.
//
//	name:
//	  required: true
//	  between: [3, 20]
//	email:
//	  regexp: ".+@.+"
//	  msg: bad email
func Parse(ctx context.Context, content []byte, opts ...Option) (*validator.RuleSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	root, err := documentRoot(content)
	if err != nil {
		return nil, err
	}

	rs := validator.NewRuleSet()
	var ignored []string
	for i := 0; i+1 < len(root.Content); i += 2 {
		field := root.Content[i].Value
		spec, skipped, err := parseFieldSpec(resolve(root.Content[i+1]), o)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		for _, key := range skipped {
			ignored = append(ignored, field+"."+key)
		}
		rs.Add(field, spec)
	}

	if o.strict != nil {
		if unknown := append(ignored, o.strict.UnknownRules(rs)...); len(unknown) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRule, strings.Join(unknown, ", "))
		}
	}
	return rs, nil
}

// Load reads and parses a rule set file.
func Load(ctx context.Context, path string, opts ...Option) (*validator.RuleSet, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadingFile, err)
	}
	return Parse(ctx, content, opts...)
}

func documentRoot(content []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	if len(doc.Content) == 0 {
		return nil, ErrEmptyDocument
	}

	root := resolve(doc.Content[0])
	if isNull(root) {
		return nil, ErrEmptyDocument
	}
	if root.Kind != yaml.MappingNode {
		return nil, ErrInvalidDocument
	}
	return root, nil
}

// parseFieldSpec also returns the keys it dropped: a literal "msg" when the
// message key has been renamed is neither a rule nor the message.
func parseFieldSpec(node *yaml.Node, o *options) (*validator.FieldSpec, []string, error) {
	spec := validator.Field()
	if isNull(node) {
		return spec, nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, nil, ErrInvalidFieldSpec
	}

	var skipped []string

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := resolve(node.Content[i+1])

		switch key {
		case validator.RequiredKey:
			// Only a real boolean true marks a field required.
			var required bool
			if val.Kind == yaml.ScalarNode && val.ShortTag() == "!!bool" && val.Decode(&required) == nil && required {
				spec.Required()
			}
		case o.messageKey:
			if val.Kind == yaml.ScalarNode && val.ShortTag() == "!!str" {
				spec.Message(val.Value)
			}
		case validator.MessageKey:
			skipped = append(skipped, key)
		default:
			args, err := ruleArgs(val)
			if err != nil {
				return nil, nil, fmt.Errorf("rule %q: %w", key, err)
			}
			spec.Rule(key, args...)
		}
	}
	return spec, skipped, nil
}

// ruleArgs turns a scalar into one argument, a sequence into positional
// arguments and null into none.
func ruleArgs(node *yaml.Node) ([]any, error) {
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return []any{v}, nil
	}

	args := make([]any, 0, len(node.Content))
	for _, item := range node.Content {
		var v any
		if err := resolve(item).Decode(&v); err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

func resolve(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null")
}
