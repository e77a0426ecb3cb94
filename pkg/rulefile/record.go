package rulefile

import (
	"context"
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// ParseRecord decodes a YAML or JSON object into a Record.
func ParseRecord(ctx context.Context, content []byte) (validator.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var data any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	if data == nil {
		return nil, ErrEmptyDocument
	}

	m, ok := data.(map[string]any)
	if !ok {
		return nil, ErrInvalidDocument
	}
	return validator.Record(m), nil
}

// LoadRecord reads and parses a record file.
func LoadRecord(ctx context.Context, path string) (validator.Record, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadingFile, err)
	}
	return ParseRecord(ctx, content)
}
