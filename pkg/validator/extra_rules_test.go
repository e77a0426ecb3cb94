package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

func evaluateExtra(t *testing.T, rule string, value any, args ...any) bool {
	t.Helper()
	p, ok := validator.ExtraPredicates()[rule]
	require.True(t, ok, "rule %q is not an extra rule", rule)
	return p.Evaluate(value, args...)
}

func TestExtraRules(t *testing.T) {
	t.Parallel()

	t.Run("uuid", func(t *testing.T) {
		assert.True(t, evaluateExtra(t, "uuid", "550e8400-e29b-41d4-a716-446655440000"))
		assert.False(t, evaluateExtra(t, "uuid", "550e8400e29b41d4a716446655440000"))
		assert.False(t, evaluateExtra(t, "uuid", "550e8400-e29b-41d4-a716-44665544000z"))
		assert.False(t, evaluateExtra(t, "uuid", 42))
	})

	t.Run("email", func(t *testing.T) {
		assert.True(t, evaluateExtra(t, "email", "user@example.com"))
		assert.False(t, evaluateExtra(t, "email", "User <user@example.com>"))
		assert.False(t, evaluateExtra(t, "email", "user@localhost"))
		assert.False(t, evaluateExtra(t, "email", "user@example..com"))
		assert.False(t, evaluateExtra(t, "email", "not an email"))
	})

	t.Run("url", func(t *testing.T) {
		assert.True(t, evaluateExtra(t, "url", "https://example.com/path"))
		assert.False(t, evaluateExtra(t, "url", "/relative/path"))
		assert.False(t, evaluateExtra(t, "url", "example.com"))
	})

	t.Run("ip", func(t *testing.T) {
		assert.True(t, evaluateExtra(t, "ip", "192.168.0.1"))
		assert.True(t, evaluateExtra(t, "ip", "::1"))
		assert.False(t, evaluateExtra(t, "ip", "999.0.0.1"))
	})

	t.Run("character classes", func(t *testing.T) {
		assert.True(t, evaluateExtra(t, "alpha", "abcXYZ"))
		assert.False(t, evaluateExtra(t, "alpha", "abc1"))
		assert.True(t, evaluateExtra(t, "alphanumeric", "abc123"))
		assert.False(t, evaluateExtra(t, "alphanumeric", "abc-123"))
		assert.True(t, evaluateExtra(t, "numeric", "0123"))
		assert.False(t, evaluateExtra(t, "numeric", "12.3"))
		assert.True(t, evaluateExtra(t, "lowercase", "abc-1"))
		assert.False(t, evaluateExtra(t, "lowercase", "Abc"))
		assert.True(t, evaluateExtra(t, "uppercase", "ABC-1"))
		assert.False(t, evaluateExtra(t, "uppercase", "aBC"))
	})

	t.Run("len", func(t *testing.T) {
		assert.True(t, evaluateExtra(t, "len", "abc", 3))
		assert.False(t, evaluateExtra(t, "len", "abcd", 3))
	})

	t.Run("numeric bounds", func(t *testing.T) {
		assert.True(t, evaluateExtra(t, "gte", 18, 18))
		assert.False(t, evaluateExtra(t, "gte", 17.5, 18))
		assert.True(t, evaluateExtra(t, "lte", 3, 3.5))
		assert.False(t, evaluateExtra(t, "lte", "3", 5), "strings are not numbers")
	})

	t.Run("notin", func(t *testing.T) {
		assert.True(t, evaluateExtra(t, "notin", "guest", "admin", "root"))
		assert.False(t, evaluateExtra(t, "notin", "root", "admin", "root"))
	})
}

func TestWithExtraRules(t *testing.T) {
	t.Parallel()

	e := validator.New(validator.WithExtraRules())
	for name := range validator.ExtraPredicates() {
		assert.True(t, e.HasRule(name), name)
	}

	rs := validator.NewRuleSet().
		Add("id", validator.Field().Rule("uuid")).
		Add("age", validator.Field().Rule("gte", 18))
	e.CheckAll(rs, validator.Record{"id": "nope", "age": 16})

	assert.Equal(t, []string{"id must be a valid UUID", "age must be at least 18"}, e.Messages())
	assert.False(t, validator.New().HasRule("uuid"))
}
