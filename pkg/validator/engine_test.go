package validator_test

import (
	"bytes"
	"log/slog"
	"net/url"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

func evenRule(value any, _ ...any) bool {
	n, ok := value.(int)
	return ok && n%2 == 0
}

func TestEngine_New(t *testing.T) {
	t.Parallel()

	e := validator.New()
	assert.True(t, e.Valid())
	assert.Empty(t, e.FailedFields())
	assert.Empty(t, e.Messages())
	assert.NoError(t, e.Err())
	assert.Equal(t, []string{"between", "in", "is", "max", "min", "regexp", "type"}, e.Rules())
}

func TestEngine_PassingRecord(t *testing.T) {
	t.Parallel()

	rs := validator.NewRuleSet().
		Add("name", validator.Field().Required().Rule("between", 3, 8)).
		Add("role", validator.Field().Rule("in", "admin", "editor")).
		Add("age", validator.Field().Rule("type", "number"))

	e := validator.New()
	assert.True(t, e.CheckAll(rs, validator.Record{"name": "Alice", "role": "admin", "age": 30}))
	assert.Equal(t, validator.Result{Valid: true, FailedFields: []string{}, Messages: []string{}}, e.Result())
}

func TestEngine_ShortCircuit(t *testing.T) {
	t.Parallel()

	rs := validator.NewRuleSet().
		Add("name", validator.Field().Rule("min", 5).Rule("regexp", "^[0-9]+$")).
		Add("code", validator.Field().Rule("max", 2)).
		Add("email", validator.Field().Required())
	rec := validator.Record{"name": "abc", "code": "abcdef"}

	t.Run("stops at the first failure", func(t *testing.T) {
		e := validator.New()
		assert.False(t, e.Check(rs, rec))
		assert.Equal(t, []string{"name"}, e.FailedFields())
		assert.Equal(t, []string{"The length of name must be more than 5"}, e.Messages())
	})

	t.Run("collect-all reports every failing rule", func(t *testing.T) {
		e := validator.New()
		assert.False(t, e.CheckAll(rs, rec))
		assert.Equal(t, []string{"name", "name", "code", "email"}, e.FailedFields())
		assert.Equal(t, []string{
			"The length of name must be more than 5",
			"name not conform to the expected format",
			"The length of code must be less than 2",
			"email is required",
		}, e.Messages())
	})

	t.Run("collect-all is repeatable on fresh engines", func(t *testing.T) {
		a, b := validator.New(), validator.New()
		a.CheckAll(rs, rec)
		b.CheckAll(rs, rec)
		assert.Equal(t, a.Result(), b.Result())
	})

	t.Run("required failure short-circuits", func(t *testing.T) {
		rs := validator.NewRuleSet().
			Add("email", validator.Field().Required()).
			Add("name", validator.Field().Rule("min", 5))
		e := validator.New()
		e.Evaluate(rs, validator.Record{"name": "abc"}, false)
		assert.Equal(t, []string{"email"}, e.FailedFields())
	})
}

func TestEngine_Deduplication(t *testing.T) {
	t.Parallel()

	rs := validator.NewRuleSet().
		Add("first", validator.Field().Rule("in", "a", "b").Message("pick a listed value")).
		Add("second", validator.Field().Rule("in", "a", "b").Message("pick a listed value"))

	e := validator.New()
	e.CheckAll(rs, validator.Record{"first": "x", "second": "y"})

	assert.Equal(t, []string{"pick a listed value"}, e.Messages())
	assert.Equal(t, []string{"first", "second"}, e.FailedFields())

	errs := validator.ExtractValidationErrors(e.Err())
	require.Len(t, errs, 2)
	assert.Equal(t, "in", errs[1].Rule)
}

func TestEngine_Absence(t *testing.T) {
	t.Parallel()

	t.Run("absent and not required passes", func(t *testing.T) {
		e := validator.New()
		rs := validator.NewRuleSet().Add("name", validator.Field().Rule("min", 3))
		assert.True(t, e.CheckAll(rs, validator.Record{}))
	})

	t.Run("absent and required fails", func(t *testing.T) {
		e := validator.New()
		rs := validator.NewRuleSet().Add("name", validator.Field().Required())
		assert.False(t, e.CheckAll(rs, validator.Record{}))
		assert.Equal(t, []string{"name is required"}, e.Messages())
		assert.Equal(t, []string{"name"}, e.FailedFields())
	})

	t.Run("falsy values count as absent", func(t *testing.T) {
		rs := validator.NewRuleSet().
			Add("count", validator.Field().Required()).
			Add("flag", validator.Field().Required()).
			Add("text", validator.Field().Required()).
			Add("ptr", validator.Field().Required())
		var p *int

		e := validator.New()
		e.CheckAll(rs, validator.Record{"count": 0, "flag": false, "text": "", "ptr": p})
		assert.Equal(t, []string{"count", "flag", "text", "ptr"}, e.FailedFields())
	})

	t.Run("falsy value skips rules when not required", func(t *testing.T) {
		e := validator.New()
		rs := validator.NewRuleSet().Add("count", validator.Field().Rule("type", "string"))
		assert.True(t, e.CheckAll(rs, validator.Record{"count": 0}))
	})

	t.Run("custom presence", func(t *testing.T) {
		e := validator.New(validator.WithPresence(func(v any) bool { return v != nil }))
		rs := validator.NewRuleSet().Add("count", validator.Field().Required().Rule("type", "number"))
		assert.True(t, e.CheckAll(rs, validator.Record{"count": 0}))
	})

	t.Run("nil record", func(t *testing.T) {
		e := validator.New()
		rs := validator.NewRuleSet().Add("name", validator.Field().Required())
		assert.False(t, e.CheckAll(rs, nil))
	})

	t.Run("nil rule set", func(t *testing.T) {
		e := validator.New()
		assert.True(t, e.CheckAll(nil, validator.Record{"name": "x"}))
	})
}

func TestEngine_Messages(t *testing.T) {
	t.Parallel()

	t.Run("between template", func(t *testing.T) {
		e := validator.New()
		rs := validator.NewRuleSet().Add("age", validator.Field().Rule("between", 3, 8))
		e.CheckAll(rs, validator.Record{"age": "ab"})
		assert.Equal(t, []string{"The length of age must between 3 to 8"}, e.Messages())
	})

	t.Run("override message", func(t *testing.T) {
		e := validator.New()
		rs := validator.NewRuleSet().
			Add("email", validator.Field().Rule("regexp", regexp.MustCompile(`.+@.+`)).Message("bad email"))
		e.CheckAll(rs, validator.Record{"email": "nope"})
		assert.Equal(t, []string{"bad email"}, e.Messages())
	})

	t.Run("override message applies to required", func(t *testing.T) {
		e := validator.New()
		rs := validator.NewRuleSet().Add("email", validator.Field().Required().Message("tell us your email"))
		e.CheckAll(rs, validator.Record{})
		assert.Equal(t, []string{"tell us your email"}, e.Messages())
	})

	t.Run("type template", func(t *testing.T) {
		e := validator.New()
		rs := validator.NewRuleSet().Add("age", validator.Field().Rule("type", "number"))
		e.CheckAll(rs, validator.Record{"age": "thirty"})
		assert.Equal(t, []string{"age must be type of number"}, e.Messages())
	})

	t.Run("missing template yields empty message", func(t *testing.T) {
		e := validator.New()
		e.RegisterRule("never", validator.PredicateFunc(func(any, ...any) bool { return false }), "")
		e.RegisterRule("also", validator.PredicateFunc(func(any, ...any) bool { return false }), "")
		rs := validator.NewRuleSet().Add("x", validator.Field().Rule("never").Rule("also"))

		assert.False(t, e.CheckAll(rs, validator.Record{"x": "v"}))
		assert.Equal(t, []string{""}, e.Messages())
		assert.Equal(t, []string{"x", "x"}, e.FailedFields())
	})

	t.Run("register message only", func(t *testing.T) {
		e := validator.New()
		e.RegisterMessage("min", "# needs at least $1 characters")
		rs := validator.NewRuleSet().Add("name", validator.Field().Rule("min", 3))
		e.CheckAll(rs, validator.Record{"name": "ab"})
		assert.Equal(t, []string{"name needs at least 3 characters"}, e.Messages())
	})

	t.Run("render is callable directly", func(t *testing.T) {
		e := validator.New()
		assert.Equal(t, "The length of bio must be less than 140", e.Render("bio", "max", []any{140}))
		assert.Equal(t, "", e.Render("bio", "unknown", nil))
	})
}

func TestEngine_RegisterRule(t *testing.T) {
	t.Parallel()

	t.Run("custom rule", func(t *testing.T) {
		e := validator.New()
		e.RegisterRule("even", validator.PredicateFunc(evenRule), "# must be even")
		rs := validator.NewRuleSet().Add("field", validator.Field().Rule("even"))

		assert.False(t, e.CheckAll(rs, validator.Record{"field": 3}))
		assert.Equal(t, []string{"field must be even"}, e.Messages())
	})

	t.Run("registration is per instance", func(t *testing.T) {
		a := validator.New()
		a.RegisterRule("even", validator.PredicateFunc(evenRule), "# must be even")
		a.RegisterMessage("min", "changed")

		b := validator.New()
		assert.True(t, a.HasRule("even"))
		assert.False(t, b.HasRule("even"))
		assert.Equal(t, "The length of x must be more than 1", b.Render("x", "min", []any{1}))
	})

	t.Run("overrides a built-in", func(t *testing.T) {
		e := validator.New()
		e.RegisterRule("min", validator.PredicateFunc(func(any, ...any) bool { return true }), "never shown")
		rs := validator.NewRuleSet().Add("name", validator.Field().Rule("min", 100))
		assert.True(t, e.CheckAll(rs, validator.Record{"name": "a"}))
	})

	t.Run("construction options", func(t *testing.T) {
		e := validator.New(
			validator.WithRule("even", validator.PredicateFunc(evenRule), "# must be even"),
			validator.WithMessages(map[string]string{"required": "# missing"}),
		)
		rs := validator.NewRuleSet().
			Add("n", validator.Field().Rule("even")).
			Add("m", validator.Field().Required())
		e.CheckAll(rs, validator.Record{"n": 1})
		assert.Equal(t, []string{"n must be even", "m missing"}, e.Messages())
	})

	t.Run("reserved names are never evaluated", func(t *testing.T) {
		e := validator.New()
		e.RegisterRule("msg", validator.PredicateFunc(func(any, ...any) bool { return false }), "# msg rule")
		rs := validator.NewRuleSet().Add("name", validator.Field().Rule("msg").Rule("required"))
		assert.True(t, e.CheckAll(rs, validator.Record{"name": "x"}))
	})
}

func TestEngine_BuilderForms(t *testing.T) {
	t.Parallel()

	t.Run("slice args are spread", func(t *testing.T) {
		rs := validator.NewRuleSet().Add("age", validator.Field().Rule("between", []any{3, 8}))

		e := validator.New()
		assert.True(t, e.Check(rs, validator.Record{"age": "abcde"}))

		e.Reset()
		assert.False(t, e.Check(rs, validator.Record{"age": "ab"}))
		assert.Equal(t, []string{"The length of age must between 3 to 8"}, e.Messages())
	})

	t.Run("reserved keys act as directives", func(t *testing.T) {
		rs := validator.NewRuleSet().Add("name", validator.Field().Rule("required", true).Rule("msg", "custom"))

		e := validator.New()
		assert.False(t, e.CheckAll(rs, validator.Record{}))
		assert.Equal(t, []string{"custom"}, e.Messages())
		assert.Equal(t, []string{"name"}, e.FailedFields())
	})

	t.Run("nil pointer argument renders as null", func(t *testing.T) {
		e := validator.New()
		e.RegisterMessage("is", "# must be $1")
		rs := validator.NewRuleSet().Add("link", validator.Field().Rule("is", (*url.URL)(nil)))

		require.NotPanics(t, func() { e.Check(rs, validator.Record{"link": "x"}) })
		assert.Equal(t, []string{"link must be null"}, e.Messages())
	})
}

func TestEngine_UnknownRules(t *testing.T) {
	t.Parallel()

	rs := validator.NewRuleSet().
		Add("name", validator.Field().Rule("shout").Rule("min", 5).Rule("whisper")).
		Add("code", validator.Field().Rule("uuid"))

	e := validator.New()
	assert.False(t, e.CheckAll(rs, validator.Record{"name": "abc", "code": "x"}))
	assert.Equal(t, []string{"The length of name must be more than 5"}, e.Messages())
	assert.Equal(t, []string{"name"}, e.FailedFields())

	assert.Equal(t, []string{"name.shout", "name.whisper", "code.uuid"}, e.UnknownRules(rs))
	assert.Equal(t, []string{"name.shout", "name.whisper"}, validator.New(validator.WithExtraRules()).UnknownRules(rs))
	assert.Nil(t, e.UnknownRules(nil))
}

func TestEngine_AccumulateAndReset(t *testing.T) {
	t.Parallel()

	rs := validator.NewRuleSet().Add("name", validator.Field().Required())

	e := validator.New()
	e.Check(rs, validator.Record{})
	e.Check(rs, validator.Record{"name": "ok"})

	assert.False(t, e.Valid(), "a passing run does not clear an earlier failure")
	e.Check(rs, validator.Record{})
	assert.Equal(t, []string{"name", "name"}, e.FailedFields())
	assert.Equal(t, []string{"name is required"}, e.Messages())

	e.Reset()
	assert.True(t, e.Valid())
	assert.Empty(t, e.FailedFields())
	assert.Empty(t, e.Messages())
	assert.NoError(t, e.Err())

	assert.True(t, e.Check(rs, validator.Record{"name": "ok"}))
}

func TestEngine_ResultIsACopy(t *testing.T) {
	t.Parallel()

	rs := validator.NewRuleSet().Add("name", validator.Field().Required())
	e := validator.New()
	e.Check(rs, validator.Record{})

	fields := e.FailedFields()
	fields[0] = "changed"
	msgs := e.Messages()
	msgs[0] = "changed"

	assert.Equal(t, []string{"name"}, e.FailedFields())
	assert.Equal(t, []string{"name is required"}, e.Messages())
}

func TestEngine_Err(t *testing.T) {
	t.Parallel()

	rs := validator.NewRuleSet().
		Add("name", validator.Field().Required()).
		Add("age", validator.Field().Rule("between", 1, 2))

	e := validator.New()
	e.CheckAll(rs, validator.Record{"age": "abc"})

	err := e.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, validator.ErrValidationFailed)

	errs := validator.ExtractValidationErrors(err)
	require.Len(t, errs, 2)
	assert.Equal(t, validator.ValidationError{Field: "name", Rule: "required", Message: "name is required"}, errs[0])
	assert.Equal(t, validator.ValidationError{
		Field:   "age",
		Rule:    "between",
		Message: "The length of age must between 1 to 2",
		Args:    []any{1, 2},
	}, errs[1])
}

func TestEngine_DoesNotMutateRuleSet(t *testing.T) {
	t.Parallel()

	spec := validator.Field().Required().Rule("min", 3)
	rs := validator.NewRuleSet().Add("name", spec)

	validator.New().CheckAll(rs, validator.Record{"name": "a"})

	assert.Equal(t, []string{"name"}, rs.Fields())
	assert.Equal(t, []validator.RuleRef{{Name: "min", Args: []any{3}}}, spec.Rules())
	assert.True(t, spec.IsRequired())
}

func TestEngine_Logger(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e := validator.New(validator.WithLogger(log))
	rs := validator.NewRuleSet().Add("name", validator.Field().Rule("shout").Rule("min", 5))
	e.CheckAll(rs, validator.Record{"name": "abc"})

	out := buf.String()
	assert.Contains(t, out, "skipping unknown rule")
	assert.Contains(t, out, "rule=shout")
	assert.Contains(t, out, "rule failed")
	assert.Contains(t, out, "field=name")
}
