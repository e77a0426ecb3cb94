package validator

import (
	"log/slog"
	"slices"
	"sort"

	"github.com/dmitrymomot/rulekit/pkg/logger"
)

// Result is a snapshot of the accumulated state of an Engine.
type Result struct {
	Valid        bool     `json:"valid"`
	FailedFields []string `json:"failed_fields"`
	Messages     []string `json:"messages"`
}

// Engine evaluates rule sets against records. It owns its predicate and
// message registries and accumulates the outcome of every pass until Reset.
// An Engine is not safe for concurrent use.
type Engine struct {
	predicates map[string]Predicate
	messages   map[string]string
	present    func(any) bool
	logger     *slog.Logger

	valid    bool
	failed   []string
	msgs     []string
	failures ValidationErrors
}

// New returns an engine seeded with the built-in rules and templates.
func New(opts ...Option) *Engine {
	e := &Engine{
		predicates: DefaultPredicates(),
		messages:   DefaultMessages(),
		present:    Present,
		logger:     slog.New(slog.DiscardHandler),
	}
	e.Reset()

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs rs against rec. Fields and rules run in insertion order.
// With collectAll false the pass stops at the first failure. Unknown rule
// names are skipped. Failures add to the state left by earlier calls; call
// Reset between independent passes. Returns Valid().
func (e *Engine) Evaluate(rs *RuleSet, rec Record, collectAll bool) bool {
	if rs == nil {
		return e.valid
	}

	for _, field := range rs.order {
		spec := rs.specs[field]
		value, ok := rec[field]

		if ok && e.present(value) {
			for _, ref := range spec.rules {
				if isReserved(ref.Name) {
					continue
				}
				p, found := e.predicates[ref.Name]
				if !found || p == nil {
					e.logger.Debug("skipping unknown rule", logger.Field(field), logger.Rule(ref.Name))
					continue
				}
				if !p.Evaluate(value, ref.Args...) {
					e.fail(field, ref.Name, ref.Args, spec.message)
					if !collectAll {
						return false
					}
				}
			}
			continue
		}

		if spec.required {
			e.fail(field, RequiredKey, nil, spec.message)
			if !collectAll {
				return false
			}
		}
	}

	e.logger.Debug("validation pass finished",
		slog.Bool("valid", e.valid),
		slog.Int("failures", len(e.failures)),
	)
	return e.valid
}

// Check evaluates in short-circuit mode.
func (e *Engine) Check(rs *RuleSet, rec Record) bool {
	return e.Evaluate(rs, rec, false)
}

// CheckAll evaluates in collect-all mode.
func (e *Engine) CheckAll(rs *RuleSet, rec Record) bool {
	return e.Evaluate(rs, rec, true)
}

func (e *Engine) fail(field, rule string, args []any, override string) {
	e.valid = false

	msg := override
	if msg == "" {
		msg = e.Render(field, rule, args)
	}
	if !slices.Contains(e.msgs, msg) {
		e.msgs = append(e.msgs, msg)
	}
	e.failed = append(e.failed, field)
	e.failures.Add(ValidationError{Field: field, Rule: rule, Message: msg, Args: args})

	e.logger.Debug("rule failed", logger.Field(field), logger.Rule(rule), slog.String("message", msg))
}

// Render formats the template registered for rule. A rule without a template
// renders as the empty string.
func (e *Engine) Render(field, rule string, args []any) string {
	tpl, ok := e.messages[rule]
	if !ok {
		return ""
	}
	return renderTemplate(tpl, field, args)
}

// RegisterRule installs or replaces a predicate and its template on this
// engine only. Names "required" and "msg" are reserved and never evaluated.
func (e *Engine) RegisterRule(name string, p Predicate, template string) {
	e.predicates[name] = p
	e.messages[name] = template
}

// RegisterMessage replaces only the template for name.
func (e *Engine) RegisterMessage(name, template string) {
	e.messages[name] = template
}

// HasRule reports whether a predicate is registered under name.
func (e *Engine) HasRule(name string) bool {
	p, ok := e.predicates[name]
	return ok && p != nil
}

// Rules returns the registered rule names, sorted.
func (e *Engine) Rules() []string {
	names := make([]string, 0, len(e.predicates))
	for name := range e.predicates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownRules lists "field.rule" references in rs that name no registered
// predicate. Evaluation skips such rules silently; this is the lint hook.
func (e *Engine) UnknownRules(rs *RuleSet) []string {
	if rs == nil {
		return nil
	}
	var unknown []string
	for _, field := range rs.order {
		for _, ref := range rs.specs[field].rules {
			if isReserved(ref.Name) || e.HasRule(ref.Name) {
				continue
			}
			unknown = append(unknown, field+"."+ref.Name)
		}
	}
	return unknown
}

// Reset clears the accumulated outcome. Registries are kept.
func (e *Engine) Reset() {
	e.valid = true
	e.failed = []string{}
	e.msgs = []string{}
	e.failures = nil
}

// Valid reports whether no failure has been recorded since New or Reset.
func (e *Engine) Valid() bool { return e.valid }

// FailedFields returns a copy of the failed field names, one per failure.
func (e *Engine) FailedFields() []string { return slices.Clone(e.failed) }

// Messages returns a copy of the distinct rendered messages.
func (e *Engine) Messages() []string { return slices.Clone(e.msgs) }

// Result returns a snapshot of the accumulated state.
func (e *Engine) Result() Result {
	return Result{
		Valid:        e.valid,
		FailedFields: e.FailedFields(),
		Messages:     e.Messages(),
	}
}

// Err returns nil for a valid state, otherwise the fail events as
// ValidationErrors.
func (e *Engine) Err() error {
	if e.valid {
		return nil
	}
	return slices.Clone(e.failures)
}
