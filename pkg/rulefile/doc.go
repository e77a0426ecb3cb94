// Package rulefile reads validator rule sets and records from YAML or JSON.
//
// Rule set documents map field names to rule mappings. The keys "required"
// and "msg" are directives: "required: true" (a real boolean) marks the field
// mandatory and "msg" replaces the rendered message for any failure of the
// field. Every other key is a rule; a scalar value is its single argument, a
// sequence is its positional argument list and null means no arguments.
//
//	rs, err := rulefile.Load(ctx, "signup.yaml", rulefile.WithStrict(engine))
//	if err != nil {
//	    return err
//	}
//	rec, err := rulefile.ParseRecord(ctx, body)
//	if err != nil {
//	    return err
//	}
//	engine.CheckAll(rs, rec)
//
// Document order is evaluation order. Strict mode rejects rule sets that
// reference rules the engine does not know; without it unknown rules are
// skipped at evaluation time.
//
// WithMessageKey renames the message directive. "msg" stays reserved in that
// case: it is dropped from the field and strict mode reports it as unknown.
package rulefile
