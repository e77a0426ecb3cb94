package validator

import (
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Extended rule names, registered by WithExtraRules.
const (
	RuleUUID         = "uuid"
	RuleEmail        = "email"
	RuleURL          = "url"
	RuleIP           = "ip"
	RuleAlpha        = "alpha"
	RuleAlphanumeric = "alphanumeric"
	RuleNumeric      = "numeric"
	RuleLowercase    = "lowercase"
	RuleUppercase    = "uppercase"
	RuleLen          = "len"
	RuleGte          = "gte"
	RuleLte          = "lte"
	RuleNotIn        = "notin"
)

var (
	alphaRegex        = regexp.MustCompile(`^[a-zA-Z]+$`)
	alphanumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	numericRegex      = regexp.MustCompile(`^[0-9]+$`)
)

// ExtraMessages returns a fresh copy of the extended rule templates.
func ExtraMessages() map[string]string {
	return map[string]string{
		RuleUUID:         "# must be a valid UUID",
		RuleEmail:        "# must be a valid email address",
		RuleURL:          "# must be a valid URL",
		RuleIP:           "# must be a valid IP address",
		RuleAlpha:        "# must contain only letters",
		RuleAlphanumeric: "# must contain only letters and digits",
		RuleNumeric:      "# must contain only digits",
		RuleLowercase:    "# must be lowercase",
		RuleUppercase:    "# must be uppercase",
		RuleLen:          "The length of # must be $1",
		RuleGte:          "# must be at least $1",
		RuleLte:          "# must be at most $1",
		RuleNotIn:        "Incorrect value for #",
	}
}

// ExtraPredicates returns a fresh set of the extended predicates.
func ExtraPredicates() map[string]Predicate {
	return map[string]Predicate{
		RuleUUID:         stringRule(validUUID),
		RuleEmail:        stringRule(validEmail),
		RuleURL:          stringRule(validURL),
		RuleIP:           stringRule(func(s string) bool { return net.ParseIP(s) != nil }),
		RuleAlpha:        stringRule(alphaRegex.MatchString),
		RuleAlphanumeric: stringRule(alphanumericRegex.MatchString),
		RuleNumeric:      stringRule(numericRegex.MatchString),
		RuleLowercase:    stringRule(func(s string) bool { return s == strings.ToLower(s) }),
		RuleUppercase:    stringRule(func(s string) bool { return s == strings.ToUpper(s) }),
		RuleLen:          PredicateFunc(lenRule),
		RuleGte:          PredicateFunc(gteRule),
		RuleLte:          PredicateFunc(lteRule),
		RuleNotIn: PredicateFunc(func(value any, args ...any) bool {
			return !inRule(value, args...)
		}),
	}
}

// stringRule lifts a string check into a Predicate; non-strings fail.
func stringRule(check func(string) bool) Predicate {
	return PredicateFunc(func(value any, _ ...any) bool {
		s, ok := value.(string)
		return ok && check(s)
	})
}

// validUUID rejects by shape before parsing.
func validUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

func validURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

func lenRule(value any, args ...any) bool {
	n, ok := lengthBound(value, args, 0)
	if !ok {
		return false
	}
	l, _ := length(value)
	return float64(l) == n
}

func gteRule(value any, args ...any) bool {
	v, ok := toFloat(value)
	if !ok || len(args) == 0 {
		return false
	}
	n, ok := toFloat(args[0])
	return ok && v >= n
}

func lteRule(value any, args ...any) bool {
	v, ok := toFloat(value)
	if !ok || len(args) == 0 {
		return false
	}
	n, ok := toFloat(args[0])
	return ok && v <= n
}
