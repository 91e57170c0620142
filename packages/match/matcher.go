package match

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/abdul-hamid-achik/groupcheck/packages/errtree"
)

// ErrNoCriteria is returned by NewMatcher when no criterion was given.
var ErrNoCriteria = errors.New("matcher needs at least one of a type, a pattern, or a check")

// Matcher checks a single error against up to three criteria, evaluated
// in a fixed order: concrete type, text pattern against the rendered
// message (including supplementary notes), then an arbitrary check
// function. Unset criteria are skipped.
//
// Matches can be used standalone, e.g. on an error reached through a
// causal chain, with FailReason retrievable after a false result.
type Matcher struct {
	typ        reflect.Type
	match      *regexp.Regexp
	check      func(error) bool
	nested     bool
	failReason string
}

type matcherConfig struct {
	typ        reflect.Type
	pattern    string
	patternSet bool
	regexp     *regexp.Regexp
	check      func(error) bool
}

// MatcherOption configures a Matcher under construction.
type MatcherOption func(*matcherConfig)

// ForType requires the error's concrete type to be assignable to E.
func ForType[E error]() MatcherOption {
	t := reflect.TypeOf((*E)(nil)).Elem()
	return func(c *matcherConfig) {
		c.typ = t
	}
}

// ForReflectType is the runtime counterpart of ForType.
func ForReflectType(t reflect.Type) MatcherOption {
	return func(c *matcherConfig) {
		c.typ = t
	}
}

// WithPattern requires pattern to be found in the error's rendered text.
// The search is unanchored.
func WithPattern(pattern string) MatcherOption {
	return func(c *matcherConfig) {
		c.pattern = pattern
		c.patternSet = true
	}
}

// WithRegexp is WithPattern for an already compiled pattern.
func WithRegexp(re *regexp.Regexp) MatcherOption {
	return func(c *matcherConfig) {
		c.regexp = re
	}
}

// WithCheck requires check to return true for the error.
func WithCheck(check func(error) bool) MatcherOption {
	return func(c *matcherConfig) {
		c.check = check
	}
}

// NewMatcher builds a Matcher. At least one criterion must be set, the
// type (if set) must implement error, and the pattern (if set) must
// compile; anything else fails immediately.
func NewMatcher(opts ...MatcherOption) (*Matcher, error) {
	var cfg matcherConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.typ == nil && !cfg.patternSet && cfg.regexp == nil && cfg.check == nil {
		return nil, ErrNoCriteria
	}
	if cfg.typ != nil && !errtree.IsErrorType(cfg.typ) {
		return nil, fmt.Errorf("expected type %v does not implement error", cfg.typ)
	}
	m := &Matcher{typ: cfg.typ, check: cfg.check}
	switch {
	case cfg.regexp != nil:
		m.match = cfg.regexp
	case cfg.patternSet:
		re, err := regexp.Compile(cfg.pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid match pattern: %w", err)
		}
		m.match = re
	}
	return m, nil
}

// Matches reports whether err satisfies every criterion. After a false
// result FailReason describes the first failing check.
func (m *Matcher) Matches(err error) bool {
	m.failReason = ""
	if err == nil {
		m.failReason = "error is nil"
		return false
	}
	if reason := checkRawType(m.typ, err); reason != "" {
		m.failReason = reason
		return false
	}
	if reason := checkPattern(m.match, err); reason != "" {
		m.failReason = reason
		return false
	}
	if reason := checkCheck(m.check, err, m.nested); reason != "" {
		m.failReason = reason
		return false
	}
	return true
}

// FailReason returns why the last Matches call returned false, or "" if
// it matched.
func (m *Matcher) FailReason() string {
	return m.failReason
}

// String renders the matcher deterministically, listing only the set
// criteria. Patterns are rendered as bare strings.
func (m *Matcher) String() string {
	var parts []string
	if m.typ != nil {
		parts = append(parts, m.typ.String())
	}
	if m.match != nil {
		parts = append(parts, fmt.Sprintf("match=%q", m.match.String()))
	}
	if m.check != nil {
		parts = append(parts, fmt.Sprintf("check=%s", funcName(m.check)))
	}
	return fmt.Sprintf("Matcher(%s)", strings.Join(parts, ", "))
}
