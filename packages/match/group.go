package match

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/abdul-hamid-achik/groupcheck/packages/capture"
	"github.com/abdul-hamid-achik/groupcheck/packages/errtree"
)

// Group is an expectation over an error group: an ordered list of
// expected errors, all of which must be present with no extras. By
// default the raised error must itself be a group and nested structure
// must be declared with nested Group expectations.
type Group struct {
	expected       []Expectation
	allowUnwrapped bool
	flatten        bool
	match          *regexp.Regexp
	check          func(error) bool
	fatal          bool
	nested         bool
	failReason     string
	handle         *capture.Handle
}

type groupConfig struct {
	allowUnwrapped bool
	flatten        bool
	pattern        string
	patternSet     bool
	regexp         *regexp.Regexp
	check          func(error) bool
}

// GroupOption configures a Group under construction.
type GroupOption func(*groupConfig)

// AllowUnwrapped lets a single expected error match even when raised
// bare, outside any group. Requires exactly one expected error, which
// must not itself be a Group, and no group pattern or check.
func AllowUnwrapped() GroupOption {
	return func(c *groupConfig) {
		c.allowUnwrapped = true
	}
}

// FlattenSubgroups flattens the raised group, extracting errors out of
// any nested groups before matching. Incompatible with nested Group
// expectations, which could then never match.
func FlattenSubgroups() GroupOption {
	return func(c *groupConfig) {
		c.flatten = true
	}
}

// WithGroupPattern requires pattern to be found in the raised group's own
// rendered text.
func WithGroupPattern(pattern string) GroupOption {
	return func(c *groupConfig) {
		c.pattern = pattern
		c.patternSet = true
	}
}

// WithGroupRegexp is WithGroupPattern for an already compiled pattern.
func WithGroupRegexp(re *regexp.Regexp) GroupOption {
	return func(c *groupConfig) {
		c.regexp = re
	}
}

// WithGroupCheck requires check to return true for the raised group as a
// whole. It runs only after all children have been paired up.
func WithGroupCheck(check func(error) bool) GroupOption {
	return func(c *groupConfig) {
		c.check = check
	}
}

// NewGroup builds a Group from one or more expectations. Invalid
// combinations fail immediately rather than producing an expectation
// that can never match.
func NewGroup(expected []Expectation, opts ...GroupOption) (*Group, error) {
	var cfg groupConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(expected) == 0 {
		return nil, errors.New("group needs at least one expected error")
	}
	if cfg.allowUnwrapped && len(expected) > 1 {
		return nil, errors.New("cannot combine AllowUnwrapped with multiple expected errors;" +
			" to match one of several types use a Matcher with a check instead")
	}
	if cfg.allowUnwrapped {
		if _, ok := expected[0].(*Group); ok {
			return nil, errors.New("AllowUnwrapped has no effect when expecting a nested group;" +
				" you might want it on the nested group, or FlattenSubgroups if you do not care about the structure")
		}
		if cfg.patternSet || cfg.regexp != nil || cfg.check != nil {
			return nil, errors.New("AllowUnwrapped bypasses the group pattern and check when the error is unwrapped;" +
				" to match or check the error itself use a Matcher instead")
		}
	}

	g := &Group{
		expected:       expected,
		allowUnwrapped: cfg.allowUnwrapped,
		flatten:        cfg.flatten,
		check:          cfg.check,
	}
	switch {
	case cfg.regexp != nil:
		g.match = cfg.regexp
	case cfg.patternSet:
		re, err := regexp.Compile(cfg.pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid group match pattern: %w", err)
		}
		g.match = re
	}

	for _, exp := range expected {
		switch e := exp.(type) {
		case typeExpectation:
			g.fatal = g.fatal || errtree.SeverityOf(e.t) == errtree.SeverityFatal
		case *Matcher:
			e.nested = true
			if e.typ != nil {
				g.fatal = g.fatal || errtree.SeverityOf(e.typ) == errtree.SeverityFatal
			}
		case *Group:
			if cfg.flatten {
				return nil, errors.New("cannot combine FlattenSubgroups with a nested Group expectation;" +
					" flattening the raised group would never match a nested structure")
			}
			e.nested = true
			g.fatal = g.fatal || e.fatal
		default:
			return nil, errors.New("expected error must be a type, a Matcher, or a Group")
		}
	}
	return g, nil
}

// Matches reports whether err satisfies the group expectation. After a
// false result FailReason describes the mismatch. The declared
// configuration always decides the verdict; the diagnostic may note that
// a relaxed configuration would have matched, but never applies one.
func (g *Group) Matches(err error) bool {
	g.failReason = ""
	if err == nil {
		g.failReason = "no error raised"
		return false
	}

	if !errtree.IsGroup(err) {
		notGroup := fmt.Sprintf("%s is not an error group", errtree.TypeNameOf(err))
		if len(g.expected) > 1 {
			g.failReason = notGroup
			return false
		}
		// One expected error: check whether it would have worked, so the
		// diagnostic can point at AllowUnwrapped when relevant.
		res := checkExpected(g.expected[0], err)
		if res == "" && g.allowUnwrapped {
			return true
		}
		switch {
		case res == "":
			g.failReason = notGroup + ", but would match with AllowUnwrapped()"
		case g.allowUnwrapped:
			g.failReason = res
		default:
			g.failReason = notGroup
		}
		return false
	}

	actual := errtree.Children(err)
	if g.flatten {
		actual = errtree.Flatten(actual)
	}

	if reason := checkPattern(g.match, err); reason != "" {
		g.failReason = reason
		// A pattern that fails on the group but would match its lone
		// child usually means the pattern was meant for the child.
		if len(actual) == 1 && len(g.expected) == 1 {
			if te, ok := g.expected[0].(typeExpectation); ok &&
				checkRawType(te.t, actual[0]) == "" &&
				checkPattern(g.match, actual[0]) == "" {
				g.failReason = fmt.Sprintf(
					"%s, but matched the expected %s. You might want a Matcher with match=%q on the child instead",
					reason, reprExpected(g.expected[0]), g.match.String())
			}
		}
		return false
	}

	if !g.checkErrors(actual) {
		old := g.failReason
		// Diagnostic-only second pass: if the raised group has nested
		// structure the expectation does not declare, try flattened.
		if !g.flatten && !g.anyExpectedGroup() && anyGroup(actual) &&
			g.checkErrors(errtree.Flatten(errtree.Children(err))) {
			old += "\nDid you mean to use FlattenSubgroups()?"
		}
		g.failReason = old
		return false
	}

	if reason := checkCheck(g.check, err, g.nested); reason != "" {
		g.failReason = reason
		return false
	}
	return true
}

// FailReason returns why the last Matches call returned false, or "" if
// it matched.
func (g *Group) FailReason() string {
	return g.failReason
}

func (g *Group) anyExpectedGroup() bool {
	for _, exp := range g.expected {
		if _, ok := exp.(*Group); ok {
			return true
		}
	}
	return false
}

func anyGroup(errs []error) bool {
	for _, err := range errs {
		if errtree.IsGroup(err) {
			return true
		}
	}
	return false
}

// String renders the group deterministically: expectations in declared
// order, then the set modifiers.
func (g *Group) String() string {
	var parts []string
	for _, exp := range g.expected {
		if te, ok := exp.(typeExpectation); ok {
			parts = append(parts, te.t.String())
		} else {
			parts = append(parts, reprExpected(exp))
		}
	}
	if g.allowUnwrapped {
		parts = append(parts, "AllowUnwrapped()")
	}
	if g.flatten {
		parts = append(parts, "FlattenSubgroups()")
	}
	if g.match != nil {
		parts = append(parts, fmt.Sprintf("match=%q", g.match.String()))
	}
	if g.check != nil {
		parts = append(parts, fmt.Sprintf("check=%s", funcName(g.check)))
	}
	return fmt.Sprintf("Group(%s)", strings.Join(parts, ", "))
}

// ExpectedType renders the shape of group this expectation would accept,
// used in "did not raise" failures. Groups expecting a fatal member
// render as FatalErrorGroup.
func (g *Group) ExpectedType() string {
	var parts []string
	for _, exp := range g.expected {
		switch e := exp.(type) {
		case typeExpectation:
			parts = append(parts, e.t.String())
		case *Matcher:
			parts = append(parts, e.String())
		case *Group:
			parts = append(parts, e.ExpectedType())
		}
	}
	name := "ErrorGroup"
	if g.fatal {
		name = "FatalErrorGroup"
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ", "))
}

// Enter begins a scoped assertion block and returns its deferred capture
// handle. The handle is filled when Exit verifies a matching error.
func (g *Group) Enter() *capture.Handle {
	g.handle = capture.ForLater()
	return g.handle
}

// Exit ends a scoped assertion block with the error that propagated out
// of it, or nil. On a match it fills the capture handle and absorbs the
// error (handled == true). Otherwise it reports the failure, preserving
// a non-matching raised error as the cause.
func (g *Group) Exit(err error) (bool, error) {
	if g.handle == nil {
		return false, errors.New("Exit called without a matching Enter")
	}
	if err == nil {
		return false, fmt.Errorf("did not raise, expected %s", g.ExpectedType())
	}
	if !g.Matches(err) {
		groupWord := "group"
		if g.allowUnwrapped && !errtree.IsGroup(err) {
			groupWord = "(group)"
		}
		return false, fmt.Errorf("raised error %s did not match: %s\nraised: %w",
			groupWord, g.failReason, err)
	}
	g.handle.Fill(err)
	return true, nil
}

// Catch runs fn as a scoped assertion block and returns the filled
// capture handle, or the assertion failure.
func (g *Group) Catch(fn func() error) (*capture.Handle, error) {
	h := g.Enter()
	if handled, err := g.Exit(fn()); !handled {
		return nil, err
	}
	return h, nil
}
