package match

import (
	"fmt"
	"reflect"
	"regexp"
	"runtime"
	"strings"

	"github.com/abdul-hamid-achik/groupcheck/packages/errtree"
)

// Expectation is one member of a group expectation: a bare error type
// (from Type or RawType), a *Matcher, or a nested *Group. The set is
// closed; the three shapes are validated once at construction.
type Expectation interface {
	expectation()
}

type typeExpectation struct {
	t reflect.Type
}

func (typeExpectation) expectation() {}
func (*Matcher) expectation()        {}
func (*Group) expectation()          {}

// Type returns an expectation matching any error whose concrete type is
// assignable to E. Interface types match by implementation.
func Type[E error]() Expectation {
	return typeExpectation{t: reflect.TypeOf((*E)(nil)).Elem()}
}

// RawType is the runtime counterpart of Type, for callers that only hold
// a reflect.Type (e.g. the pattern loader). It fails if t does not
// implement error.
func RawType(t reflect.Type) (Expectation, error) {
	if !errtree.IsErrorType(t) {
		return nil, fmt.Errorf("expected type %v does not implement error", t)
	}
	return typeExpectation{t: t}, nil
}

// checkExpected evaluates one expectation against one error. An empty
// string means it matched; otherwise the string says why it did not.
func checkExpected(exp Expectation, err error) string {
	switch e := exp.(type) {
	case typeExpectation:
		return checkRawType(e.t, err)
	case *Matcher:
		if e.Matches(err) {
			return ""
		}
		return prefixReason(e.String(), e.FailReason())
	case *Group:
		if e.Matches(err) {
			return ""
		}
		return prefixReason(e.String(), e.FailReason())
	}
	return fmt.Sprintf("invalid expectation %v", exp)
}

// reprExpected renders an expectation for diagnostics: just the quoted
// name for a bare type, the full repr otherwise.
func reprExpected(exp Expectation) string {
	switch e := exp.(type) {
	case typeExpectation:
		return errtree.TypeName(e.t)
	case *Matcher:
		return e.String()
	case *Group:
		return e.String()
	}
	return fmt.Sprintf("%v", exp)
}

func prefixReason(repr, reason string) string {
	if strings.HasPrefix(reason, "\n") {
		return fmt.Sprintf("\n%s: %s", repr, indent(reason, "  "))
	}
	return fmt.Sprintf("%s: %s", repr, reason)
}

func typeMatches(expected reflect.Type, err error) bool {
	actual := reflect.TypeOf(err)
	if expected.Kind() == reflect.Interface {
		return actual.Implements(expected)
	}
	return actual == expected || actual.AssignableTo(expected)
}

// checkRawType tests err against a bare expected type. A group raised
// where a bare type was expected gets its own wording, since the fix
// (a nested Group expectation, or FlattenSubgroups) is different.
func checkRawType(expected reflect.Type, err error) string {
	if expected == nil {
		return ""
	}
	if typeMatches(expected, err) {
		return ""
	}
	if errtree.IsGroup(err) {
		return fmt.Sprintf("unexpected nested %s, expected bare %s",
			errtree.TypeNameOf(err), errtree.TypeName(expected))
	}
	return fmt.Sprintf("%s is not of type %s",
		errtree.TypeNameOf(err), errtree.TypeName(expected))
}

// checkPattern searches the pattern in err's rendered text. Unanchored,
// like the rest of the regexp package.
func checkPattern(re *regexp.Regexp, err error) string {
	if re == nil {
		return ""
	}
	text := errtree.Render(err)
	if re.MatchString(text) {
		return ""
	}
	suffix := ""
	if errtree.IsGroup(err) {
		suffix = fmt.Sprintf(" of %s", errtree.TypeNameOf(err))
	}
	reason := fmt.Sprintf("pattern %q did not match %q%s", re.String(), text, suffix)
	if re.String() == text {
		reason += "\nDid you mean to regexp.QuoteMeta() the pattern?"
	}
	return reason
}

// checkCheck invokes the check function. The function rendering is
// suppressed inside a Group's per-child diagnostics, where the enclosing
// report already names the matcher.
func checkCheck(check func(error) bool, err error, suppressRepr bool) string {
	if check == nil || check(err) {
		return ""
	}
	if suppressRepr {
		return "check did not return true"
	}
	return fmt.Sprintf("check %s did not return true", funcName(check))
}

func funcName(fn func(error) bool) string {
	if f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()); f != nil {
		return f.Name()
	}
	return "<func>"
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
