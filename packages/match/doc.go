// Package match decides whether a raised, possibly nested error group
// satisfies a declared expectation, and explains precisely why when it
// does not.
//
// An expectation is one of:
//   - A bare error type (Type, RawType)
//   - A Matcher, combining a type, a text pattern, and a check function
//   - A Group, an ordered list of expectations with structural modifiers
//
// Groups are strict by default: every expected error must be present, no
// others, and the raised error must actually be a group. AllowUnwrapped
// and FlattenSubgroups relax the structural requirements explicitly.
//
// Pairing of expectations with raised errors is greedy in declared order:
// each expectation claims the first remaining error it matches. A later,
// more specific expectation is never preferred over an earlier looser one
// that also matches the same error, so callers should order and narrow
// their expectations to avoid ambiguity. When the greedy pass fails, an
// exhaustive backtracking check runs purely to improve the diagnostic; it
// never changes the verdict.
package match
