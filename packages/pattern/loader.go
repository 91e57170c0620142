package pattern

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/abdul-hamid-achik/groupcheck/packages/match"
	"gopkg.in/yaml.v3"
)

// Registry resolves the type names used in expectation documents.
type Registry struct {
	types map[string]reflect.Type
}

func NewRegistry() *Registry {
	return &Registry{types: make(map[string]reflect.Type)}
}

// Register binds name to the error type E.
func Register[E error](r *Registry, name string) {
	r.types[name] = reflect.TypeOf((*E)(nil)).Elem()
}

// Lookup returns the type registered under name.
func (r *Registry) Lookup(name string) (reflect.Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

type document struct {
	Group *groupNode `yaml:"group"`
}

type node struct {
	Type    string       `yaml:"type"`
	Matcher *matcherNode `yaml:"matcher"`
	Group   *groupNode   `yaml:"group"`
}

type matcherNode struct {
	Type  string `yaml:"type"`
	Match string `yaml:"match"`
}

type groupNode struct {
	Expected       []node `yaml:"expected"`
	Flatten        bool   `yaml:"flatten"`
	AllowUnwrapped bool   `yaml:"allow_unwrapped"`
	Match          string `yaml:"match"`
}

// Load parses an expectation document and compiles it into a Group,
// resolving type names through reg.
func Load(data []byte, reg *Registry) (*match.Group, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse expectation document: %w", err)
	}
	if doc.Group == nil {
		return nil, errors.New("expectation document needs a top-level group")
	}
	return compileGroup(doc.Group, reg)
}

func compileGroup(n *groupNode, reg *Registry) (*match.Group, error) {
	if len(n.Expected) == 0 {
		return nil, errors.New("group needs at least one expected entry")
	}
	expected := make([]match.Expectation, 0, len(n.Expected))
	for i := range n.Expected {
		exp, err := compileNode(&n.Expected[i], reg)
		if err != nil {
			return nil, fmt.Errorf("expected[%d]: %w", i, err)
		}
		expected = append(expected, exp)
	}
	var opts []match.GroupOption
	if n.Flatten {
		opts = append(opts, match.FlattenSubgroups())
	}
	if n.AllowUnwrapped {
		opts = append(opts, match.AllowUnwrapped())
	}
	if n.Match != "" {
		opts = append(opts, match.WithGroupPattern(n.Match))
	}
	return match.NewGroup(expected, opts...)
}

func compileNode(n *node, reg *Registry) (match.Expectation, error) {
	set := 0
	if n.Type != "" {
		set++
	}
	if n.Matcher != nil {
		set++
	}
	if n.Group != nil {
		set++
	}
	if set != 1 {
		return nil, errors.New("entry must set exactly one of type, matcher, or group")
	}

	switch {
	case n.Type != "":
		t, ok := reg.Lookup(n.Type)
		if !ok {
			return nil, fmt.Errorf("unknown error type %q", n.Type)
		}
		return match.RawType(t)
	case n.Matcher != nil:
		var opts []match.MatcherOption
		if n.Matcher.Type != "" {
			t, ok := reg.Lookup(n.Matcher.Type)
			if !ok {
				return nil, fmt.Errorf("unknown error type %q", n.Matcher.Type)
			}
			opts = append(opts, match.ForReflectType(t))
		}
		if n.Matcher.Match != "" {
			opts = append(opts, match.WithPattern(n.Matcher.Match))
		}
		return match.NewMatcher(opts...)
	default:
		return compileGroup(n.Group, reg)
	}
}
