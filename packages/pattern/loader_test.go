package pattern

import (
	"errors"
	"testing"

	"github.com/abdul-hamid-achik/groupcheck/packages/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeoutError struct{ msg string }

func (e *timeoutError) Error() string { return e.msg }

type pathError struct{ msg string }

func (e *pathError) Error() string { return e.msg }

func testRegistry() *Registry {
	reg := NewRegistry()
	Register[*timeoutError](reg, "TimeoutError")
	Register[*pathError](reg, "PathError")
	return reg
}

func TestLoad_SimpleGroup(t *testing.T) {
	doc := []byte(`
group:
  expected:
    - type: TimeoutError
    - matcher:
        type: PathError
        match: "no such file"
`)
	g, err := Load(doc, testRegistry())
	require.NoError(t, err)

	raised := errors.Join(
		&timeoutError{"deadline exceeded"},
		&pathError{"open /etc/missing: no such file or directory"},
	)
	assert.True(t, g.Matches(raised))

	assert.False(t, g.Matches(errors.Join(&timeoutError{"deadline exceeded"})))
}

func TestLoad_NestedGroup(t *testing.T) {
	doc := []byte(`
group:
  expected:
    - group:
        expected:
          - type: TimeoutError
`)
	g, err := Load(doc, testRegistry())
	require.NoError(t, err)

	assert.True(t, g.Matches(errors.Join(errors.Join(&timeoutError{"slow"}))))
	assert.False(t, g.Matches(errors.Join(&timeoutError{"slow"})))
}

func TestLoad_Modifiers(t *testing.T) {
	doc := []byte(`
group:
  flatten: true
  match: "slow"
  expected:
    - type: TimeoutError
`)
	g, err := Load(doc, testRegistry())
	require.NoError(t, err)

	assert.True(t, g.Matches(errors.Join(errors.Join(&timeoutError{"slow"}))))
}

func TestLoad_AllowUnwrapped(t *testing.T) {
	doc := []byte(`
group:
  allow_unwrapped: true
  expected:
    - type: TimeoutError
`)
	g, err := Load(doc, testRegistry())
	require.NoError(t, err)

	assert.True(t, g.Matches(&timeoutError{"slow"}))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "not yaml",
			doc:  "{{{",
			want: "parse expectation document",
		},
		{
			name: "missing top-level group",
			doc:  "expected: []",
			want: "top-level group",
		},
		{
			name: "empty expected",
			doc:  "group:\n  expected: []",
			want: "at least one expected entry",
		},
		{
			name: "unknown type",
			doc:  "group:\n  expected:\n    - type: NopeError",
			want: `unknown error type "NopeError"`,
		},
		{
			name: "both type and matcher",
			doc: `
group:
  expected:
    - type: TimeoutError
      matcher:
        match: "x"
`,
			want: "exactly one of type, matcher, or group",
		},
		{
			name: "flatten with nested group",
			doc: `
group:
  flatten: true
  expected:
    - group:
        expected:
          - type: TimeoutError
`,
			want: "cannot combine FlattenSubgroups",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc), testRegistry())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_EmptyMatcherFailsConstruction(t *testing.T) {
	doc := []byte(`
group:
  expected:
    - matcher: {}
`)
	_, err := Load(doc, testRegistry())
	require.Error(t, err)
	assert.ErrorIs(t, err, match.ErrNoCriteria)
}
