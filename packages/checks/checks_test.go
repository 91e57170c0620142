package checks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type jsonError struct{ body string }

func (e *jsonError) Error() string { return e.body }

func TestJSONPath(t *testing.T) {
	err := &jsonError{body: `{"code": 404, "detail": {"resource": "user"}}`}

	tests := []struct {
		name     string
		path     string
		expected any
		want     bool
	}{
		{name: "number", path: "code", expected: 404, want: true},
		{name: "nested string", path: "detail.resource", expected: "user", want: true},
		{name: "wrong value", path: "code", expected: 500, want: false},
		{name: "missing path", path: "missing", expected: "x", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JSONPath(tt.path, tt.expected)(err))
		})
	}
}

func TestJSONPath_NotJSON(t *testing.T) {
	assert.False(t, JSONPath("code", 404)(errors.New("plain text")))
}

func TestJSONSchema(t *testing.T) {
	schema := []byte(`{
		"type": "object",
		"required": ["code"],
		"properties": {"code": {"type": "integer"}}
	}`)

	assert.True(t, JSONSchema(schema)(&jsonError{body: `{"code": 404}`}))
	assert.False(t, JSONSchema(schema)(&jsonError{body: `{"code": "not a number"}`}))
	assert.False(t, JSONSchema(schema)(errors.New("plain text")))
}

func TestMessageContains(t *testing.T) {
	assert.True(t, MessageContains("timed out")(errors.New("request timed out after 5s")))
	assert.False(t, MessageContains("timed out")(errors.New("connection refused")))
}

func TestGroupLen(t *testing.T) {
	group := errors.Join(errors.New("a"), errors.New("b"))

	assert.True(t, GroupLen(2)(group))
	assert.False(t, GroupLen(3)(group))
	assert.False(t, GroupLen(1)(errors.New("leaf")))
}
