package match

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroup_ExitWithoutEnter(t *testing.T) {
	g := mustGroup(t, []Expectation{Type[*valueError]()})

	handled, err := g.Exit(errors.Join(&valueError{"boom"}))
	assert.False(t, handled)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without a matching Enter")
}

func TestGroup_ExitDidNotRaise(t *testing.T) {
	g := mustGroup(t, []Expectation{Type[*valueError]()})

	h := g.Enter()
	handled, err := g.Exit(nil)
	assert.False(t, handled)
	require.Error(t, err)
	assert.Equal(t, "did not raise, expected ErrorGroup(*match.valueError)", err.Error())
	assert.False(t, h.Filled())
}

func TestGroup_ExitFillsHandleOnMatch(t *testing.T) {
	g := mustGroup(t, []Expectation{Type[*valueError]()})

	raised := errors.Join(&valueError{"boom"})
	h := g.Enter()
	handled, err := g.Exit(raised)
	require.NoError(t, err)
	assert.True(t, handled)

	require.True(t, h.Filled())
	assert.Same(t, raised, h.Value())
	assert.Equal(t, reflect.TypeOf(raised), h.Type())
	assert.NotEmpty(t, h.Stack())
}

func TestGroup_ExitMismatchPreservesCause(t *testing.T) {
	g := mustGroup(t, []Expectation{Type[*valueError]()})

	child := &typeError{"boom"}
	raised := errors.Join(child)
	h := g.Enter()
	handled, err := g.Exit(raised)
	assert.False(t, handled)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "raised error group did not match:")
	assert.Contains(t, err.Error(), "is not of type")
	assert.ErrorIs(t, err, raised)
	assert.False(t, h.Filled())
}

func TestGroup_ExitUnwrappedWording(t *testing.T) {
	g := mustGroup(t, []Expectation{Type[*valueError]()}, AllowUnwrapped())

	g.Enter()
	_, err := g.Exit(&typeError{"boom"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "raised error (group) did not match:")
}

func TestGroup_Catch(t *testing.T) {
	g := mustGroup(t, []Expectation{Type[*valueError]()})

	raised := errors.Join(&valueError{"boom"})
	h, err := g.Catch(func() error { return raised })
	require.NoError(t, err)
	assert.Same(t, raised, h.Value())
}

func TestGroup_CatchNoError(t *testing.T) {
	g := mustGroup(t, []Expectation{Type[*valueError]()})

	h, err := g.Catch(func() error { return nil })
	require.Error(t, err)
	assert.Nil(t, h)
	assert.Contains(t, err.Error(), "did not raise")
}
