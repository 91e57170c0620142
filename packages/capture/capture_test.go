package capture

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle_PendingAccessorsPanic(t *testing.T) {
	h := ForLater()

	assert.False(t, h.Filled())
	assert.PanicsWithValue(t, "capture: Type can only be used after the scoped block exits", func() { h.Type() })
	assert.PanicsWithValue(t, "capture: Value can only be used after the scoped block exits", func() { h.Value() })
	assert.PanicsWithValue(t, "capture: Stack can only be used after the scoped block exits", func() { h.Stack() })
}

func TestHandle_Fill(t *testing.T) {
	h := ForLater()
	err := errors.New("boom")

	h.Fill(err)

	require.True(t, h.Filled())
	assert.Same(t, err, h.Value())
	assert.Equal(t, reflect.TypeOf(err), h.Type())
	assert.Contains(t, string(h.Stack()), "goroutine")
}

func TestHandle_FillTwicePanics(t *testing.T) {
	h := ForLater()
	h.Fill(errors.New("boom"))

	assert.PanicsWithValue(t, "capture: handle was already filled", func() {
		h.Fill(errors.New("again"))
	})
}

func TestHandle_FillNilPanics(t *testing.T) {
	h := ForLater()

	assert.PanicsWithValue(t, "capture: cannot fill handle with a nil error", func() {
		h.Fill(nil)
	})
}
