package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type codedError struct{ code string }

func (e *codedError) Error() string { return e.code }

func TestWrapKeepsTheChain(t *testing.T) {
	base := &codedError{code: "E1"}
	wrapped := Wrapf(Wrap(base, "inner"), "outer %d", 2)

	assert.Equal(t, "outer 2: inner: E1", wrapped.Error())
	assert.True(t, Is(wrapped, base))

	var target *codedError
	assert.True(t, As(wrapped, &target))
	assert.Equal(t, "E1", target.code)
	assert.Contains(t, fmt.Sprintf("%+v", wrapped), "TestWrapKeepsTheChain")
}

func TestNilStaysNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))
	assert.NoError(t, WithStack(nil))
	assert.NoError(t, Join(nil, nil))
}

func TestJoin(t *testing.T) {
	first := New("first")
	second := &codedError{code: "second"}

	joined := Join(first, second)
	assert.True(t, Is(joined, first))
	assert.True(t, Is(joined, second))
}
