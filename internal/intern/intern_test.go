package intern_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ccfront/internal/intern"
)

func TestInternReturnsStablePointer(t *testing.T) {
	in := intern.New()
	a := in.Intern("hello")
	b := in.Intern("hello")
	require.Same(t, a, b)
	require.True(t, intern.Equal(a, b))
}

func TestInternDistinctStrings(t *testing.T) {
	in := intern.New()
	a := in.Intern("foo")
	b := in.Intern("bar")
	require.NotSame(t, a, b)
	require.False(t, intern.Equal(a, b))
}

func TestInternValuePreserved(t *testing.T) {
	in := intern.New()
	p := in.Intern("value")
	require.Equal(t, "value", *p)
}
