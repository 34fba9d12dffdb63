package ccerrors_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ccfront/internal/ccerrors"
)

func TestConstructorsSetKindAndLine(t *testing.T) {
	tests := []struct {
		build func() *ccerrors.CompileError
		kind  ccerrors.Kind
	}{
		{func() *ccerrors.CompileError { return ccerrors.Syntax(3, "bad token") }, ccerrors.SyntaxError},
		{func() *ccerrors.CompileError { return ccerrors.Shape(4, "bad shape") }, ccerrors.ShapeError},
		{func() *ccerrors.CompileError { return ccerrors.Constant(5, "bad constant") }, ccerrors.ConstantError},
		{func() *ccerrors.CompileError { return ccerrors.Type(6, "bad type") }, ccerrors.TypeError},
		{func() *ccerrors.CompileError { return ccerrors.Name(7, "bad name") }, ccerrors.NameError},
	}
	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			err := tc.build()
			require.Equal(t, tc.kind, err.Kind)
			require.Contains(t, err.Error(), string(tc.kind))
		})
	}
}

func TestErrorCarriesStackTrace(t *testing.T) {
	err := ccerrors.Syntax(1, "oops")
	require.NotNil(t, err.StackTrace())
}

func TestFormatArgsInterpolated(t *testing.T) {
	err := ccerrors.Name(2, "use of undeclared identifier %q", "foo")
	require.Contains(t, err.Message, `"foo"`)
}
