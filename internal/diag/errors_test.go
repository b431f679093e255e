package diag

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeError_Message(t *testing.T) {
	testCases := []struct {
		name string
		err  *NodeError
		want string
	}{
		{
			name: "field and node",
			err:  &NodeError{Err: ErrMissingParameter, Node: "fc", Type: "Linear", Field: "in_features"},
			want: `missing parameter "in_features" in module "fc" (type "Linear")`,
		},
		{
			name: "detail",
			err:  &NodeError{Err: ErrUnsupportedOperation, Node: "act", Type: "Elementwise", Field: "op", Detail: `"tanh" is not one of relu, sigmoid, gelu`},
			want: `unsupported operation "op" in module "act" (type "Elementwise"): "tanh" is not one of relu, sigmoid, gelu`,
		},
		{
			name: "bare category",
			err:  &NodeError{Err: ErrSchema, Detail: "modules must be a list"},
			want: "schema error: modules must be a list",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestNodeError_UnwrapsToCategory(t *testing.T) {
	err := fmt.Errorf("compile: %w", &NodeError{Err: ErrUnknownModuleType, Node: "x", Type: "unknown_op"})

	require.True(t, errors.Is(err, ErrUnknownModuleType))
	require.False(t, errors.Is(err, ErrSchema))

	var nodeErr *NodeError
	require.True(t, errors.As(err, &nodeErr))
	assert.Equal(t, "unknown_op", nodeErr.Type)
}

func TestSchemaf(t *testing.T) {
	err := Schemaf("missing %q", "model")
	assert.True(t, errors.Is(err, ErrSchema))
	assert.Equal(t, `schema error: missing "model"`, err.Error())
}
