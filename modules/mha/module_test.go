package mha

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/diag"
	"github.com/vk/modelgen/internal/registry"
	"github.com/vk/modelgen/modules/linear"
	"github.com/vk/modelgen/modules/softmax"
)

func TestRegister_AddsDelegates(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.RegisterAll(&linear.Module{}, &Module{}, &Module{}))
	assert.Equal(t, []string{linear.Type, Type, softmax.Type}, r.Types())
}

func TestBuilder_Expand(t *testing.T) {
	m := &config.Module{
		Name:           "attn",
		Type:           Type,
		HParams:        HParams(64, 8, 128),
		ResourceConfig: config.Params{{Name: "unroll", Value: config.Int(2)}},
		OptLevel:       config.OptLatency.Ptr(),
	}
	children, err := Builder.Expand(m)
	require.NoError(t, err)
	require.Len(t, children, 3)

	wqkv, sm, wo := children[0], children[1], children[2]
	assert.Equal(t, "attn_wqkv", wqkv.Name)
	assert.Equal(t, linear.HParams(64, 192), wqkv.HParams)
	assert.Equal(t, "attn_softmax", sm.Name)
	assert.Equal(t, softmax.Type, sm.Type)
	assert.Equal(t, "attn_wo", wo.Name)
	assert.Equal(t, linear.HParams(64, 64), wo.HParams)

	for _, c := range children {
		assert.True(t, c.Synthesized)
		require.NotNil(t, c.OptLevel)
		assert.Equal(t, config.OptLatency, *c.OptLevel)
		assert.Equal(t, m.ResourceConfig, c.ResourceConfig)
	}

	children[0].ResourceConfig[0].Value = config.Int(9)
	assert.Equal(t, config.Int(2), m.ResourceConfig[0].Value, "children get their own copy")
}

func TestBuilder_ValidateHeads(t *testing.T) {
	m := &config.Module{Name: "attn", Type: Type, HParams: HParams(64, 6, 128)}
	err := Builder.Validate(m)
	require.ErrorIs(t, err, diag.ErrSchema)
	assert.Contains(t, err.Error(), "not divisible")

	m.HParams = HParams(64, 0, 128)
	require.ErrorIs(t, Builder.Validate(m), diag.ErrSchema)
}
