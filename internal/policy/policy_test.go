package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/modelgen/internal/config"
)

func TestResolve(t *testing.T) {
	withConfig := config.Params{{Name: "unroll", Value: config.Int(4)}}

	testCases := []struct {
		name       string
		module     *config.Module
		wantLevel  config.OptLevel
		wantSource Source
		wantConfig bool
	}{
		{
			name:       "no config and no opt_level resolves to NONE",
			module:     &config.Module{},
			wantLevel:  config.OptNone,
			wantSource: SourceDefault,
		},
		{
			name:       "resource_config selects configured tier",
			module:     &config.Module{ResourceConfig: withConfig},
			wantLevel:  config.OptThroughput,
			wantSource: SourceConfigured,
			wantConfig: true,
		},
		{
			name:       "explicit NONE beats resource_config",
			module:     &config.Module{ResourceConfig: withConfig, OptLevel: config.OptNone.Ptr()},
			wantLevel:  config.OptNone,
			wantSource: SourceExplicit,
		},
		{
			name:       "explicit LATENCY without resource_config",
			module:     &config.Module{OptLevel: config.OptLatency.Ptr()},
			wantLevel:  config.OptLatency,
			wantSource: SourceExplicit,
			wantConfig: true,
		},
		{
			name:       "explicit THROUGHPUT with resource_config",
			module:     &config.Module{ResourceConfig: withConfig, OptLevel: config.OptThroughput.Ptr()},
			wantLevel:  config.OptThroughput,
			wantSource: SourceExplicit,
			wantConfig: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := Resolve(tc.module)
			assert.Equal(t, tc.wantLevel, res.Level)
			assert.Equal(t, tc.wantSource, res.Source)
			assert.Equal(t, tc.wantConfig, res.EmitsConfig())
		})
	}
}

func intOf(t *testing.T, p config.Params, name string) int64 {
	t.Helper()
	v, ok := p.Get(name)
	require.True(t, ok, "entry %q missing", name)
	i, _ := v.AsBigFloat().Int64()
	return i
}

func TestDirectives(t *testing.T) {
	latency := Directives(Resolution{Level: config.OptLatency}, 64, 4)
	assert.Equal(t, int64(64), intOf(t, latency, DirectiveReplication))
	pipe, _ := latency.Get(DirectivePipeline)
	assert.False(t, pipe.True())

	throughput := Directives(Resolution{Level: config.OptThroughput}, 64, 4)
	assert.Equal(t, int64(4), intOf(t, throughput, DirectiveReplication))
	pipe, _ = throughput.Get(DirectivePipeline)
	assert.True(t, pipe.True())

	narrow := Directives(Resolution{Level: config.OptThroughput}, 2, 4)
	assert.Equal(t, int64(2), intOf(t, narrow, DirectiveReplication), "factor is clamped to the parallel dimension")

	assert.Nil(t, Directives(Resolution{Level: config.OptNone}, 64, 4))
}

func TestConfigEntries_MergesInDeclaredOrder(t *testing.T) {
	user := config.Params{
		{Name: "unroll", Value: config.Int(8)},
		{Name: DirectiveReplication, Value: config.Int(2)},
		{Name: "partition", Value: config.String("cyclic")},
	}

	got := ConfigEntries(Resolution{Level: config.OptThroughput}, 64, 4, user)

	names := make([]string, 0, len(got))
	for _, e := range got {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{DirectiveReplication, DirectivePipeline, "unroll", "partition"}, names)
	assert.Equal(t, int64(2), intOf(t, got, DirectiveReplication))
}

func TestConfigEntries_NoneEmitsNothing(t *testing.T) {
	user := config.Params{{Name: "unroll", Value: config.Int(8)}}
	assert.Nil(t, ConfigEntries(Resolution{Level: config.OptNone, Source: SourceExplicit}, 64, 4, user))
}
