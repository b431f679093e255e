package builder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/modelgen/internal/config"
	"github.com/vk/modelgen/internal/diag"
	"github.com/vk/modelgen/internal/policy"
)

type scaleParams struct {
	N      int     `kgen:"n"`
	Factor float64 `kgen:"factor"`
	Mode   string  `kgen:"mode,optional"`
	Note   string
}

func scaleOp() *Op[scaleParams] {
	return &Op[scaleParams]{
		Name:  "Scale",
		Enums: map[string]string{"mode": "ScaleMode"},
		Check: func(m *config.Module, p *scaleParams) error {
			if p.Mode == "" {
				return nil
			}
			return OneOf(m, diag.ErrUnsupportedOperation, "mode", p.Mode, []string{"fast", "exact"})
		},
		ParallelDim: func(p *scaleParams) int { return p.N },
	}
}

func scaleModule(hparams config.Params) *config.Module {
	return &config.Module{Name: "s", Type: "Scale", HParams: hparams}
}

func TestDecode(t *testing.T) {
	testCases := []struct {
		name      string
		hparams   config.Params
		want      scaleParams
		wantErr   error
		wantField string
	}{
		{
			name: "all fields",
			hparams: config.Params{
				{Name: "n", Value: config.Int(8)},
				{Name: "factor", Value: config.Float(0.5)},
				{Name: "mode", Value: config.String("fast")},
			},
			want: scaleParams{N: 8, Factor: 0.5, Mode: "fast"},
		},
		{
			name: "optional omitted and integer widened to float",
			hparams: config.Params{
				{Name: "factor", Value: config.Int(2)},
				{Name: "n", Value: config.Int(3)},
			},
			want: scaleParams{N: 3, Factor: 2},
		},
		{
			name:      "missing required",
			hparams:   config.Params{{Name: "n", Value: config.Int(8)}},
			wantErr:   diag.ErrMissingParameter,
			wantField: "factor",
		},
		{
			name: "fractional value for integer field",
			hparams: config.Params{
				{Name: "n", Value: config.Float(1.5)},
				{Name: "factor", Value: config.Int(1)},
			},
			wantErr:   diag.ErrSchema,
			wantField: "n",
		},
		{
			name: "bool for integer field",
			hparams: config.Params{
				{Name: "n", Value: config.Bool(true)},
				{Name: "factor", Value: config.Int(1)},
			},
			wantErr:   diag.ErrSchema,
			wantField: "n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got scaleParams
			err := Decode(scaleModule(tc.hparams), &got)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				var nodeErr *diag.NodeError
				require.True(t, errors.As(err, &nodeErr))
				assert.Equal(t, tc.wantField, nodeErr.Field)
				assert.Equal(t, "s", nodeErr.Node)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecode_RejectsNonStructTarget(t *testing.T) {
	var n int
	require.Error(t, Decode(scaleModule(nil), &n))
	require.Error(t, Decode(scaleModule(nil), scaleParams{}))
}

func TestRequiredFields(t *testing.T) {
	assert.Equal(t, []string{"n", "factor"}, RequiredFields(scaleParams{}))
	assert.Equal(t, []string{"n", "factor"}, scaleOp().Required())
}

func TestOp_GenerateHParams(t *testing.T) {
	m := scaleModule(config.Params{
		{Name: "factor", Value: config.Float(0.25)},
		{Name: "n", Value: config.Int(16)},
		{Name: "mode", Value: config.String("exact")},
		{Name: "tag", Value: config.String("a\"b")},
		{Name: "fused", Value: config.Bool(true)},
	})

	got, err := scaleOp().GenerateHParams(m)
	require.NoError(t, err)

	want := "struct s_hparams {\n" +
		"    static constexpr double factor = 0.25;\n" +
		"    static constexpr int n = 16;\n" +
		"    static constexpr ScaleMode mode = ScaleMode::exact;\n" +
		"    static constexpr const char* tag = \"a\\\"b\";\n" +
		"    static constexpr bool fused = true;\n" +
		"};\n"
	assert.Equal(t, want, got)
}

func TestOp_GenerateHParams_CheckFailure(t *testing.T) {
	m := scaleModule(config.Params{
		{Name: "n", Value: config.Int(16)},
		{Name: "factor", Value: config.Int(1)},
		{Name: "mode", Value: config.String("sloppy")},
	})
	_, err := scaleOp().GenerateHParams(m)
	require.ErrorIs(t, err, diag.ErrUnsupportedOperation)
	assert.Contains(t, err.Error(), `"sloppy" is not one of fast, exact`)
}

func TestOp_GenerateConfig(t *testing.T) {
	m := scaleModule(config.Params{
		{Name: "n", Value: config.Int(16)},
		{Name: "factor", Value: config.Int(1)},
	})
	m.ResourceConfig = config.Params{
		{Name: "unroll", Value: config.Int(2)},
		{Name: "target_ii", Value: config.Float(1.5)},
		{Name: "partition", Value: config.String("cyclic")},
	}
	op := scaleOp()

	none, err := op.GenerateConfig(m, policy.Resolution{Level: config.OptNone, Source: policy.SourceExplicit})
	require.NoError(t, err)
	assert.Empty(t, none)

	latency, err := op.GenerateConfig(m, policy.Resolution{Level: config.OptLatency, Source: policy.SourceExplicit})
	require.NoError(t, err)
	want := "struct s_config {\n" +
		"    static constexpr int replication = 16;\n" +
		"    static constexpr bool pipeline = false;\n" +
		"    static constexpr int unroll = 2;\n" +
		"    static constexpr double target_ii = 1.5;\n" +
		"    static constexpr const char* partition = \"cyclic\";\n" +
		"};\n"
	assert.Equal(t, want, latency)

	throughput, err := op.GenerateConfig(m, policy.Resolve(m))
	require.NoError(t, err)
	assert.Contains(t, throughput, "static constexpr int replication = 4;")
	assert.Contains(t, throughput, "static constexpr bool pipeline = true;")
}

func TestOp_GenerateTypeAlias(t *testing.T) {
	op := scaleOp()
	m := scaleModule(nil)

	got, err := op.GenerateTypeAlias(m, "float", policy.Resolution{Level: config.OptNone})
	require.NoError(t, err)
	assert.Equal(t, "using s_t = Scale<float, s_hparams, void, OptLevel::NONE>;\n", got)

	got, err = op.GenerateTypeAlias(m, "half", policy.Resolution{Level: config.OptThroughput})
	require.NoError(t, err)
	assert.Equal(t, "using s_t = Scale<half, s_hparams, s_config, OptLevel::THROUGHPUT>;\n", got)
}

func TestOp_CompositeReferencesChildren(t *testing.T) {
	op := &Op[scaleParams]{
		Name: "Twice",
		Synthesize: func(m *config.Module, p *scaleParams) []*config.Module {
			return []*config.Module{
				Child(m, "first", "Scale", config.Params{{Name: "n", Value: config.Int(p.N)}}),
				Child(m, "second", "Scale", config.Params{{Name: "n", Value: config.Int(p.N)}}),
			}
		},
	}
	m := &config.Module{
		Name:           "tw",
		Type:           "Twice",
		HParams:        config.Params{{Name: "n", Value: config.Int(4)}, {Name: "factor", Value: config.Int(2)}},
		ResourceConfig: config.Params{{Name: "unroll", Value: config.Int(2)}},
		OptLevel:       config.OptLatency.Ptr(),
	}

	children, err := op.Expand(m)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "tw_first", children[0].Name)
	assert.True(t, children[0].Synthesized)
	assert.Equal(t, m.ResourceConfig, children[0].ResourceConfig)
	require.NotNil(t, children[0].OptLevel)
	assert.Equal(t, config.OptLatency, *children[0].OptLevel)
	assert.NotSame(t, m.OptLevel, children[0].OptLevel)

	got, err := op.GenerateHParams(m)
	require.NoError(t, err)
	assert.Contains(t, got, "    using first_t = tw_first_t;\n    using second_t = tw_second_t;\n};\n")

	assert.Nil(t, mustExpand(t, scaleOp(), scaleModule(config.Params{{Name: "n", Value: config.Int(1)}, {Name: "factor", Value: config.Int(1)}})))
}

func twiceOp() *Op[scaleParams] {
	return &Op[scaleParams]{
		Name: "Twice",
		Synthesize: func(m *config.Module, p *scaleParams) []*config.Module {
			return []*config.Module{
				Child(m, "first", "Scale", config.Params{{Name: "n", Value: config.Int(p.N)}}),
				Child(m, "second", "Scale", config.Params{{Name: "n", Value: config.Int(p.N)}}),
			}
		},
	}
}

func TestOp_ValidateRejectsMemberClashes(t *testing.T) {
	base := config.Params{{Name: "n", Value: config.Int(4)}, {Name: "factor", Value: config.Int(2)}}
	testCases := []struct {
		name      string
		extra     config.Params
		wantField string
	}{
		{name: "hparam named like a child reference", extra: config.Params{{Name: "second_t", Value: config.Int(1)}}, wantField: "second_t"},
		{name: "reserved word", extra: config.Params{{Name: "class", Value: config.Int(1)}}, wantField: "class"},
		{name: "not an identifier", extra: config.Params{{Name: "2x", Value: config.Int(1)}}, wantField: "2x"},
		{name: "declared twice", extra: config.Params{{Name: "n", Value: config.Int(4)}}, wantField: "n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := &config.Module{Name: "tw", Type: "Twice", HParams: append(base.Clone(), tc.extra...)}

			err := twiceOp().Validate(m)
			require.Error(t, err)
			assert.ErrorIs(t, err, diag.ErrSchema)
			var nodeErr *diag.NodeError
			require.True(t, errors.As(err, &nodeErr))
			assert.Equal(t, tc.wantField, nodeErr.Field)

			_, err = twiceOp().GenerateHParams(m)
			assert.ErrorIs(t, err, diag.ErrSchema)
		})
	}
}

func TestOp_ValidateAllowsHParamNamedLikeRole(t *testing.T) {
	m := &config.Module{Name: "tw", Type: "Twice", HParams: config.Params{
		{Name: "n", Value: config.Int(4)},
		{Name: "factor", Value: config.Int(2)},
		{Name: "first", Value: config.Int(1)},
	}}
	require.NoError(t, twiceOp().Validate(m))

	got, err := twiceOp().GenerateHParams(m)
	require.NoError(t, err)
	assert.Contains(t, got, "    static constexpr int first = 1;\n")
	assert.Contains(t, got, "    using first_t = tw_first_t;\n")
}

func mustExpand(t *testing.T, b Builder, m *config.Module) []*config.Module {
	t.Helper()
	children, err := b.Expand(m)
	require.NoError(t, err)
	return children
}

func TestOp_HasSubmodules(t *testing.T) {
	op := scaleOp()
	assert.False(t, op.HasSubmodules(&config.Module{}))
	assert.True(t, op.HasSubmodules(&config.Module{Submodules: []*config.Module{{}}}))
}

func TestPositive(t *testing.T) {
	m := scaleModule(nil)
	require.NoError(t, Positive(m, Dim{"n", 1}, Dim{"d", 64}))

	err := Positive(m, Dim{"n", 1}, Dim{"d", 0})
	require.ErrorIs(t, err, diag.ErrSchema)
	assert.Contains(t, err.Error(), `"d"`)
}

func TestRole(t *testing.T) {
	parent := &config.Module{Name: "enc"}
	assert.Equal(t, "mha", Role(parent, &config.Module{Name: "enc_mha"}))
	assert.Equal(t, "other", Role(parent, &config.Module{Name: "other"}))
}
