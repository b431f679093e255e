package integration_tests

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/modelgen/internal/testutil"
)

// Test for: a primitive without resource_config emits no config and the NONE tier
func TestScenario_PrimitiveLinear(t *testing.T) {
	res := testutil.RunIntegrationTest(t, map[string]string{
		"model.hcl": "model = {}\n" + `modules = [{ type = "Linear", name = "fc", hparams = { in_features = 16, out_features = 8 } }]`,
	}, "generate", "model.hcl", "-")
	require.NoError(t, res.Err)

	want := `// Code generated by modelgen. DO NOT EDIT.

#pragma once

#include "modelgen/kernels.hpp"

struct fc_hparams {
    static constexpr int in_features = 16;
    static constexpr int out_features = 8;
};
using fc_t = Linear<float, fc_hparams, void, OptLevel::NONE>;

struct network_metadata {
    static constexpr const char* name = "network";
    using dtype = float;
    static constexpr const char* dtype_tag = "float";
    static constexpr int module_count = 1;
    static constexpr const char* modules[] = {"fc"};
};
`
	assert.Equal(t, want, res.Output)
	assert.NotContains(t, res.Output, "_config")
}

// Test for: MulHeadAttn expands into projection, softmax, projection before its own alias
func TestScenario_MulHeadAttnExpansion(t *testing.T) {
	res := testutil.RunIntegrationTest(t, map[string]string{
		"model.json": `{"model": {}, "modules": [{"type": "MulHeadAttn", "name": "mha",
			"hparams": {"d_model": 64, "num_heads": 8, "max_seq_len": 128}}]}`,
	}, "generate", "model.json", "out.h")
	require.NoError(t, res.Err)

	header := res.ReadFile(t, "out.h")
	aliases := aliasLines(header)
	assert.Equal(t, []string{
		"using mha_wqkv_t = Linear<float, mha_wqkv_hparams, void, OptLevel::NONE>;",
		"using mha_softmax_t = Softmax<float, mha_softmax_hparams, void, OptLevel::NONE>;",
		"using mha_wo_t = Linear<float, mha_wo_hparams, void, OptLevel::NONE>;",
		"using mha_t = MulHeadAttn<float, mha_hparams, void, OptLevel::NONE>;",
	}, aliases)
	assert.Contains(t, header, "static constexpr int out_features = 192;")
	assert.Contains(t, header, "static constexpr int n = 128;")
}

// Test for: explicit NONE wins over a non-empty resource_config
func TestScenario_ExplicitNoneBeatsResourceConfig(t *testing.T) {
	res := testutil.RunIntegrationTest(t, map[string]string{
		"model.hcl": `model = {}
modules = [{
  type            = "MulHeadAttn"
  name            = "mha"
  opt_level       = "none"
  hparams         = { d_model = 64, num_heads = 8, max_seq_len = 128 }
  resource_config = { unroll = 4 }
}]`,
	}, "generate", "model.hcl", "-")
	require.NoError(t, res.Err)

	assert.NotContains(t, res.Output, "_config")
	for _, line := range aliasLines(res.Output) {
		assert.Contains(t, line, "void, OptLevel::NONE>;")
	}
}

// Test for: resource_config alone selects the configured tier for the whole expansion
func TestScenario_ConfiguredTierPropagates(t *testing.T) {
	res := testutil.RunIntegrationTest(t, map[string]string{
		"model.hcl": `
model = { name = "enc_net", dtype = "half" }
modules = [{
  type            = "EncoderBlock"
  name            = "enc"
  hparams         = { d_model = 64, num_heads = 8, d_ff = 256, max_seq_len = 32, norm_type = "pre", act = "gelu" }
  resource_config = { unroll = 2 }
}]`,
	}, "generate", "model.hcl", "-")
	require.NoError(t, res.Err)

	aliases := aliasLines(res.Output)
	require.Len(t, aliases, 13)
	for _, line := range aliases {
		assert.Contains(t, line, "<half, ")
		assert.Contains(t, line, "_config, OptLevel::THROUGHPUT>;")
	}
	assert.Equal(t, 13, strings.Count(res.Output, "static constexpr int unroll = 2;"))
	assert.Contains(t, res.Output, "static constexpr int module_count = 1;")
}

// Test for: a description without a model object is rejected
func TestScenario_MissingModel(t *testing.T) {
	res := testutil.RunIntegrationTest(t, map[string]string{
		"model.hcl": `modules = [{ type = "Softmax", name = "sm", hparams = { n = 4 } }]`,
	}, "generate", "model.hcl", "out.h")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), `missing required attribute "model"`)
	assert.NoFileExists(t, res.Path("out.h"))
}

// Test for: inspect lists synthesized children and every node's hparams under their composite
func TestScenario_Inspect(t *testing.T) {
	res := testutil.RunIntegrationTest(t, map[string]string{
		"model.hcl": "model = {}\n" + `modules = [{ type = "AddNorm", name = "an", opt_level = "throughput", hparams = { d_model = 8, norm_type = "post" } }]`,
	}, "inspect", "model.hcl")
	require.NoError(t, res.Err)

	assert.Equal(t,
		"network network (dtype float)\n"+
			"  an AddNorm tier=THROUGHPUT (explicit)\n"+
			"      d_model = 8\n"+
			"      norm_type = \"post\"\n"+
			"    an_ln LayerNorm tier=THROUGHPUT (explicit) [expanded]\n"+
			"        hidden_dim = 8\n",
		res.Output)
	assert.Contains(t, res.LogOutput, "Planned module.")
}

func aliasLines(header string) []string {
	var out []string
	for _, line := range strings.Split(header, "\n") {
		if strings.HasPrefix(line, "using ") {
			out = append(out, line)
		}
	}
	return out
}
