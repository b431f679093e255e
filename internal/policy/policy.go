// Package policy resolves the optimization tier of each module node and
// derives the scheduling directives carried into its configuration artifact.
//
// Resolution order, per node:
//
//  1. An explicit opt_level is used verbatim, overriding every heuristic.
//  2. Otherwise a non-empty resource_config selects the configured tier
//     (historically named ENABLED), which schedules as THROUGHPUT.
//  3. Otherwise the node resolves to NONE and no configuration is emitted.
package policy

import (
	"github.com/vk/modelgen/internal/config"
)

// Directive names emitted ahead of user resource_config entries.
const (
	DirectiveReplication = "replication"
	DirectivePipeline    = "pipeline"
)

// Source records which rule produced a Resolution.
type Source int

const (
	SourceDefault Source = iota
	SourceConfigured
	SourceExplicit
)

func (s Source) String() string {
	switch s {
	case SourceConfigured:
		return "configured"
	case SourceExplicit:
		return "explicit"
	default:
		return "default"
	}
}

// Resolution is the resolved optimization policy of one node.
type Resolution struct {
	Level  config.OptLevel
	Source Source
}

// EmitsConfig reports whether a configuration artifact is generated.
func (r Resolution) EmitsConfig() bool {
	return r.Level != config.OptNone
}

// Resolve applies the tier rules to a node.
func Resolve(m *config.Module) Resolution {
	if m.OptLevel != nil {
		return Resolution{Level: *m.OptLevel, Source: SourceExplicit}
	}
	if len(m.ResourceConfig) > 0 {
		return Resolution{Level: config.OptThroughput, Source: SourceConfigured}
	}
	return Resolution{Level: config.OptNone, Source: SourceDefault}
}

// Directives returns the scheduling directives for a resolved tier.
//
// LATENCY replicates across the whole parallel dimension. THROUGHPUT groups
// units by the family replication factor, never wider than the parallel
// dimension, and pipelines issue across groups. NONE has no directives.
func Directives(res Resolution, parallelDim, replication int) config.Params {
	switch res.Level {
	case config.OptLatency:
		return config.Params{
			{Name: DirectiveReplication, Value: config.Int(max(parallelDim, 1))},
			{Name: DirectivePipeline, Value: config.Bool(false)},
		}
	case config.OptThroughput:
		factor := max(replication, 1)
		if parallelDim > 0 {
			factor = min(factor, parallelDim)
		}
		return config.Params{
			{Name: DirectiveReplication, Value: config.Int(factor)},
			{Name: DirectivePipeline, Value: config.Bool(true)},
		}
	default:
		return nil
	}
}

// ConfigEntries merges the tier directives with the node's resource_config.
// A user entry named like a directive replaces it in place; the remaining
// user entries follow in declared order. NONE yields no entries at all.
func ConfigEntries(res Resolution, parallelDim, replication int, user config.Params) config.Params {
	if !res.EmitsConfig() {
		return nil
	}
	out := Directives(res, parallelDim, replication)
	for _, entry := range user {
		replaced := false
		for i := range out {
			if out[i].Name == entry.Name {
				out[i].Value = entry.Value
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, entry)
		}
	}
	return out
}
