package kernels

import (
	"context"

	"github.com/vk/modelgen/internal/config"
	"golang.org/x/sync/errgroup"
)

// Kernel families, named like the templates of the generated header.
const (
	FamilyLinear      = "Linear"
	FamilyLayerNorm   = "LayerNorm"
	FamilySoftmax     = "Softmax"
	FamilyElementwise = "Elementwise"
	FamilyReduce      = "Reduce"
	FamilyBatchNorm   = "BatchNorm"
)

// DefaultReplication is the THROUGHPUT group width for families that do not
// declare their own.
const DefaultReplication = 4

var familyReplication = map[string]int{
	FamilyLinear:      4,
	FamilyLayerNorm:   4,
	FamilySoftmax:     4,
	FamilyElementwise: 8,
	FamilyReduce:      4,
	FamilyBatchNorm:   2,
}

// Replication returns the THROUGHPUT replication factor of a kernel family.
func Replication(family string) int {
	if r, ok := familyReplication[family]; ok {
		return r
	}
	return DefaultReplication
}

// Schedule decides how the units of a kernel's parallel dimension are issued.
type Schedule struct {
	Tier        config.OptLevel
	Replication int
}

// Sequential is the NONE schedule, the baseline every tier must match.
var Sequential = Schedule{Tier: config.OptNone}

// ScheduleFor returns the schedule a generated configuration artifact selects
// for the given family.
func ScheduleFor(tier config.OptLevel, family string) Schedule {
	return Schedule{Tier: tier, Replication: Replication(family)}
}

// Run calls fn once for every unit in [0, units).
func (s Schedule) Run(ctx context.Context, units int, fn func(i int)) error {
	switch s.Tier {
	case config.OptLatency:
		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < units; i++ {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				fn(i)
				return nil
			})
		}
		return g.Wait()
	case config.OptThroughput:
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(max(s.Replication, 1))
		for i := 0; i < units; i++ {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				fn(i)
				return nil
			})
		}
		return g.Wait()
	default:
		for i := 0; i < units; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(i)
		}
		return nil
	}
}
