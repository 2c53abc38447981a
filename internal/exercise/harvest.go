package exercise

import (
	"context"

	"growingcode/internal/harvest"

	"go.uber.org/zap"
)

const (
	CountHarvestIterative = "ft_count_harvest_iterative"
	CountHarvestRecursive = "ft_count_harvest_recursive"
)

const countHarvestDoc = `# Count days to harvest

Ask how many days remain until harvest, then count them one by one.

    Days until harvest: 3
    Day 1
    Day 2
    Day 3
    Harvest time!

The **iterative** version uses a plain loop. The **recursive** version keeps
its state (target and elapsed days) in a session and advances it one step at
a time until the count reaches the target.

A target of 0 announces the harvest straight away unless the
` + "`harvest.zero_day_policy`" + ` setting is ` + "`forced`" + `.
`

// countHarvestIterative counts with a plain for-loop.
func countHarvestIterative(ctx context.Context, env *Env) error {
	target, err := env.source().Target(ctx)
	if err != nil {
		return err
	}
	// Start applies the zero-day and negative policies.
	s, err := harvest.Start(target, env.Harvest.Options...)
	if err != nil {
		return err
	}
	env.Logger.Debug("iterative count", zap.Int("target", s.Target()))

	rep := env.reporter()
	for day := 1; day <= s.Target(); day++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		rep.Progress(day)
	}
	rep.Complete()
	return nil
}

// countHarvestRecursive drives the session state machine step by step.
func countHarvestRecursive(ctx context.Context, env *Env) error {
	s, err := harvest.StartFrom(ctx, env.source(), env.Harvest.Options...)
	if err != nil {
		return err
	}
	env.Logger.Debug("session count", zap.Int("target", s.Target()), zap.Stringer("state", s.State()))

	if err := s.Run(ctx, env.reporter()); err != nil {
		return err
	}
	env.Logger.Debug("session finished", zap.Int("elapsed", s.Elapsed()), zap.Stringer("state", s.State()))
	return nil
}

// Builtin returns the exercises shipped with grow.
func Builtin() []Exercise {
	return []Exercise{
		{
			Name:    CountHarvestIterative,
			Summary: "Count days to harvest with a loop",
			Doc:     countHarvestDoc,
			Run:     countHarvestIterative,
		},
		{
			Name:    CountHarvestRecursive,
			Summary: "Count days to harvest step by step",
			Doc:     countHarvestDoc,
			Run:     countHarvestRecursive,
		},
	}
}

// DefaultRegistry returns a registry holding the built-in exercises.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, ex := range Builtin() {
		// Built-in names are unique.
		_ = r.Register(ex)
	}
	return r
}
