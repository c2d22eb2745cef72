package interp

import (
	"github.com/opsem-dev/br/cas"
	"github.com/opsem-dev/br/syntax"
	"github.com/opsem-dev/br/vm"
	"github.com/rs/zerolog/log"
)

const DefaultMaxSteps = 10000

type Options struct {
	// MaxSteps bounds the run; zero or less means DefaultMaxSteps.
	MaxSteps int
	// OnStep, if set, sees every snapshot as soon as it is taken.
	OnStep func(Snapshot)
	// Seen enables cycle detection when non-nil.
	Seen cas.CAS
}

// Result holds everything a run produced. On failure Trace still holds every
// step that succeeded and Store is nil.
type Result struct {
	Trace    []Snapshot
	Store    []vm.Binding
	Steps    int
	MaxDepth int
}

// Run drives prog from an empty store until the control stack empties, a step
// fails, or the step limit is exceeded.
func Run(prog syntax.Stmt, opts Options) (*Result, error) {
	limit := opts.MaxSteps
	if limit <= 0 {
		limit = DefaultMaxSteps
	}
	c := NewConfiguration(prog)
	res := &Result{MaxDepth: len(c.Stack)}
	if opts.Seen != nil {
		if err := visit(opts.Seen, c.Snapshot(0)); err != nil {
			return res, err
		}
	}

	for step := 1; !c.Done(); step++ {
		if step > limit {
			log.Debug().Int("limit", limit).Int("depth", len(c.Stack)).Msg("Run: step limit exceeded")
			return res, &StepLimitError{Limit: limit}
		}
		top := c.Stack.Peek(0)
		if _, err := Step(c); err != nil {
			return res, &StepError{Step: step, Frame: top.String(), Err: err}
		}

		snap := c.Snapshot(step)
		res.Trace = append(res.Trace, snap)
		res.Steps = step
		if len(c.Stack) > res.MaxDepth {
			res.MaxDepth = len(c.Stack)
		}
		if opts.OnStep != nil {
			opts.OnStep(snap)
		}
		if opts.Seen != nil {
			if err := visit(opts.Seen, snap); err != nil {
				return res, err
			}
		}
	}

	res.Store = c.Store.Snapshot()
	log.Debug().Int("steps", res.Steps).Int("max_depth", res.MaxDepth).Msg("Run: finished")
	return res, nil
}

func visit(seen cas.CAS, snap Snapshot) error {
	h, err := cas.HashOf(&snap)
	if err != nil {
		return err
	}
	if seen.Has(h) {
		prev, err := cas.Retrieve[Snapshot](seen, h)
		if err != nil {
			return err
		}
		if !prev.SameConfiguration(snap) {
			log.Warn().Uint64("hash", uint64(h)).Int("step", snap.Step).Msg("visit: hash collision, configuration not recorded")
			return nil
		}
		first := 0
		if steps := seen.Steps(h); len(steps) > 0 {
			first = steps[0]
		}
		prev.Step = first
		return &CycleError{Step: snap.Step, FirstSeen: first, Repeated: *prev}
	}
	if _, err := seen.Put(&snap); err != nil {
		return err
	}
	seen.RecordStep(h, snap.Step)
	return nil
}
