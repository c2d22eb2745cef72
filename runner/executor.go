package runner

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/opsem-dev/br/cas"
	"github.com/opsem-dev/br/interp"
	"github.com/opsem-dev/br/syntax"
	"github.com/opsem-dev/br/vm"
	"github.com/rs/zerolog/log"
)

// TraceHeader precedes the per-step stack renderings.
const TraceHeader = "Stack evolution by step:"

// An Executor runs one program and writes its trace and final store to Out.
type Executor struct {
	Config   *Config
	Out      io.Writer
	Reporter Reporter
	RunID    string
}

func NewExecutor(cfg *Config, out io.Writer) *Executor {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Executor{
		Config:   cfg,
		Out:      out,
		Reporter: &SilentReporter{},
		RunID:    uuid.NewString(),
	}
}

// Run parses src and executes it. Lex and parse errors are returned before
// anything is written. A runtime error is returned after the partial trace
// has been written, and the store line is omitted.
func (e *Executor) Run(name, src string) (*interp.Result, error) {
	logger := log.With().Str("run", e.RunID).Str("source", name).Logger()
	logger.Debug().Int("bytes", len(src)).Msg("parsing")

	prog, err := syntax.Parse(src)
	if err != nil {
		logger.Debug().Err(err).Msg("rejected")
		return nil, err
	}

	w := bufio.NewWriter(e.Out)
	defer w.Flush()
	fmt.Fprintln(w, TraceHeader)

	opts := interp.Options{
		MaxSteps: e.Config.Run.MaxSteps,
		OnStep: func(s interp.Snapshot) {
			fmt.Fprintln(w, s)
		},
	}
	var cache *cas.LRUCache
	if e.Config.Run.DetectCycles {
		cache = cas.NewLRUCache(cas.NewMemoryCAS(), e.Config.Run.CycleCacheSize)
		opts.Seen = cache
	}

	logger.Debug().Int("max_steps", opts.MaxSteps).Bool("detect_cycles", cache != nil).Msg("running")
	start := time.Now()
	res, err := interp.Run(prog, opts)
	elapsed := time.Since(start)

	if e.Config.Output.Stats {
		stats := Statistics{Elapsed: elapsed}
		if res != nil {
			stats.Steps = res.Steps
			stats.MaxDepth = res.MaxDepth
			stats.Variables = len(res.Store)
		}
		if cache != nil {
			cs := cache.Stats()
			stats.Cache = &cs
		}
		e.Reporter.Printf("%s", FormatStatistics(stats))
	}
	if err != nil {
		logger.Debug().Err(err).Msg("run failed")
		return res, err
	}
	fmt.Fprintln(w, vm.FormatStore(res.Store))
	return res, nil
}
