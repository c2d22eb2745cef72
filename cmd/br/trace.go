package main

import (
	"fmt"
	"io"
	"os"

	"github.com/opsem-dev/br/cas"
	"github.com/opsem-dev/br/interp"
	"github.com/opsem-dev/br/runner"
	"github.com/opsem-dev/br/syntax"
	"github.com/opsem-dev/br/vm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace [FILE]",
	Short: "Step through a program, printing the full configuration each time",
	Args:  cobra.MaximumNArgs(1),
	Run:   traceCommand,
}

func traceCommand(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't load configuration")
	}
	_, src, err := readSource(args)
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't read program")
	}
	prog, err := syntax.Parse(src)
	if err != nil {
		fmt.Fprint(os.Stderr, runner.FormatError(err, src))
		os.Exit(1)
	}
	if err := trace(os.Stdout, prog, cfg); err != nil {
		fmt.Fprint(os.Stderr, runner.FormatError(err, src))
		os.Exit(1)
	}
}

// trace runs prog like the root command but prints every configuration in full.
func trace(w io.Writer, prog syntax.Stmt, cfg *runner.Config) error {
	opts := interp.Options{
		MaxSteps: cfg.Run.MaxSteps,
		OnStep: func(s interp.Snapshot) {
			prettyPrint(w, s)
		},
	}
	if cfg.Run.DetectCycles {
		opts.Seen = cas.NewLRUCache(cas.NewMemoryCAS(), cfg.Run.CycleCacheSize)
	}

	prettyPrint(w, interp.NewConfiguration(prog).Snapshot(0))
	res, err := interp.Run(prog, opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "*******")
	fmt.Fprintln(w, vm.FormatStore(res.Store))
	fmt.Fprintln(w, "Finished")
	return nil
}

func prettyPrint(w io.Writer, s interp.Snapshot) {
	fmt.Fprintln(w, "*******")
	fmt.Fprintf(w, "Step: %d\n", s.Step)
	fmt.Fprintf(w, "Stack: %s\n", interp.RenderStack(s.Frames))
	if len(s.Frames) > 0 {
		fmt.Fprintf(w, "NextFrame: %s\n", s.Frames[0])
	} else {
		fmt.Fprintln(w, "End of program")
	}
	fmt.Fprintf(w, "Store: %s\n", vm.FormatStore(s.Store))
}
