package main

import (
	"fmt"
	"io"
	"os"

	"github.com/opsem-dev/br/runner"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// readSource returns a name for the program, used in logs, and its text.
func readSource(args []string) (string, string, error) {
	if len(args) == 0 {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return "<stdin>", string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return args[0], string(b), nil
}

func runCommand(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't load configuration")
	}
	name, src, err := readSource(args)
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't read program")
	}

	exec := runner.NewExecutor(cfg, os.Stdout)
	exec.Reporter = &runner.ColorReporter{Writer: os.Stderr}
	if _, err := exec.Run(name, src); err != nil {
		fmt.Fprint(os.Stderr, runner.FormatError(err, src))
		os.Exit(1)
	}
}
