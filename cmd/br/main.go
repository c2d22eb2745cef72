package main

import (
	"fmt"
	"os"

	"github.com/gookit/color"
	"github.com/opsem-dev/br/runner"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	logLevel     string
	configPath   string
	maxSteps     int
	detectCycles bool
	statsFlag    bool
	noColor      bool
)

var rootCmd = &cobra.Command{
	Use:   "br [FILE]",
	Short: "Run a program on the small-step stack machine",
	Long: `br reads a program from FILE, or from standard input when no FILE is given,
and executes it one reduction at a time. Every step prints the control stack
under "Stack evolution by step:"; a successful run ends with the final store.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid log level '%s', using 'warn'\n", logLevel)
			level = zerolog.WarnLevel
		}
		zerolog.SetGlobalLevel(level)
	},
	Run: runCommand,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", "warn", "Set log level (trace, debug, info, warn, error)")
	flags.StringVar(&configPath, "config", "", "Load run settings from a .toml or .yaml file")
	flags.IntVar(&maxSteps, "max-steps", 0, "Abort after this many steps (default from config, 10000)")
	flags.BoolVar(&detectCycles, "detect-cycles", false, "Fail as soon as a configuration repeats")
	flags.BoolVar(&statsFlag, "stats", false, "Print run statistics to stderr")
	flags.BoolVar(&noColor, "no-color", false, "Disable colored diagnostics")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(traceCmd)
}

// loadConfig layers explicitly set flags over the config file over the defaults.
func loadConfig(cmd *cobra.Command) (*runner.Config, error) {
	cfg := runner.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = runner.LoadConfigFromFile(configPath)
		if err != nil {
			return nil, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("max-steps") {
		cfg.Run.MaxSteps = maxSteps
	}
	if flags.Changed("detect-cycles") {
		cfg.Run.DetectCycles = detectCycles
	}
	if flags.Changed("stats") {
		cfg.Output.Stats = statsFlag
	}
	if noColor {
		cfg.Output.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	color.Enable = cfg.Output.Color
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.Red.Sprint("error:"), err)
		os.Exit(1)
	}
}
