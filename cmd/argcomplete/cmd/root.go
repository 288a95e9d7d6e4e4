// Package cmd implements the argcomplete demo CLI: a small cobra program
// whose flags and subcommands exist to exercise the completion engine
// (completer-backed choice flags, an append flag, a positional completer,
// and shell choices for shellcode). The cobra-level mutually exclusive flags
// on deploy are not carried into the grammar, and no command has a
// REMAINDER-style positional.
package cmd

import (
	"fmt"
	"os"

	"github.com/go-argcomplete/argcomplete/internal/conf"
	"github.com/go-argcomplete/argcomplete/pkg/complete"
	"github.com/go-argcomplete/argcomplete/pkg/complete/find"
	"github.com/go-argcomplete/argcomplete/pkg/complete/grammar"
	"github.com/go-argcomplete/argcomplete/pkg/logging"
	"github.com/go-argcomplete/argcomplete/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "argcomplete-demo",
	Short:         "demo CLI exercising the argcomplete engine",
	Long:          "argcomplete-demo is a fixture CLI: its flags and subcommands exist to give the completion engine real grammar to walk.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute is the main entrypoint. It runs Autocomplete first, which returns
// immediately unless the shell completion protocol is in effect, then hands
// off to cobra for normal execution.
func Execute() {
	complete.Autocomplete(grammar.FromCobra(rootCmd), find.Options{AppendSpace: true})

	if err := rootCmd.Execute(); err != nil {
		logger, logErr := logging.New(logging.LevelError, logging.EncodingPlain, logging.WithOutput(os.Stderr))
		if logErr != nil {
			fmt.Fprintf(os.Stderr, "failed to instantiate CLI logger: %v\n", logErr)
			fmt.Fprintf(os.Stderr, "error running command: %s\n", err)
			os.Exit(1)
		}
		logger.Fatalf("error running command: %s", err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	cobra.OnInitialize(initLogger)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to configuration file")
	if err := conf.RegisterFlags(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "failed to register flags: %v\n", err)
		os.Exit(1)
	}

	rootCmd.AddCommand(deployCmd, greetCmd, versionCmd, shellcodeCmd)
}

func initLogger() {
	err := logging.Init(logging.LevelFromString(viper.GetString(conf.LogLevel)), logging.Encoding(viper.GetString(conf.LogEncoding)),
		logging.WithVersion(version.Short()),
		logging.WithOutput(os.Stdout),
		logging.WithErrorOutput(os.Stderr),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to read config from %s: %v\n", cfgFile, err)
		os.Exit(1)
	}
}
