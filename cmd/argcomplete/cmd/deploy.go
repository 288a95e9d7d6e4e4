package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var environments = []string{"dev", "staging", "prod"}

var (
	deployEnv     string
	deployVerbose bool
	deployQuiet   bool
	deployTags    []string
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "deploy the current build to an environment",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("deploying to %s (tags=%v)\n", deployEnv, deployTags)
		return nil
	},
}

func init() {
	flags := deployCmd.Flags()
	flags.StringVar(&deployEnv, "env", "dev", "target environment")
	flags.BoolVarP(&deployVerbose, "verbose", "v", false, "print extra diagnostics")
	flags.BoolVarP(&deployQuiet, "quiet", "q", false, "suppress non-error output")
	flags.StringArrayVar(&deployTags, "tag", nil, "attach a tag to the deployment (repeatable)")
	flags.String("config", "", "path to a deployment config file")

	deployCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	_ = deployCmd.RegisterFlagCompletionFunc("env", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return environments, cobra.ShellCompDirectiveNoFileComp
	})
	_ = deployCmd.RegisterFlagCompletionFunc("tag", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"canary", "stable", "rollback"}, cobra.ShellCompDirectiveNoFileComp
	})
}
