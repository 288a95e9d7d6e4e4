package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var knownNames = []string{"alice", "bob", "carol", "dave"}

var greetCmd = &cobra.Command{
	Use:   "greet [name]",
	Short: "print a greeting for a known name",
	Args:  cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return knownNames, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "stranger"
		if len(args) > 0 {
			name = args[0]
		}
		fmt.Printf("hello, %s\n", name)
		return nil
	},
}
