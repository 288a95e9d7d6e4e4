package cmd

import (
	"fmt"

	"github.com/go-argcomplete/argcomplete/pkg/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the demo CLI's version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("argcomplete-demo\n%s", version.Version())
	},
}
