package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coccinelle-ai/sara"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sara",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sara version %s\n", strings.TrimSpace(sara.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
