package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of advisormatch",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("advisormatch %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
