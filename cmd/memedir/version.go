package main

import (
	"fmt"

	"github.com/aretw0/memedir"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of memedir",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("memedir version %s\n", memedir.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
