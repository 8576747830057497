package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a meme",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service := newService()

		if err := service.DeleteRecord(context.Background(), args[0]); err != nil {
			fatal("Error deleting meme", err)
		}

		fmt.Printf("Meme deleted: %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
