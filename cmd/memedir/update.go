package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/memedir/pkg/core"
)

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a meme's name and image URL",
	Long: `Update replaces the name and image URL of a meme. Flags left empty keep the
current value. Likes are regenerated on every update.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		service := newService()

		current, err := service.GetRecord(ctx, args[0])
		if err != nil {
			fatal("Error reading meme", err)
		}

		form := core.FormFrom(current)
		if cmd.Flags().Changed("name") {
			form.Name = formName
		}
		if cmd.Flags().Changed("url") {
			form.ImageURL = formURL
		}

		rec, err := service.EditRecord(ctx, current.ID, form)
		if err != nil {
			fatal("Error updating meme", err)
		}

		fmt.Printf("Meme updated: %s (%d likes)\n", rec.ID, rec.Likes)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVar(&formName, "name", "", "New name (3-100 characters)")
	updateCmd.Flags().StringVar(&formURL, "url", "", "New image URL")
}
