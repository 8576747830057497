package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/memedir/pkg/core"
)

var (
	formName string
	formURL  string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a meme",
	Long:  `Create adds a meme with the given name and image URL. Likes are generated.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := newService()

		rec, err := service.CreateRecord(context.Background(), core.Form{Name: formName, ImageURL: formURL})
		if err != nil {
			fatal("Error creating meme", err)
		}

		fmt.Printf("Meme created: %s (%d likes)\n", rec.ID, rec.Likes)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVar(&formName, "name", "", "Meme name (3-100 characters)")
	createCmd.Flags().StringVar(&formURL, "url", "", "Image URL")
}
