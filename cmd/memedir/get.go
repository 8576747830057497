package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/memedir/pkg/core"
)

var getJSON bool

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a single meme",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service := newService()

		rec, err := service.GetRecord(context.Background(), args[0])
		if err != nil {
			fatal("Error reading meme", err)
		}

		if getJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(rec); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}
		renderCards(os.Stdout, []core.Record{rec})
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().BoolVar(&getJSON, "json", false, "Output in JSON format")
}
