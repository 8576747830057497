package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aretw0/memedir/pkg/imageurl"
)

var classifyJSON bool

var classifyCmd = &cobra.Command{
	Use:   "classify [url...]",
	Short: "Show how image URLs are resolved",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		results := make([]imageurl.Result, 0, len(args))
		for _, arg := range args {
			results = append(results, imageurl.Classify(arg))
		}

		if classifyJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(results); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "INPUT\tVALID\tKIND\tIMAGE")
		for _, r := range results {
			fmt.Fprintf(tw, "%s\t%t\t%s\t%s\n", r.Input, r.Valid, r.Kind, r.URL)
		}
		tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "Output in JSON format")
}
