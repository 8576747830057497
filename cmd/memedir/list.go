package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/aretw0/memedir/pkg/core"
	"github.com/aretw0/memedir/pkg/imageurl"
)

var (
	listJSON   bool
	filterName string
	listView   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all memes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := newService()

		records, err := service.ListRecords(context.Background())
		if err != nil {
			fatal("Error listing memes", err)
		}

		filtered, err := filterByName(records, filterName)
		if err != nil {
			fatal("Error filtering memes", err)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(filtered); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		switch listView {
		case "cards":
			renderCards(os.Stdout, filtered)
		case "table", "":
			renderTable(os.Stdout, filtered)
		default:
			fatal("Error", fmt.Errorf("unknown view %q (table, cards)", listView))
		}
	},
}

// filterByName keeps records whose name matches the glob pattern.
func filterByName(records []core.Record, pattern string) ([]core.Record, error) {
	if pattern == "" {
		return records, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	var filtered []core.Record
	for _, r := range records {
		ok, err := doublestar.Match(pattern, r.Name)
		if err != nil {
			return nil, err
		}
		if ok {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func renderTable(w io.Writer, records []core.Record) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tIMAGE\tLIKES")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", r.ID, r.Name, imageurl.ImageURL(r.ImageURL), r.Likes)
	}
	tw.Flush()
}

func renderCards(w io.Writer, records []core.Record) {
	for i, r := range records {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "# %s\n", r.Name)
		fmt.Fprintf(w, "  ID:    %s\n", r.ID)
		fmt.Fprintf(w, "  Image: %s\n", imageurl.ImageURL(r.ImageURL))
		fmt.Fprintf(w, "  Likes: %d\n", r.Likes)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&filterName, "name", "", "Filter memes by name glob (e.g. 'Doge*')")
	listCmd.Flags().StringVar(&listView, "view", "table", "Output layout: table or cards")
}
