package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/aretw0/memedir/pkg/core"
	"github.com/aretw0/memedir/pkg/imageurl"
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Interactively edit a meme",
	Long: `Edit prompts for a new name and image URL, pre-filled with the current values.
ID and likes are read-only; likes are regenerated when the edit is saved.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		service := newService()

		current, err := service.GetRecord(ctx, args[0])
		if err != nil {
			fatal("Error reading meme", err)
		}

		fmt.Printf("ID:    %s\n", current.ID)
		fmt.Printf("Likes: %d\n", current.Likes)

		form := core.FormFrom(current)

		form.Name, err = ask("Name", form.Name, fieldValidator("name"))
		if err != nil {
			abort(err)
		}
		form.ImageURL, err = ask("Image URL", form.ImageURL, fieldValidator("imgUrl"))
		if err != nil {
			abort(err)
		}

		if !imageurl.IsValidHTTPURL(form.ImageURL) {
			fmt.Println("Warning: image URL will render as a placeholder")
		}

		rec, err := service.EditRecord(ctx, current.ID, form)
		if err != nil {
			fatal("Error updating meme", err)
		}

		fmt.Printf("Meme updated: %s (%d likes)\n", rec.ID, rec.Likes)
	},
}

func ask(label, def string, validate promptui.ValidateFunc) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: true,
		Validate:  validate,
	}
	return prompt.Run()
}

// fieldValidator checks a single form field with the service's form rules.
func fieldValidator(field string) promptui.ValidateFunc {
	return func(input string) error {
		var f core.Form
		switch field {
		case "name":
			f = core.Form{Name: input, ImageURL: "https://example.com"}
		default:
			f = core.Form{Name: "valid", ImageURL: input}
		}
		if msg, ok := f.Validate()[field]; ok {
			return errors.New(msg)
		}
		return nil
	}
}

func abort(err error) {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		fmt.Println("Edit cancelled")
		os.Exit(0)
	}
	fatal("Prompt failed", err)
}

func init() {
	rootCmd.AddCommand(editCmd)
}
