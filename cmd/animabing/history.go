package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/animabing/animabing/internal/database"
	"github.com/animabing/animabing/internal/history"
)

// historyCmd lists recently opened download links
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently opened download links",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		items, err := history.NewService(database.GetDB()).Recent(limit)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if len(items) == 0 {
			fmt.Println("No history yet")
			return nil
		}

		for _, item := range items {
			fmt.Printf("%s  (%s)\n", item.Label(), item.Ago())
			fmt.Printf("   %s\n", item.Link)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear [content-id]",
	Short: "Delete all history, or the history of one entry",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := history.NewService(database.GetDB())
		if len(args) == 1 {
			if err := svc.DeleteByContentID(args[0]); err != nil {
				return fmt.Errorf("failed to delete history: %w", err)
			}
			fmt.Printf("Deleted history of %s\n", args[0])
			return nil
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			confirm := huh.NewConfirm().
				Title("Delete all history?").
				Affirmative("Delete").
				Negative("Keep").
				Value(&yes)
			err := huh.NewForm(huh.NewGroup(confirm)).WithTheme(huh.ThemeCatppuccin()).Run()
			if err != nil {
				yes = false
			}
		}
		if !yes {
			fmt.Println("History kept")
			return nil
		}

		n, err := svc.Clear()
		if err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Printf("Deleted %d history entries\n", n)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "number of entries to show")
	historyClearCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	historyCmd.AddCommand(historyClearCmd)
}
