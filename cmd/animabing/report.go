package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/animabing/animabing/internal/api"
	"github.com/animabing/animabing/internal/detail"
	"github.com/animabing/animabing/internal/models"
	"github.com/animabing/animabing/internal/tui/components/report"
)

// reportCmd submits an issue report for an entry or one of its episodes.
// Without --description it opens the interactive form.
var reportCmd = &cobra.Command{
	Use:   "report <id>",
	Short: "Report a problem with an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		issueType, _ := cmd.Flags().GetString("type")
		number, _ := cmd.Flags().GetInt("episode")
		session, _ := cmd.Flags().GetInt("session")

		values := report.Values{IssueType: issueType}
		values.Description, _ = cmd.Flags().GetString("description")
		values.Email, _ = cmd.Flags().GetString("email")
		values.Username, _ = cmd.Flags().GetString("username")

		if issueType != "" && !validIssueType(issueType) {
			return fmt.Errorf("invalid --type %q (choose from: %s)", issueType, strings.Join(issueTypeChoices(), ", "))
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		item, ep, err := resolveReportTarget(ctx, args[0], session, number)
		if err != nil {
			return err
		}

		if strings.TrimSpace(values.Description) == "" {
			if err := report.NewForm(&values, item, ep).Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Println("Report cancelled")
					return nil
				}
				return fmt.Errorf("report form failed: %w", err)
			}
		} else if values.IssueType == "" {
			values.IssueType = string(models.IssueBrokenLink)
		}

		submitCtx, submitCancel := context.WithTimeout(context.Background(), requestTimeout)
		defer submitCancel()

		if err := client.SubmitReport(submitCtx, values.Report(item, ep)); err != nil {
			return fmt.Errorf("could not submit report: %s", api.UserMessage(err))
		}
		fmt.Println("Report submitted. Thank you!")
		return nil
	},
}

func init() {
	reportCmd.Flags().StringP("type", "t", "", "issue type: "+strings.Join(issueTypeChoices(), ", "))
	reportCmd.Flags().StringP("description", "d", "", "what went wrong (opens a form when empty)")
	reportCmd.Flags().String("email", "", "contact email")
	reportCmd.Flags().String("username", "", "your username")
	reportCmd.Flags().IntP("episode", "e", 0, "episode or chapter number the report is about")
	reportCmd.Flags().IntP("session", "s", 1, "season of --episode")
}

// resolveReportTarget looks up the entry and, when number is set, the
// episode being reported.
func resolveReportTarget(ctx context.Context, id string, session, number int) (models.ContentItem, *models.Episode, error) {
	loader := detail.NewLoader(client, logger)
	if number <= 0 {
		item, err := loader.Resolve(ctx, id)
		if err != nil {
			return models.ContentItem{}, nil, loadError(err)
		}
		return item, nil, nil
	}

	page, err := loader.Load(ctx, id)
	if err != nil {
		return models.ContentItem{}, nil, loadError(err)
	}
	ep, ok := findEpisode(page.Sessions, session, number)
	if !ok {
		return models.ContentItem{}, nil, fmt.Errorf("%s has no %s in season %d", page.Item.Title, models.Episode{Number: number}.DisplayTitle(page.Item.HasChapters()), session)
	}
	return page.Item, &ep, nil
}

func validIssueType(s string) bool {
	for _, it := range models.IssueTypes {
		if string(it) == s {
			return true
		}
	}
	return false
}

func issueTypeChoices() []string {
	choices := make([]string, len(models.IssueTypes))
	for i, it := range models.IssueTypes {
		choices[i] = string(it)
	}
	return choices
}
