package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/animabing/animabing/internal/api"
	"github.com/animabing/animabing/internal/catalog"
	"github.com/animabing/animabing/internal/database"
	"github.com/animabing/animabing/internal/detail"
	"github.com/animabing/animabing/internal/history"
	"github.com/animabing/animabing/internal/models"
	"github.com/animabing/animabing/internal/tui/utils"
)

const requestTimeout = 30 * time.Second

// browseCmd lists one page of the catalog
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "List a page of the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		contentType, _ := cmd.Flags().GetString("type")
		subDub, _ := cmd.Flags().GetString("filter")
		sortBy, _ := cmd.Flags().GetString("sort")

		if page < 1 {
			return fmt.Errorf("page must be 1 or greater, got %d", page)
		}
		if err := checkChoice("type", contentType, contentTypeChoices()); err != nil {
			return err
		}
		if err := checkChoice("filter", subDub, subDubChoices()); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		listing, err := client.FetchListing(ctx, page, cfg.Catalog.PageSize)
		if err != nil {
			return fmt.Errorf("failed to fetch catalog: %s", api.UserMessage(err))
		}

		items := catalog.Visible(listing.Items, contentType, subDub, sortBy == "title")
		fmt.Printf("Page %d: %d of %d titles\n", page, len(items), len(listing.Items))
		if p := listing.Pagination; p != nil && p.TotalPages > 0 {
			fmt.Printf("(%s titles across %d pages)\n", humanize.Comma(int64(p.TotalItems)), p.TotalPages)
		}
		fmt.Println()
		printItems(items)
		return nil
	},
}

// searchCmd searches the catalog by title
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		contentType, _ := cmd.Flags().GetString("type")
		subDub, _ := cmd.Flags().GetString("filter")

		if err := checkChoice("type", contentType, contentTypeChoices()); err != nil {
			return err
		}
		if err := checkChoice("filter", subDub, subDubChoices()); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		logger.Info("searching", "query", query)
		results, err := client.Search(ctx, query)
		if errors.Is(err, api.ErrEmptyQuery) {
			return fmt.Errorf("search query must not be blank")
		}
		if err != nil {
			return fmt.Errorf("search failed: %s", api.UserMessage(err))
		}

		results = catalog.Visible(results, contentType, subDub, false)
		if len(results) == 0 {
			fmt.Printf("No results for %q\n", query)
			return nil
		}

		fmt.Printf("Found %d results for %q:\n\n", len(results), query)
		printItems(results)
		return nil
	},
}

// showCmd prints the detail page of an entry
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an entry with its episodes or chapters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _ := cmd.Flags().GetInt("session")

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		page, err := detail.NewLoader(client, logger).Load(ctx, args[0])
		if err != nil {
			return loadError(err)
		}

		item := page.Item
		fmt.Printf("%s (%d)\n", item.Title, item.ReleaseYear)
		fmt.Printf("   ID: %s\n", item.ID)
		fmt.Printf("   Type: %s • %s • %s\n", item.Type, item.SubDub, item.Status)
		if len(item.Genres) > 0 {
			fmt.Printf("   Genres: %s\n", strings.Join(item.Genres, ", "))
		}
		if item.Description != "" {
			fmt.Println()
			for _, line := range utils.Wrap(item.Description, 76) {
				fmt.Printf("   %s\n", line)
			}
		}
		fmt.Println()

		if page.Sessions.Empty() {
			unit := "episodes"
			if item.HasChapters() {
				unit = "chapters"
			}
			fmt.Printf("No %s available yet\n", unit)
			return nil
		}

		sessions := page.Sessions.Numbers
		if session > 0 {
			if len(page.Sessions.Get(session)) == 0 {
				return fmt.Errorf("season %d not found (available: %s)", session, joinInts(sessions))
			}
			sessions = []int{session}
		}

		for _, n := range sessions {
			eps := page.Sessions.Get(n)
			fmt.Printf("Season %d (%d)\n", n, len(eps))
			for _, ep := range eps {
				marker := " "
				if ep.Link == "" {
					marker = "✗"
				}
				fmt.Printf(" %s %4d  %s\n", marker, ep.Number, ep.DisplayTitle(item.HasChapters()))
			}
			fmt.Println()
		}
		return nil
	},
}

// openCmd runs the download sequence for one episode or chapter
var openCmd = &cobra.Command{
	Use:   "open <id> <number>",
	Short: "Open the download link of an episode or chapter in your browser",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid episode number %q", args[1])
		}
		session, _ := cmd.Flags().GetInt("session")

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		loadCtx, loadCancel := context.WithTimeout(ctx, requestTimeout)
		page, err := detail.NewLoader(client, logger).Load(loadCtx, args[0])
		loadCancel()
		if err != nil {
			return loadError(err)
		}

		ep, ok := findEpisode(page.Sessions, session, number)
		if !ok {
			return fmt.Errorf("%s has no %s in season %d", page.Item.Title, models.Episode{Number: number}.DisplayTitle(page.Item.HasChapters()), session)
		}

		opened := make(chan error, 1)
		downloader := detail.NewDownloader(history.NewService(database.GetDB()), logger)
		seq := downloader.Start(page.Item, ep, func(e detail.Event) {
			label := e.Episode.DisplayTitle(e.Item.HasChapters())
			switch e.Stage {
			case detail.StagePreparing:
				fmt.Printf("⏳ Preparing %s...\n", label)
			case detail.StageOpened:
				opened <- e.Err
				if e.Err != nil {
					fmt.Printf("✗ Could not open %s: %v\n", label, e.Err)
				} else {
					fmt.Printf("✓ %s opened in your browser\n", label)
				}
			}
		})

		select {
		case <-seq.Done():
		case <-ctx.Done():
			seq.Stop()
			return fmt.Errorf("cancelled")
		}

		select {
		case err := <-opened:
			return err
		default:
			return nil
		}
	},
}

func init() {
	browseCmd.Flags().Int("page", 1, "page number")
	browseCmd.Flags().StringP("type", "t", models.FilterAll, "content type: "+strings.Join(contentTypeChoices(), ", "))
	browseCmd.Flags().StringP("filter", "f", models.FilterAll, "sub/dub filter: "+strings.Join(subDubChoices(), ", "))
	browseCmd.Flags().String("sort", "", `sort order ("title" for alphabetical)`)

	searchCmd.Flags().StringP("type", "t", models.FilterAll, "content type: "+strings.Join(contentTypeChoices(), ", "))
	searchCmd.Flags().StringP("filter", "f", models.FilterAll, "sub/dub filter: "+strings.Join(subDubChoices(), ", "))

	showCmd.Flags().IntP("session", "s", 0, "only show this season")
	openCmd.Flags().IntP("session", "s", 1, "season of the episode")
}

// findEpisode finds number in session. Session numbers below 1 count as 1.
func findEpisode(sessions detail.Sessions, session, number int) (models.Episode, bool) {
	if session < 1 {
		session = 1
	}
	for _, ep := range sessions.Get(session) {
		if ep.Number == number {
			return ep, true
		}
	}
	return models.Episode{}, false
}

func loadError(err error) error {
	var notFound *api.NotFoundError
	if errors.As(err, &notFound) {
		return fmt.Errorf("content not found: %s", notFound.ID)
	}
	return fmt.Errorf("could not load this title: %s", api.UserMessage(err))
}

func printItems(items []models.ContentItem) {
	for i, item := range items {
		fmt.Printf("%3d. %s (%d)\n", i+1, utils.Truncate(item.Title, 60), item.ReleaseYear)
		fmt.Printf("     ID: %s • %s • %s • %s\n", item.ID, item.Type, item.SubDub, item.Status)
	}
}

func checkChoice(flag, value string, choices []string) error {
	for _, c := range choices {
		if value == c {
			return nil
		}
	}
	return fmt.Errorf("invalid --%s %q (choose from: %s)", flag, value, strings.Join(choices, ", "))
}

func contentTypeChoices() []string {
	choices := []string{models.FilterAll}
	for _, t := range models.ContentTypes {
		choices = append(choices, string(t))
	}
	return choices
}

func subDubChoices() []string {
	choices := []string{models.FilterAll}
	for _, s := range models.SubDubs {
		choices = append(choices, string(s))
	}
	return choices
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
