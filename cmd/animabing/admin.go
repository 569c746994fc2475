package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/animabing/animabing/internal/api"
	"github.com/animabing/animabing/internal/database"
	"github.com/animabing/animabing/internal/tui/utils"
)

var errNotLoggedIn = errors.New("not logged in, run: animabing admin login")

// adminCmd groups the admin API commands
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin API access",
}

var adminLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the admin API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		var password string

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Username").
					Value(&username),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&password),
			),
		).WithTheme(huh.ThemeCatppuccin())
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("login form failed: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		token, err := client.Login(ctx, username, password)
		if err != nil {
			return fmt.Errorf("login failed: %s", api.UserMessage(err))
		}

		db := database.GetDB()
		if err := database.SaveSetting(db, database.SettingAdminToken, token); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}
		if err := database.SaveSetting(db, database.SettingAdminUsername, username); err != nil {
			return fmt.Errorf("failed to save username: %w", err)
		}

		fmt.Printf("✓ Logged in as %s\n", username)
		if exp, err := api.TokenExpiry(token); err == nil && !exp.IsZero() {
			fmt.Printf("Session expires %s\n", humanize.Time(exp))
		}
		return nil
	},
}

var adminLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored admin session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.ClearSetting(database.GetDB(), database.SettingAdminToken, database.SettingAdminUsername); err != nil {
			return fmt.Errorf("failed to logout: %w", err)
		}
		fmt.Println("Logged out")
		return nil
	},
}

var adminStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the admin session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db := database.GetDB()
		token, err := database.GetSetting(db, database.SettingAdminToken)
		if err != nil {
			return fmt.Errorf("failed to read session: %w", err)
		}
		if token == "" {
			fmt.Println("Admin: Not logged in ✗")
			return nil
		}
		username, _ := database.GetSetting(db, database.SettingAdminUsername)

		exp, err := api.TokenExpiry(token)
		switch {
		case err != nil:
			fmt.Printf("Admin: %s (unreadable token, log in again) ✗\n", username)
		case api.TokenExpired(token, time.Now()):
			fmt.Printf("Admin: %s (session expired %s) ✗\n", username, humanize.Time(exp))
		case exp.IsZero():
			fmt.Printf("Admin: %s ✓\n", username)
		default:
			fmt.Printf("Admin: %s (expires %s) ✓\n", username, humanize.Time(exp))
		}
		return nil
	},
}

var adminReportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List submitted reports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := adminToken()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		reports, err := client.AdminReports(ctx, token)
		if err != nil {
			return fmt.Errorf("failed to list reports: %s", api.UserMessage(err))
		}
		if len(reports) == 0 {
			fmt.Println("No reports")
			return nil
		}

		fmt.Printf("%d reports:\n\n", len(reports))
		for i, r := range reports {
			fmt.Printf("%3d. [%s] %s", i+1, r.IssueType, r.AnimeID)
			if r.EpisodeNumber > 0 {
				fmt.Printf(" #%d", r.EpisodeNumber)
			}
			if r.Status != "" {
				fmt.Printf(" (%s)", r.Status)
			}
			fmt.Println()
			fmt.Printf("     %s\n", utils.Truncate(r.Description, 72))
			if r.Username != "" || r.Email != "" {
				fmt.Printf("     from %s %s\n", r.Username, r.Email)
			}
			if r.CreatedAt != "" {
				fmt.Printf("     %s\n", r.CreatedAt)
			}
		}
		return nil
	},
}

// adminToken returns the stored token, refusing expired ones
func adminToken() (string, error) {
	token, err := database.GetSetting(database.GetDB(), database.SettingAdminToken)
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	if token == "" {
		return "", errNotLoggedIn
	}
	if api.TokenExpired(token, time.Now()) {
		return "", fmt.Errorf("admin session expired, run: animabing admin login")
	}
	return token, nil
}

func init() {
	adminLoginCmd.Flags().StringP("username", "u", "", "admin username")
	adminCmd.AddCommand(adminLoginCmd)
	adminCmd.AddCommand(adminLogoutCmd)
	adminCmd.AddCommand(adminStatusCmd)
	adminCmd.AddCommand(adminReportsCmd)
}
