package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/animabing/animabing/internal/api"
	"github.com/animabing/animabing/internal/clipboard"
	"github.com/animabing/animabing/internal/config"
	"github.com/animabing/animabing/internal/database"
	"github.com/animabing/animabing/internal/history"
	"github.com/animabing/animabing/internal/tui"
)

var (
	// Version information (set via ldflags during build)
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// Global flags
	cfgFile   string
	logLevel  string
	apiURL    string
	noColor   bool
	debugMode bool
	route     string

	// Global config, logger and API client
	cfg    *config.Config
	logger *slog.Logger
	client *api.Client
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "animabing",
	Short: "Browse the Animabing catalog from your terminal",
	Long: `animabing is a terminal client for the Animabing content directory.

Browse, search and filter anime, movies and manga, open episode and chapter
download links in your browser, and report broken entries.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// config init and version work without a loaded config
		if cmd.Name() == "version" || (cmd.Name() == "init" && cmd.Parent().Name() == "config") {
			return nil
		}

		if err := config.InitializeDirs(); err != nil {
			return fmt.Errorf("failed to initialize directories: %w", err)
		}

		var err error
		var v *viper.Viper
		cfg, v, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if debugMode {
			cfg.Advanced.Debug = true
			if logLevel == "" {
				cfg.Logging.Level = "debug"
			}
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		if noColor {
			cfg.Logging.Color = false
		}
		if apiURL != "" {
			cfg.API.BaseURL = apiURL
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		// The TUI owns the terminal, so only subcommands log to stderr
		logger, err = config.InitLogger(&cfg.Logging, cmd != cmd.Root())
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if err := database.Init(&cfg.Database); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}

		client = api.NewClient(cfg, logger)

		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			reloadConfig(v, e)
		})

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			return
		}
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("animabing starting", "version", version, "api", client.BaseURL())

		if route != "" {
			cfg.UI.StartRoute = route
		}

		historySvc := history.NewService(database.GetDB())
		clip := clipboard.NewService(logger, cfg.Advanced.Clipboard.Command)

		location, err := tui.Start(client, historySvc, clip, cfg, logger)
		if err != nil {
			return err
		}
		logger.Info("animabing exiting", "location", location)
		return nil
	},
}

// reloadConfig applies the settings that can change while running: the API
// base URL (unless --api pinned it) and the log level.
func reloadConfig(v *viper.Viper, e fsnotify.Event) {
	logger.Info("config file changed", "name", e.Name)

	next := &config.Config{}
	if err := v.Unmarshal(next); err != nil {
		logger.Error("failed to reload config", "error", err)
		return
	}
	if err := next.Validate(); err != nil {
		logger.Error("ignoring invalid config", "error", err)
		return
	}

	if apiURL == "" {
		client.SetBaseURL(next.API.BaseURL)
	}
	if logLevel == "" && !debugMode {
		config.SetLogLevel(next.Logging.Level)
	}
	logger.Info("config reloaded")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/animabing/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug mode (verbose HTTP logging)")
	rootCmd.Flags().StringVar(&route, "route", "", `location to open, e.g. "/?filter=Hindi%20Dub" or "/anime/<id>"`)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(adminCmd)
}

// versionCmd displays version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("animabing version %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
	},
}

// configCmd handles configuration operations
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := cfgFile
		if configPath == "" {
			configPath = filepath.Join(config.GetConfigDir(), "config.yaml")
		}

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s", configPath)
		}

		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		if err := config.SaveDefaultConfig(configPath); err != nil {
			return fmt.Errorf("failed to save default configuration: %w", err)
		}

		fmt.Printf("Default configuration generated successfully at: %s\n", configPath)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Config file: %s\n", configFileUsed())
		fmt.Printf("API: %s\n", cfg.API.BaseURL)
		fmt.Printf("Page size: %d\n", cfg.Catalog.PageSize)
		fmt.Printf("Start route: %s\n", cfg.UI.StartRoute)
		fmt.Printf("Log level: %s\n", cfg.Logging.Level)
		fmt.Printf("Database: %s\n", cfg.Database.Path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Display configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(configFileUsed())
	},
}

func configFileUsed() string {
	if cfgFile != "" {
		return cfgFile
	}
	return filepath.Join(config.GetConfigDir(), "config.yaml")
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}
