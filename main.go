package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/mindgames-backend/internal"
	"github.com/rocketscienceinc/mindgames-backend/internal/config"
	"github.com/rocketscienceinc/mindgames-backend/internal/entity"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "mindgames",
	Short:        "Mini-game backend: tic-tac-toe, checkers, memory match and word scramble",
	SilenceUsage: true,
	RunE:         serve,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST and WebSocket servers",
	RunE:  serve,
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List the available games",
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, info := range entity.Catalog {
			fmt.Fprintf(w, "%s\t%s\t%s\n", info.Kind, info.Name, info.Description)
		}

		return w.Flush()
	},
}

// main - is the entry point of the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yml (default ./config.yml)")
	rootCmd.AddCommand(serveCmd, gamesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(_ *cobra.Command, _ []string) error {
	conf := initConfig()
	logger := initLogger(conf)

	if err := app.RunApp(logger, conf); err != nil {
		return fmt.Errorf("app run failed: %w", err)
	}

	return nil
}

// initialize config.
func initConfig() *config.Config {
	if configPath != "" {
		return config.MustLoad(configPath)
	}

	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, "./config.yml"))
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
