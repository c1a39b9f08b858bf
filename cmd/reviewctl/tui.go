package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive terminal UI",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		// the terminal belongs to the UI; logs go to a file
		f, err := os.OpenFile(viper.GetString("log-file"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log.Logger = observability.NewLoggerTo(f, "prod")
		log.Info().Str("base_url", viper.GetString("base-url")).Msg("reviewctl tui starting")

		p := tea.NewProgram(tui.New(newClient(), viper.GetDuration("timeout")), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run tui: %w", err)
		}
		log.Info().Msg("reviewctl tui stopped")
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	tuiCmd.Flags().String("log-file", "reviewctl.log", "log file for the TUI session")
	if err := viper.BindPFlag("log-file", tuiCmd.Flags().Lookup("log-file")); err != nil {
		log.Fatal().Err(err).Msg("error binding flag")
	}
	rootCmd.AddCommand(tuiCmd)
}
