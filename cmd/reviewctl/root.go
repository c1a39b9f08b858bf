package main

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/reviewapi"
)

var rootCmd = &cobra.Command{
	Use:   "reviewctl",
	Short: "reviewctl is the client for the product review analyzer.",
	Long:  `Submit product reviews for sentiment analysis and browse analyzed reviews, either interactively (tui) or from scripts.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		level := zerolog.WarnLevel
		if viper.GetBool("verbose") {
			level = zerolog.DebugLevel
		}
		log.Logger = observability.NewLoggerTo(os.Stderr, "dev").Level(level)
	},
	SilenceUsage: true,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("base-url", reviewapi.DefaultBaseURL, "API base URL")
	pf.Duration("timeout", reviewapi.DefaultTimeout, "per-request timeout")
	pf.BoolP("verbose", "v", false, "debug logging")

	for _, name := range []string{"base-url", "timeout", "verbose"} {
		if err := viper.BindPFlag(name, pf.Lookup(name)); err != nil {
			log.Fatal().Err(err).Str("flag", name).Msg("error binding flag")
		}
	}
}

// initConfig reads ENV variables, e.g. REVIEWCTL_BASE_URL.
func initConfig() {
	viper.SetEnvPrefix("REVIEWCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func newClient() *reviewapi.Client {
	return reviewapi.New(viper.GetString("base-url"), viper.GetDuration("timeout"))
}
