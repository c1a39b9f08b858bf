package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"review_analyzer/internal/domain"
	"review_analyzer/internal/view"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show sentiment totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := newClient().Stats(cmd.Context())
		if err != nil {
			return errors.New(view.StatsErrorMessage(err))
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Total Ulasan: %d\n", st.Total)
		rows := []struct {
			s   domain.Sentiment
			n   int
			pct float64
		}{
			{domain.SentimentPositive, st.Positive, st.PositivePercentage},
			{domain.SentimentNegative, st.Negative, st.NegativePercentage},
			{domain.SentimentNeutral, st.Neutral, st.NeutralPercentage},
		}
		for _, r := range rows {
			fmt.Fprintf(out, "%-8s %d (%.1f%%)\n", view.SentimentLabel(r.s)+":", r.n, r.pct)
		}
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.AddCommand(statsCmd)
}
