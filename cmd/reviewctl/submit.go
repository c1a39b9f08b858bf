package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"review_analyzer/internal/view"
)

var submitOpts struct {
	product string
	text    string
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Analyze and store one review",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if msg := view.Validate(submitOpts.product, submitOpts.text); msg != "" {
			return errors.New(msg)
		}
		rev, err := newClient().Analyze(cmd.Context(),
			strings.TrimSpace(submitOpts.product), strings.TrimSpace(submitOpts.text))
		if err != nil {
			return errors.New(view.SubmitErrorMessage(err))
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, view.Confirmation(rev))
		for _, p := range rev.KeyPoints {
			fmt.Fprintf(out, "  • %s\n", p)
		}
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	f := submitCmd.Flags()
	f.StringVar(&submitOpts.product, "product", "", "product name")
	f.StringVar(&submitOpts.text, "text", "", "review text")
	rootCmd.AddCommand(submitCmd)
}
