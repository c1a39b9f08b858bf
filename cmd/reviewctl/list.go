package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"review_analyzer/internal/domain"
	"review_analyzer/internal/view"
)

var listOpts struct {
	sentiment string
	product   string
	page      int
	pageSize  int
	sort      string
	json      bool
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List analyzed reviews",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		q, err := listQuery()
		if err != nil {
			return err
		}
		list, err := newClient().ListReviews(cmd.Context(), view.ListParams(q))
		if err != nil {
			return errors.New(view.ListErrorMessage(err))
		}

		out := cmd.OutOrStdout()
		if listOpts.json {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		}
		if len(list.Reviews) == 0 {
			fmt.Fprintln(out, view.EmptyMessage(q))
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tPRODUK\tSENTIMEN\tKEYAKINAN\tTANGGAL\tPOIN UTAMA")
		for _, r := range list.Reviews {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				r.ID,
				r.ProductName,
				view.SentimentLabel(r.Sentiment),
				view.FormatConfidence(r.Confidence),
				view.FormatDate(r.CreatedAt, nil),
				strings.Join(r.KeyPoints, "; "),
			)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		totalPages := max(list.TotalPages, 1)
		fmt.Fprintln(out, view.PageInfo(q.Page, totalPages))
		return nil
	},
}

func listQuery() (view.Query, error) {
	q := view.DefaultQuery()
	f, ok := view.ParseFilter(listOpts.sentiment)
	if !ok {
		return q, fmt.Errorf("unknown sentiment %q (want all, positive, negative or neutral)", listOpts.sentiment)
	}
	if !slices.Contains(domain.PageSizes, listOpts.pageSize) {
		return q, fmt.Errorf("page size must be one of %v", domain.PageSizes)
	}
	sort := domain.SortKey(strings.ToLower(listOpts.sort))
	if !slices.Contains(domain.SortKeys, sort) {
		return q, fmt.Errorf("unknown sort %q", listOpts.sort)
	}
	q.Filter = f
	q.Product = listOpts.product
	q.Page = max(listOpts.page, 1)
	q.PageSize = listOpts.pageSize
	q.Sort = sort
	return q, nil
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	f := listCmd.Flags()
	f.StringVarP(&listOpts.sentiment, "sentiment", "s", string(view.FilterAll), "all, positive, negative or neutral")
	f.StringVarP(&listOpts.product, "product", "p", "", "product name substring")
	f.IntVar(&listOpts.page, "page", domain.DefaultPage, "page number")
	f.IntVar(&listOpts.pageSize, "page-size", domain.DefaultPageSize, "5, 10, 20 or 50")
	f.StringVar(&listOpts.sort, "sort", string(domain.SortCreatedAtDesc), "created_at_desc, created_at_asc, confidence_desc or confidence_asc")
	f.BoolVar(&listOpts.json, "json", false, "print JSON")
	rootCmd.AddCommand(listCmd)
}
