package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imleoo/aigc-check/internal/client"
	"github.com/imleoo/aigc-check/internal/display"
	"github.com/imleoo/aigc-check/internal/orchestrator"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List and manage stored detection results",
	}
	cmd.AddCommand(
		newHistoryListCmd(opts),
		newHistoryGetCmd(opts),
		newHistoryDeleteCmd(opts),
		newHistoryClearCmd(opts),
	)
	return cmd
}

func newHistoryListCmd(opts *rootOptions) *cobra.Command {
	var params client.ListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of the detection history",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, logger := opts.newClient()
			defer logger.Sync()

			lister := orchestrator.NewHistoryLister(c, logger)
			page, err := lister.Load(cmd.Context(), params)
			if err != nil {
				return err
			}
			if opts.JSON {
				return printJSON(cmd.OutOrStdout(), page)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "total %d, page %d (size %d)\n", page.Total, page.Page, page.PageSize)
			for _, item := range page.Items {
				fmt.Fprintf(out, "%s  %6.1f  %-8s  %s  %s\n",
					item.ID,
					item.Score,
					display.RiskLevelLabel(item.RiskLevel),
					item.CreatedAt,
					item.TextPreview)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&params.Page, "page", client.DefaultPage, "Page number")
	cmd.Flags().IntVar(&params.PageSize, "page-size", client.DefaultPageSize, "Items per page")
	cmd.Flags().StringVar(&params.Sort, "sort", client.DefaultSort, "Sort field (created_at, score, risk_level)")
	cmd.Flags().StringVar(&params.Order, "order", client.DefaultOrder, "Sort order (asc, desc)")

	return cmd
}

func newHistoryGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch one history entry as a full detection result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, logger := opts.newClient()
			defer logger.Sync()

			result, err := c.FetchHistory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if opts.JSON {
				return printJSON(cmd.OutOrStdout(), result)
			}
			renderResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func newHistoryDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one history entry (deleting a missing id succeeds)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, logger := opts.newClient()
			defer logger.Sync()

			if err := c.DeleteHistory(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}
}

func newHistoryClearCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the entire detection history",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, logger := opts.newClient()
			defer logger.Sync()

			if err := c.DeleteAllHistory(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
			return nil
		},
	}
}
