package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/templui/storefront/internal/config"
	"github.com/templui/storefront/internal/db"
	"github.com/templui/storefront/internal/metrics"
	"github.com/templui/storefront/internal/repository"
	"github.com/templui/storefront/internal/service"
)

func CustomerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "customer <customer-id>",
		Short: "Show the payment status and webhook events recorded for a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadDatabase()
			ctx := cmd.Context()

			conn, err := db.Init(ctx, cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return err
			}
			defer db.Close(conn)

			svc := service.NewEventService(
				repository.NewEventRepository(conn),
				repository.NewCustomerStatusRepository(conn),
				nil,
				metrics.New(),
			)

			history, err := svc.CustomerHistory(ctx, args[0])
			if err != nil {
				return err
			}

			return printCustomerHistory(cmd.OutOrStdout(), args[0], history)
		},
	}
}

func printCustomerHistory(out io.Writer, customerID string, history *service.CustomerHistory) error {
	if history.Status == nil {
		fmt.Fprintf(out, "%s: no payment status\n", customerID)
	} else {
		fmt.Fprintf(out, "%s: %s (event %s, updated %s)\n",
			customerID,
			history.Status.Status,
			history.Status.LastEventID,
			history.Status.UpdatedAt.UTC().Format(time.RFC3339),
		)
	}

	if len(history.Events) == 0 {
		fmt.Fprintln(out, "no events")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tEVENT\tTYPE\tOBJECT")
	for _, e := range history.Events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			time.Unix(e.Created, 0).UTC().Format(time.RFC3339),
			e.EventID,
			e.Type,
			e.ObjectID,
		)
	}
	return w.Flush()
}
