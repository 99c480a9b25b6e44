package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/powerclass/marketctl/app"
	"github.com/powerclass/marketctl/core/actionlog"
)

var (
	actionsFilter string
	actionsSince  time.Duration
)

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "Show the local journal of submitted actions",
	RunE:  runActions,
}

func init() {
	actionsCmd.Flags().StringVar(&actionsFilter, "action", "", "filter by action type, e.g. bid_submitted")
	actionsCmd.Flags().DurationVar(&actionsSince, "since", 0, "only show actions newer than this, e.g. 24h")
	rootCmd.AddCommand(actionsCmd)
}

func runActions(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		q := actionlog.Query{Action: actionlog.Action(actionsFilter)}
		if sess := svc.Store.CurrentSession(); sess != nil {
			q.SessionID = sess.ID
		}
		if actionsSince > 0 {
			q.Start = time.Now().Add(-actionsSince)
		}
		records, err := svc.Actions.Query(ctx, q)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tACTION\tDETAIL\tRESULT")
		for _, r := range records {
			result := "ok"
			if r.Err != "" {
				result = r.Err
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Timestamp.Format(time.RFC3339), r.Action, r.Detail, result)
		}
		return w.Flush()
	})
}
