package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/powerclass/marketctl/app"
	"github.com/powerclass/marketctl/pkg/export"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export clearing results as csv, json or an html chart",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv, json or html")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file, defaults to stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *app.Service) error {
		sess, err := requireSession(svc)
		if err != nil {
			return err
		}
		results, err := svc.API.ListMarketResults(ctx, sess.ID, 0)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return fmt.Errorf("no cleared results to export")
		}

		out := os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			out = f
		}

		switch exportFormat {
		case "csv":
			return export.WriteCSV(out, results)
		case "json":
			return export.WriteJSON(out, results)
		case "html":
			html, err := export.PriceChartHTML(results)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, html)
			return err
		default:
			return fmt.Errorf("unknown format %q", exportFormat)
		}
	})
}
