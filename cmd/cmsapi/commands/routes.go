package commands

import (
	"fmt"
	"os"

	"github.com/code-wheel/jsonapi-frontend-client/pkg/cms"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRoutesCommand creates the routes command group.
func NewRoutesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Work with the routes feed",
		Long:  "Walk the cursor-paginated routes feed of the CMS",
	}

	cmd.AddCommand(newRoutesListCommand())

	return cmd
}

func newRoutesListCommand() *cobra.Command {
	var (
		locale   string
		pageSize int
		maxPages int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all routed paths",
		Long:  "Follow the routes feed cursor chain to the end and list every routed path",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			opts := &cms.RoutesOptions{
				Locale:   locale,
				PageSize: pageSize,
				MaxPages: maxPages,
			}

			entries, err := client.Routes().CollectAll(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("collecting routes: %w", err)
			}

			return renderRoutes(entries)
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "", "language prefix for the feed (e.g. 'de')")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "page size for the feed (default 50)")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "page ceiling before aborting (default 10000)")

	return cmd
}

func renderRoutes(entries []cms.RouteEntry) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(entries)
	case OutputFormatYAML:
		return StandardYAMLRenderer(entries)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Path", "Kind", "Target")

		for _, entry := range entries {
			_ = table.Append(entry.Path, string(entry.Kind), entry.TargetURL())
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		fmt.Printf("\nTotal: %d routes\n", len(entries))

		return nil
	}
}
