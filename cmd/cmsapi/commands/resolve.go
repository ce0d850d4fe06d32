package commands

import (
	"fmt"
	"os"

	"github.com/code-wheel/jsonapi-frontend-client/pkg/cms"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewResolveCommand creates the resolve command.
func NewResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve PATH",
		Short: "Resolve a site path",
		Long:  "Resolve a single site path through the CMS router into its route descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			route, err := client.Router().ResolvePath(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if route == nil {
				fmt.Printf("Path %s did not resolve\n", args[0])

				return nil
			}

			return renderResolvedRoute(route)
		},
	}
}

func renderResolvedRoute(route *cms.ResolvedRoute) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(route)
	case OutputFormatYAML:
		return StandardYAMLRenderer(route)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("Resolved", orDefault(route.Resolved))
		_ = table.Append("Label", orDefault(route.Label))
		_ = table.Append("Home path", fmt.Sprintf("%t", route.IsHomePath))

		if route.Entity != nil {
			_ = table.Append("Entity type", orDefault(route.Entity.Type))
			_ = table.Append("Bundle", orDefault(route.Entity.Bundle))
			_ = table.Append("UUID", orDefault(route.Entity.UUID))
		}

		if route.JSONAPI != nil {
			_ = table.Append("Resource name", orDefault(route.JSONAPI.ResourceName))
			_ = table.Append("Individual URL", orDefault(route.JSONAPI.Individual))
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}
