package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/code-wheel/jsonapi-frontend-client/pkg/cms"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewMediaCommand creates the media command group.
func NewMediaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Normalize media from JSON:API documents",
		Long:  "Classify media resources in a JSON:API document into renderable descriptors",
	}

	cmd.AddCommand(newMediaExtractCommand())
	cmd.AddCommand(newMediaEmbedsCommand())

	return cmd
}

func newMediaExtractCommand() *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "extract FILE",
		Short: "Extract media descriptors from a document",
		Long: `Read a JSON:API document from FILE (or "-" for stdin), resolve the named
media relationship of its primary resource against the included set, and
print the normalized descriptors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}

			normalizer := cms.NewMediaNormalizer(viper.GetString("base-url"))

			descriptors := normalizer.ExtractMediaField(doc.Resource(), field, doc.Included)

			return renderMedia(descriptors)
		},
	}

	cmd.Flags().StringVar(&field, "field", "field_image", "relationship field holding the media")

	return cmd
}

func newMediaEmbedsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "embeds FILE",
		Short: "List embedded media references in rich text",
		Long: `Read rich-text HTML from FILE (or "-" for stdin) and list the entity UUID
of every embedded media tag, in document order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			html, err := readInput(args[0])
			if err != nil {
				return err
			}

			uuids := cms.ExtractEmbeddedMediaUUIDs(string(html))

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return StandardJSONRenderer(uuids)
			case OutputFormatYAML:
				return StandardYAMLRenderer(uuids)
			default:
				for _, uuid := range uuids {
					fmt.Println(uuid)
				}

				return nil
			}
		},
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return data, nil
}

func readDocument(path string) (*cms.Document, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}

	var doc cms.Document

	err = json.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	return &doc, nil
}

func renderMedia(descriptors []cms.MediaDescriptor) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(descriptors)
	case OutputFormatYAML:
		return StandardYAMLRenderer(descriptors)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Kind", "Name", "URL", "MIME Type")

		for _, desc := range descriptors {
			_ = table.Append(string(desc.Kind), orDefault(desc.Name), orDefault(desc.URL), orDefault(desc.MimeType))
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}
