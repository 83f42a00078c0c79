package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/annotext/annotext/internal/domain/annotation"
	"github.com/annotext/annotext/internal/domain/render"
)

func newRenderCmd() *cobra.Command {
	var (
		input string
		emit  string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Build the render tree for a document",
		Long:  "Reads a document JSON (text, sentences, annotations, vocabulary) and\nprints either the render tree or its HTML serialization.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := readDocument(cmd, input)
			if err != nil {
				return err
			}
			paragraphs, stats, err := render.BuildDocument(doc, annotation.DefaultRegistry())
			if err != nil {
				return err
			}
			if stats.Normalize.Dropped() > 0 || stats.CrossSentence > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d annotations dropped, %d cross-sentence excluded\n",
					stats.Normalize.Dropped(), stats.CrossSentence)
			}

			switch emit {
			case "html":
				fmt.Fprintln(cmd.OutOrStdout(), render.Markup(paragraphs))
			case "tree":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(paragraphs)
			default:
				return fmt.Errorf("unknown output format %q (want html or tree)", emit)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "in", "i", "-", "document JSON file, - for stdin")
	cmd.Flags().StringVarP(&emit, "output", "o", "html", "output format: html or tree")
	return cmd
}
