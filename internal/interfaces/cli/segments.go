package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/annotext/annotext/internal/domain/annotation"
	"github.com/annotext/annotext/internal/domain/playback"
	"github.com/annotext/annotext/internal/domain/render"
)

func newSegmentsCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "segments",
		Short: "List a document's narration segments",
		Long:  "Prints the sentence-level narration queue derived from a document,\nincluding paragraph-pause flags.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := readDocument(cmd, input)
			if err != nil {
				return err
			}
			paragraphs, _, err := render.BuildDocument(doc, annotation.DefaultRegistry())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(playback.SegmentsFromParagraphs(paragraphs))
		},
	}
	cmd.Flags().StringVarP(&input, "in", "i", "-", "document JSON file, - for stdin")
	return cmd
}
