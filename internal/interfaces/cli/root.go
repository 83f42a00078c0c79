// Package cli implements the annotext command-line tool: offline rendering
// and narration utilities over the same pipeline the server runs.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/annotext/annotext/internal/domain/render"
	apperrors "github.com/annotext/annotext/pkg/errors"
)

// Version is stamped at build time.
var Version = "dev"

// NewRootCmd assembles the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "annotext",
		Short:         "Annotation rendering and narration toolkit",
		Long:          "annotext converts annotated article documents into nested render trees,\nserializes them to markup, and drives text-to-speech narration.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newRenderCmd(),
		newSegmentsCmd(),
		newSpeakCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// readDocument loads a document from the given path, or stdin for "-".
func readDocument(cmd *cobra.Command, path string) (render.Document, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" || path == "" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return render.Document{}, apperrors.New(apperrors.ErrCodeDocumentDecode, "document unreadable").
			WithDetail(path).WithCause(err)
	}
	var doc render.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return render.Document{}, apperrors.New(apperrors.ErrCodeDocumentDecode, "document is not valid JSON").WithCause(err)
	}
	return doc, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "annotext", Version)
		},
	}
}
