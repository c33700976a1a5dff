package cli

import (
	"errors"
	"strings"

	"temario/internal/publish"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var toDir string
	var title string
	var headingDepth int
	var withTree bool
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "publish --to DIR",
		Short: "Export the outline as Markdown (derived, not canonical)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			toDir = strings.TrimSpace(toDir)
			if toDir == "" {
				return writeErr(cmd, errors.New("missing --to"))
			}
			g, cfg, err := loadGateway(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ld, err := g.Open(cfg.File)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := publish.WriteOutline(ld.Outline, ld.Path, toDir, publish.WriteOptions{
				Title:        title,
				HeadingDepth: headingDepth,
				WithTree:     withTree,
				Overwrite:    overwrite,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().StringVar(&toDir, "to", "", "Output directory")
	_ = cmd.MarkFlagRequired("to")
	cmd.Flags().StringVar(&title, "title", "", "Document title (default: outline file name)")
	cmd.Flags().IntVar(&headingDepth, "heading-depth", 2, "Deepest level rendered as a heading")
	cmd.Flags().BoolVar(&withTree, "tree", false, "Also write a plain-text tree")
	cmd.Flags().BoolVar(&overwrite, "overwrite", true, "Overwrite existing files")
	return cmd
}
