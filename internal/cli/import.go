package cli

import (
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <src>",
		Short: "Replace the outline with the content of an external outline file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, cfg, err := loadGateway(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := g.Import(cmd.Context(), args[0], cfg.File)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": newEditView(out, "")})
		},
	}
	return cmd
}

func newSourceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "source",
		Short: "Show whether the outline was last written by the editor or imported",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, cfg, err := loadGateway(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			src, err := g.SourceType(cmd.Context(), cfg.File)
			if err != nil {
				return writeErr(cmd, err)
			}
			label := string(src)
			if label == "" {
				label = "unknown"
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"path":       g.Store.Resolve(cfg.File),
					"sourceType": label,
				},
			})
		},
	}
	return cmd
}

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded edits of the outline, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, cfg, err := loadGateway(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			evs, err := g.Edits(cmd.Context(), cfg.File, limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": historyView{Path: g.Store.Resolve(cfg.File), Events: evs}})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of events (0 = all)")
	return cmd
}
