package cli

import (
	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the store directory, its index and an empty outline file",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, cfg, err := loadGateway(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			storeID, err := g.Store.Init(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			ld, err := g.Open(cfg.File)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":       g.Store.Dir,
					"storeId":   storeID,
					"indexPath": g.Store.IndexPath(),
					"file":      ld.Path,
					"items":     ld.Outline.Len(),
				},
			})
		},
	}
	return cmd
}
