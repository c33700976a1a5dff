package cli

import (
	"temario/internal/tui"

	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive outline editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}
}

func runTUI(cmd *cobra.Command, app *App) error {
	g, cfg, err := loadGateway(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	ed, err := editorFor(cfg)
	if err != nil {
		return writeErr(cmd, err)
	}
	return tui.Run(cmd.Context(), g, cfg.File, ed)
}
