package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"temario/internal/publish"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newShowCmd(app *App) *cobra.Command {
	var asTree bool
	var asMarkdown bool
	var headingDepth int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the outline with its derived numbering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asTree && asMarkdown {
				return writeErr(cmd, errors.New("use either --tree or --markdown"))
			}
			g, cfg, err := loadGateway(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ld, err := g.Open(cfg.File)
			if err != nil {
				return writeErr(cmd, err)
			}
			title := strings.TrimSuffix(filepath.Base(ld.Path), filepath.Ext(ld.Path))

			switch {
			case asTree:
				_, err := fmt.Fprint(cmd.OutOrStdout(), publish.RenderTree(ld.Outline, title))
				return err
			case asMarkdown:
				md := publish.RenderMarkdown(ld.Outline, publish.RenderOptions{Title: title, HeadingDepth: headingDepth, Numbered: true})
				if w, ok := terminalWidth(cmd); ok {
					md = publish.RenderTerminal(md, w, "")
				}
				_, err := fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}
			return writeOut(cmd, app, map[string]any{"data": newOutlineView(ld.Outline, ld.Path, ld.Revision)})
		},
	}

	cmd.Flags().BoolVar(&asTree, "tree", false, "Draw the outline as a tree")
	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "Render the outline as Markdown (styled on a terminal)")
	cmd.Flags().IntVar(&headingDepth, "heading-depth", 2, "Deepest level rendered as a Markdown heading")
	return cmd
}

// terminalWidth reports the width of stdout when it is a terminal.
func terminalWidth(cmd *cobra.Command) (int, bool) {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return 80, true
	}
	return w, true
}
