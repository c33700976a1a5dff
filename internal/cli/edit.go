package cli

import (
	"errors"

	"temario/internal/mutate"

	"github.com/spf13/cobra"
)

// runEdit applies one operation through the gateway. A depth-bound no-op is reported
// with changed:false and exit status 0.
func runEdit(cmd *cobra.Command, app *App, build func(g opContext) (mutate.Op, error)) error {
	g, cfg, err := loadGateway(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	ed, err := editorFor(cfg)
	if err != nil {
		return writeErr(cmd, err)
	}
	op, err := build(opContext{open: func() (int, []int, error) {
		ld, err := g.Open(cfg.File)
		if err != nil {
			return 0, nil, err
		}
		depths := make([]int, 0, ld.Outline.Len())
		for _, it := range ld.Outline.Items {
			depths = append(depths, it.Depth)
		}
		return ld.Outline.Len(), depths, nil
	}})
	if err != nil {
		return writeErr(cmd, err)
	}

	out, err := g.Edit(cmd.Context(), cfg.File, ed, op, app.IfRevision)
	note := ""
	switch {
	case err == nil:
	case mutate.IsNoop(err) && out != nil:
		note = err.Error()
	default:
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{"data": newEditView(out, note)})
}

// opContext gives op builders lazy access to the current outline shape.
type opContext struct {
	open func() (n int, depths []int, err error)
}

func newEditCmds(app *App) []*cobra.Command {
	cmds := []*cobra.Command{
		newInsertCmd(app),
		newModifyCmd(app),
		positionCmd(app, mutate.OpRemove, "remove <position>", "Remove a leaf item"),
		positionCmd(app, mutate.OpMoveUp, "move-up <position>", "Swap an item (and its subtree) with the previous sibling"),
		positionCmd(app, mutate.OpMoveDown, "move-down <position>", "Swap an item (and its subtree) with the next sibling"),
		positionCmd(app, mutate.OpIndent, "indent <position>", "Nest an item one level deeper"),
		positionCmd(app, mutate.OpOutdent, "outdent <position>", "Move an item one level up"),
	}
	for _, c := range cmds {
		c.Flags().StringVar(&app.IfRevision, "if-revision", "", "Refuse the edit unless the file is still at this revision")
	}
	return cmds
}

func positionCmd(app *App, kind, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, func(opContext) (mutate.Op, error) {
				idx, err := parsePosition(args[0])
				if err != nil {
					return mutate.Op{}, err
				}
				return mutate.Op{Kind: kind, Index: idx}, nil
			})
		},
	}
}

func newInsertCmd(app *App) *cobra.Command {
	var after int
	var depth int
	var text string

	cmd := &cobra.Command{
		Use:   "insert --text T [--after N] [--depth D]",
		Short: "Insert an item after position N (0 = at the start; default: at the end)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, func(oc opContext) (mutate.Op, error) {
				n, depths, err := oc.open()
				if err != nil {
					return mutate.Op{}, err
				}
				idx := n - 1
				if cmd.Flags().Changed("after") {
					if idx, err = parseAfter(after); err != nil {
						return mutate.Op{}, err
					}
				}
				d := depth
				if !cmd.Flags().Changed("depth") {
					// Default: a sibling of the item it follows.
					d = 1
					if idx >= 0 && idx < len(depths) {
						d = depths[idx]
					}
				}
				return mutate.Op{Kind: mutate.OpInsert, Index: idx, Depth: d, Text: text}, nil
			})
		},
	}
	cmd.Flags().IntVar(&after, "after", 0, "Insert after this position (0 = at the start)")
	cmd.Flags().IntVar(&depth, "depth", 1, "Depth of the new item (clamped to what its neighbours allow)")
	cmd.Flags().StringVar(&text, "text", "", "Item text (HTML fragment)")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newModifyCmd(app *App) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "modify <position> --text T",
		Short: "Replace the text of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, func(opContext) (mutate.Op, error) {
				idx, err := parsePosition(args[0])
				if err != nil {
					return mutate.Op{}, err
				}
				if !cmd.Flags().Changed("text") {
					return mutate.Op{}, errors.New("missing --text")
				}
				return mutate.Op{Kind: mutate.OpModify, Index: idx, Text: text}, nil
			})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "New item text")
	return cmd
}
