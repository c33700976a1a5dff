package cli

import (
	"fmt"

	"temario/internal/docs"
	"temario/internal/publish"

	"github.com/spf13/cobra"
)

type docsTopicView struct {
	Topic    string `json:"topic"`
	Markdown string `json:"markdown"`
}

func (v docsTopicView) Text() string { return v.Markdown }

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"topics": docs.Topics()}})
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `temario docs` to list topics)", topic))
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			if w, ok := terminalWidth(cmd); ok && app.Format == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), publish.RenderTerminal(body, w, ""))
				return err
			}
			return writeOut(cmd, app, map[string]any{"data": docsTopicView{Topic: topic, Markdown: body}})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no JSON envelope)")
	return cmd
}
