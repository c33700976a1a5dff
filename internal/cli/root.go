package cli

import (
	"fmt"
	"os"
	"strings"

	"temario/internal/format"
	"temario/internal/mutate"
	"temario/internal/store"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"golang.org/x/term"
)

var log = commonlog.GetLogger("temario.cli")

type App struct {
	Dir        string
	File       string
	Policy     string
	PrettyJSON bool
	Format     string
	Verbose    int
	LogFile    string
	IfRevision string

	cfg    store.Config
	loaded bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "temario",
		Short:        "Syllabus outline editor (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive editor
  temario

  # Print the outline with its numbering
  temario show --format text

  # Add a lecture after item 3, one level deeper
  temario insert --after 3 --depth 2 --text "Tema 4"

  # Reorder and re-nest
  temario move-up 5
  temario indent 5
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive editor.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var logPath *string
		if app.LogFile != "" {
			logPath = &app.LogFile
		}
		commonlog.Configure(app.Verbose, logPath)
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TEMARIO_DIR", ""), "Store directory (default: nearest .temario, or data_dir from config)")
	cmd.PersistentFlags().StringVarP(&app.File, "file", "f", "", "Outline file, relative to the store directory (default: file from config)")
	cmd.PersistentFlags().StringVar(&app.Policy, "policy", "", "Depth policy for indent/outdent (literal|guarded|subtree)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TEMARIO_FORMAT", ""), "Output format (json|edn|text; default: text on a terminal, json otherwise)")
	cmd.PersistentFlags().CountVarP(&app.Verbose, "verbose", "v", "Log verbosity (repeat for more)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Write logs to this file instead of stderr")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newEditCmds(app)...)
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newSourceCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newTUICmd(app))

	return cmd
}

// config loads the layered configuration once and applies command-line overrides.
func (app *App) config() (store.Config, error) {
	if app.loaded {
		return app.cfg, nil
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return store.Config{}, err
	}
	if strings.TrimSpace(app.File) != "" {
		cfg.File = app.File
	}
	if strings.TrimSpace(app.Policy) != "" {
		p, err := mutate.ParseDepthPolicy(app.Policy)
		if err != nil {
			return store.Config{}, err
		}
		cfg.DepthPolicy = string(p)
	}
	app.cfg, app.loaded = cfg, true
	return cfg, nil
}

func (app *App) storeDir(cfg store.Config) (string, error) {
	switch {
	case strings.TrimSpace(app.Dir) != "":
		return app.Dir, nil
	case strings.TrimSpace(cfg.DataDir) != "":
		return cfg.DataDir, nil
	default:
		return store.DefaultDir()
	}
}

func loadGateway(app *App) (*store.Gateway, store.Config, error) {
	cfg, err := app.config()
	if err != nil {
		return nil, store.Config{}, err
	}
	dir, err := app.storeDir(cfg)
	if err != nil {
		return nil, store.Config{}, err
	}
	app.Dir = dir
	log.Debugf("store %s, outline %s, policy %s", dir, cfg.File, cfg.DepthPolicy)
	return store.NewGateway(store.Store{Dir: dir}, cfg), cfg, nil
}

func editorFor(cfg store.Config) (mutate.Editor, error) {
	p, err := mutate.ParseDepthPolicy(cfg.DepthPolicy)
	if err != nil {
		return mutate.Editor{}, err
	}
	return mutate.Editor{Policy: p, MaxTextBytes: cfg.MaxTextBytes}, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// outputFormat resolves the effective --format: explicit value, else text when stdout
// is a terminal, else json.
func outputFormat(cmd *cobra.Command, app *App) string {
	if f := strings.TrimSpace(app.Format); f != "" {
		return f
	}
	if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "text"
	}
	return "json"
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, outputFormat(cmd, app), app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
