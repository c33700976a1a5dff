package main

import (
	"os"
	"path/filepath"
	"strings"

	"temario/internal/cli"

	_ "github.com/tliron/commonlog/simple"
)

const outlineExt = ".lista"

func isOutlineFile(s string) bool {
	s = strings.TrimSpace(s)
	return strings.EqualFold(filepath.Ext(s), outlineExt) && len(s) > len(outlineExt)
}

// rewriteOpenFileArgs turns `temario [flags] <file.lista>` into
// `temario [flags] tui --file <abs path>`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before
// parsing. Persistent flags may come first, so the first positional token is searched
// for rather than argv[1].
func rewriteOpenFileArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":      true,
		"--file":     true,
		"-f":         true,
		"--format":   true,
		"--policy":   true,
		"--log-file": true,
	}

	rewrite := func(i int) []string {
		path := argv[i]
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "tui", "--file", path)
		out = append(out, argv[i+1:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isOutlineFile(argv[i+1]) {
				out := rewrite(i + 1)
				// Drop the "--" so cobra still sees "tui" as a subcommand.
				return append(out[:i:i], out[i+1:]...)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			// Unknown flags are skipped without their value so the file is never consumed.
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if isOutlineFile(a) {
			return rewrite(i)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteOpenFileArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
