// Construction of the dm command tree. The tree is built explicitly at
// startup; adding a command means adding a node here and a handler in the
// matching file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/caltechlibrary/documentarist/internal/command"
)

const rootSummary = `Documentarist analyzes scanned documents and photos.
It extracts text and other data from document images using a combination of
cloud-based services and local computation.

Usage: dm [options] <command> [subcommand ...] [args ...]`

const configSummary = `Set or show Documentarist's configuration.
Documentarist stores its settings in a file named "documentarist.toml",
looked for first in the current directory and then in the per-user
configuration directory. Changed values are persisted back to that file.`

func buildTree() *command.Node {
	root := command.New("", rootSummary, nil)

	cfg := command.New("config", configSummary, nil)
	cfg.Add(command.New("show", "Print the current configuration and exit.", configShow))
	cfg.Add(command.New("basename", basenameSummary, configBasename))
	cfg.Add(command.New("outputdir", outputdirSummary, configOutputdir))
	cfg.Add(command.New("auth", authSummary, configAuth))

	root.Add(command.New("version", "Print Documentarist version information, and exit.", versionCmd))
	root.Add(cfg)
	root.Add(command.New("label", labelSummary, labelCmd))
	root.Add(command.New("extract", extractSummary, extractCmd))
	return root
}

// printUsage prints the root help followed by the global options.
func printUsage(root *command.Node, flags *pflag.FlagSet) {
	fmt.Fprint(os.Stdout, root.Help())
	fmt.Fprintf(os.Stdout, "\nOptions:\n%s", flags.FlagUsages())
}
