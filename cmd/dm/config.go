// Handlers for the "config" subcommands.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/caltechlibrary/documentarist/internal/config"
	"github.com/caltechlibrary/documentarist/internal/status"
)

const basenameSummary = `Set the basename for files downloaded over the network.
When the inputs are URLs, Documentarist must download a copy of the image at
each network address. Downloaded images are converted to PNG and written to
files named "<basename>-N.png", with the source URL kept in a matching
"<basename>-N.url" file. The default basename is "document"; for example,

    dm config basename someothername

changes the naming pattern to "someothername-N".`

const outputdirSummary = `Set the output directory where files will be written.
By default, results are written next to the original files, or to the
current directory when the inputs are URLs. The directory given to

    dm config outputdir /tmp

must already exist and be writable.`

var servicesList = strings.Join(config.Services, ", ")

var authSummary = `Configure credentials for cloud services.
Before a service can be used, Documentarist needs user credentials for it,
stored in a JSON file in the format required by that service. For example,

    dm config auth google mygooglecreds.json

copies the credentials into Documentarist's configuration directory and
records their location. Run "config auth" once per service. Recognized
services: ` + servicesList + `.`

func configShow(args []string) error {
	for key, value := range conf.Settings() {
		fmt.Printf("%s = %q\n", key, value)
	}
	return nil
}

func configBasename(args []string) error {
	if len(args) == 0 {
		return status.BadArgf(`missing NAME argument to "config basename"`)
	}
	return conf.Set(config.SectionCore, "basename", args[0])
}

func configOutputdir(args []string) error {
	if len(args) == 0 {
		return status.BadArgf(`missing PATH argument to "config outputdir"`)
	}
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return status.FileErrf("directory does not exist: %s", path)
	}
	if !info.IsDir() {
		return status.FileErrf("not a directory: %s", path)
	}
	// A stat-based permission check is unreliable across platforms, so
	// probe with a real file.
	probe, err := os.CreateTemp(path, ".dm-*")
	if err != nil {
		return status.FileErrf("directory is not writable: %s", path)
	}
	probe.Close()
	os.Remove(probe.Name())

	return conf.Set(config.SectionCore, "outputdir", path)
}

func configAuth(args []string) error {
	if len(args) == 0 {
		return status.BadArgf(`missing service name after "config auth" (expected one of: %s)`, servicesList)
	}
	if len(args) < 2 {
		return status.BadArgf("missing file argument after service name")
	}
	if err := conf.InstallCredentials(args[0], args[1]); err != nil {
		return err
	}
	term.Inform("Installed %s credentials.", strings.ToLower(args[0]))
	return nil
}
