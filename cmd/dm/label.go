// Handlers for the "label" and "extract" commands. Both stop at the
// boundary to the external OCR pipeline: they resolve the target list and
// the relevant settings, then report what would be submitted. The network
// clients for the cloud services consume the same settings through the
// configuration store.
package main

import (
	"io"

	"github.com/spf13/pflag"

	"github.com/caltechlibrary/documentarist/internal/config"
	"github.com/caltechlibrary/documentarist/internal/scan"
	"github.com/caltechlibrary/documentarist/internal/status"
	"github.com/caltechlibrary/documentarist/internal/trace"
)

const labelSummary = `Label images found in files or URLs.
Arguments are image files, directories to search recursively for image
files, or URLs of images to download. With -f, the value following it names
a file containing one entry per line instead.`

const extractSummary = `Extract text found in files or URLs.
Arguments are image files, directories to search recursively for image
files, or URLs of images to download. With -f, the value following it names
a file containing one entry per line instead.`

func labelCmd(args []string) error {
	return runPipelineCmd("label", args)
}

func extractCmd(args []string) error {
	return runPipelineCmd("extract", args)
}

func runPipelineCmd(verb string, args []string) error {
	targets, err := gatherTargets(verb, args)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		term.Warn("No document images found to %s.", verb)
		return nil
	}

	outputdir, err := conf.Get(config.SectionCore, "outputdir")
	if err != nil {
		return err
	}
	basename, err := conf.Get(config.SectionCore, "basename")
	if err != nil {
		return err
	}

	term.Inform("Found %d document image(s) to %s.", len(targets), verb)
	for _, t := range targets {
		term.Inform("  %s", t)
	}
	term.Inform("Results will be written to %q with basename %q.", outputdir, basename)
	warnMissingCredentials()

	trace.Log().Debug("pipeline handoff",
		"verb", verb, "targets", len(targets), "outputdir", outputdir)
	return nil
}

// gatherTargets parses the command's private arguments and expands them
// into the target list.
func gatherTargets(verb string, args []string) ([]string, error) {
	flags := pflag.NewFlagSet(verb, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	fromFile := flags.StringP("from-file", "f", "", "read the list of inputs from file `F`")
	if err := flags.Parse(args); err != nil {
		return nil, status.BadArgf("%s: %v", verb, err)
	}

	scanner := &scan.Scanner{Warn: term.Warn}
	if *fromFile != "" {
		return scanner.TargetsFromFile(*fromFile)
	}
	return scanner.Targets(flags.Args())
}

// warnMissingCredentials reminds the user when no service has credentials
// installed yet; the pipeline cannot reach any cloud service without them.
func warnMissingCredentials() {
	for _, service := range config.Services {
		creds, err := conf.Get(service, "creds_file")
		if err == nil && creds != "" {
			return
		}
	}
	term.Warn(`No service credentials are installed; run "dm config auth" first.`)
}
