// Package main implements dm, the Documentarist command-line interface.
// Documentarist takes images of documents and photos and extracts text and
// other data using a combination of cloud-based services and local
// computation.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/caltechlibrary/documentarist/internal/config"
	"github.com/caltechlibrary/documentarist/internal/status"
	"github.com/caltechlibrary/documentarist/internal/trace"
	"github.com/caltechlibrary/documentarist/internal/ui"
)

// Shared by the command handlers in this package. Both are created once per
// run, before dispatch.
var (
	conf *config.Store
	term *ui.UI
)

func main() {
	watchForInterrupt()
	os.Exit(int(run(os.Args[1:])))
}

// watchForInterrupt arranges for an interrupt signal to terminate the
// process immediately. This is deliberately not a graceful shutdown: a
// handler may be blocked inside a network call to an OCR service, and there
// is no reliable way to cancel that cooperatively, so the process is killed
// on the spot without flushing queued output or waiting on anything.
func watchForInterrupt() {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		fmt.Fprintln(os.Stderr, "Interrupted.")
		os.Exit(int(status.Interrupted))
	}()
}

// run parses the global options, loads the configuration, and dispatches
// the command, returning the process exit code.
func run(args []string) status.Code {
	flags := pflag.NewFlagSet("dm", pflag.ContinueOnError)
	flags.SortFlags = false
	flags.SetInterspersed(false)
	configFile := flags.StringP("configfile", "c", "", "use `PATH` as the configuration file")
	quiet := flags.BoolP("quiet", "q", false, "only print important messages while working")
	noColor := flags.BoolP("no-color", "C", false, "do not color-code terminal output")
	showVersion := flags.BoolP("version", "V", false, "print version info and exit")
	debugDest := flags.StringP("debug", "@", "", "write trace to `OUT` (\"-\" means console)")
	flags.SetOutput(io.Discard) // errors and usage are reported below instead

	root := buildTree()

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printUsage(root, flags)
			return status.Success
		}
		fmt.Fprintln(os.Stderr, err)
		return status.BadArgument
	}

	term = ui.New(*quiet, !*noColor)
	term.Start()

	if *debugDest != "" {
		if err := trace.Enable(*debugDest); err != nil {
			return fail(err)
		}
	}

	if *showVersion {
		printVersion(os.Stdout)
		return status.Success
	}

	var err error
	conf, err = config.Open(*configFile)
	if err != nil {
		return fail(err)
	}
	trace.Log().Debug("configuration loaded", "file", conf.Path())

	return fail(root.Dispatch(flags.Args()))
}

// fail translates the error surfacing from dispatch into the exit code,
// alerting the user along the way. Status errors speak for themselves;
// anything else gets a one-line summary on the terminal with the full
// detail recorded only in the trace.
func fail(err error) status.Code {
	code := status.CodeOf(err)
	switch {
	case err == nil:
	case code == status.Exception:
		term.Alert("Encountered error: %v", err)
		trace.Log().Error("unhandled error", "error", err)
	default:
		term.Alert("%v", err)
		trace.Log().Debug("stopping", "code", int(code), "error", err)
	}
	return code
}
