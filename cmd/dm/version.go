package main

import (
	"fmt"
	"io"
	"os"
)

// Program metadata, updated at release time.
const (
	progName    = "Documentarist"
	progVersion = "0.1.0"
	progURL     = "https://github.com/caltechlibrary/documentarist"
	progLicense = "BSD 3-clause"
)

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "%s version %s\n", progName, progVersion)
	fmt.Fprintf(w, "URL: %s\n", progURL)
	fmt.Fprintf(w, "License: %s\n", progLicense)
}

func versionCmd(args []string) error {
	printVersion(os.Stdout)
	return nil
}
