package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/muesli/termenv"

	"ogre-meshxml/internal/meshxml"
)

func main() {
	quiet := flag.Bool("q", false, "Only report failures")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-q] file.xml...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	out := termenv.NewOutput(os.Stdout)
	failed := 0
	for _, path := range flag.Args() {
		err := meshxml.ValidateFile(path)
		if err == nil {
			if !*quiet {
				fmt.Printf("%s %s\n", out.String("OK").Foreground(termenv.ANSIGreen), path)
			}
			continue
		}
		failed++

		reason := err.Error()
		if errors.Is(err, meshxml.ErrNotAMeshDocument) {
			reason = meshxml.ErrNotAMeshDocument.Error()
		}
		fmt.Printf("%s %s: %s\n", out.String("FAIL").Foreground(termenv.ANSIRed).Bold(), path, reason)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
