// The program lsif-query answers code navigation requests from an LSIF index.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	if err := mainErr(); err != nil {
		fmt.Fprint(os.Stderr, fmt.Sprintf("\nerror: %v\n", err))
		os.Exit(1)
	}
}

func mainErr() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command, err := parseArgs(os.Args[1:])
	if err != nil {
		return err
	}

	switch command {
	case hoverCommand.FullCommand():
		return runHover(ctx)
	case definitionCommand.FullCommand():
		return runLocations(ctx, "Definitions", definitions)
	case referencesCommand.FullCommand():
		return runLocations(ctx, "References", references)
	case checkCommand.FullCommand():
		return runCheck(ctx)
	case serveCommand.FullCommand():
		return runServe(ctx)
	}

	return fmt.Errorf("unknown command %q", command)
}
