package main

import (
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin"
	"github.com/pkg/errors"
	"github.com/sourcegraph/lsif-query/internal/config"
	"github.com/sourcegraph/lsif-query/internal/log"
	"github.com/sourcegraph/lsif-query/internal/output"
)

var app = kingpin.New(
	"lsif-query",
	"lsif-query answers hover, definition, and references requests from an LSIF index.",
).Version(version)

var (
	dumpFile      string
	rootDir       string
	configFile    string
	serverCommand string
	verbosity     int
	noOutput      bool
	noAnimation   bool
	jsonOutput    bool
	watchDump     bool

	document  string
	line      int
	character int
)

var (
	hoverCommand      = app.Command("hover", "Print the hover text at a position.")
	definitionCommand = app.Command("definition", "Print the definitions of the symbol at a position.")
	referencesCommand = app.Command("references", "Print the references to the symbol at a position.")
	checkCommand      = app.Command("check", "Validate the index and print its stats.")
	serveCommand      = app.Command("serve", "Run a language server over stdio.")
)

func init() {
	app.HelpFlag.Short('h')

	app.Flag("dump", "The index file (default dump.lsif).").Envar("LSIF_QUERY_DUMP").PlaceHolder("file").StringVar(&dumpFile)
	app.Flag("root", "The workspace root index URIs are rewritten to (inferred via git).").Envar("LSIF_QUERY_ROOT").PlaceHolder("dir").StringVar(&rootDir)
	app.Flag("config", "The config file (default <root>/"+config.FileName+").").Envar("LSIF_QUERY_CONFIG").PlaceHolder("file").StringVar(&configFile)
	app.Flag("server", "The language server command line used when the index has no answer.").Envar("LSIF_QUERY_SERVER").PlaceHolder("cmd").StringVar(&serverCommand)
	app.Flag("verbose", "Display timings and logs. Repeat for more detail.").Short('v').CounterVar(&verbosity)
	app.Flag("no-output", "Do not output progress.").Default("false").BoolVar(&noOutput)
	app.Flag("no-animation", "Do not animate progress.").Default("false").BoolVar(&noAnimation)

	for _, command := range []*kingpin.CmdClause{hoverCommand, definitionCommand, referencesCommand} {
		command.Arg("document", "A file path or file URI.").Required().StringVar(&document)
		command.Arg("line", "The zero-based line.").Required().IntVar(&line)
		command.Arg("character", "The zero-based character.").Required().IntVar(&character)
		command.Flag("json", "Print results as newline-delimited JSON.").Default("false").BoolVar(&jsonOutput)
	}

	serveCommand.Flag("watch", "Reload the index when it changes.").Envar("LSIF_QUERY_WATCH").Default("false").BoolVar(&watchDump)
}

// parseArgs parses the command line and fills unset flags from the config file. It
// returns the name of the selected command.
func parseArgs(args []string) (string, error) {
	command, err := app.Parse(args)
	if err != nil {
		return "", err
	}

	if configFile == "" {
		if path, ok := config.Find(firstNonEmpty(rootDir, toplevel(), wd())); ok {
			configFile = path
		}
	}
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return "", err
		}

		dumpFile = firstNonEmpty(dumpFile, cfg.Dump)
		rootDir = firstNonEmpty(rootDir, cfg.Root)
		serverCommand = firstNonEmpty(serverCommand, cfg.Server)
		watchDump = watchDump || cfg.Watch
	}

	if dumpFile, err = filepath.Abs(firstNonEmpty(dumpFile, "dump.lsif")); err != nil {
		return "", errors.Wrap(err, "get abspath of dump")
	}

	if rootDir == "" {
		rootDir = firstNonEmpty(toplevel(), filepath.Dir(dumpFile))
	}
	if rootDir, err = filepath.Abs(rootDir); err != nil {
		return "", errors.Wrap(err, "get abspath of root")
	}

	return command, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}

var verbosityLevels = map[int]output.Verbosity{
	0: output.DefaultOutput,
	1: output.VerboseOutput,
	2: output.VeryVerboseOutput,
}

func getVerbosity() output.Verbosity {
	if noOutput {
		return output.NoOutput
	}

	if verbosity >= len(verbosityLevels) {
		verbosity = len(verbosityLevels) - 1
	}

	return verbosityLevels[verbosity]
}

func isVerbose() bool {
	return getVerbosity() >= output.VerboseOutput
}

func outputOptions() output.Options {
	return output.Options{
		Verbosity:      getVerbosity(),
		ShowAnimations: !noAnimation && isTerminal(os.Stdout),
	}
}

// logLevel maps -v to Info and -vv to Debug.
func logLevel() log.Level {
	switch {
	case verbosity >= 2:
		return log.Debug
	case verbosity == 1:
		return log.Info
	default:
		return log.None
	}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
