// Command atlas-local validates a deployment request document and either
// prints the engine command it translates to or runs it against the
// in-process engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// Parse command line flags
	fs := flag.NewFlagSet("atlas-local", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to config file")
	requestPath := fs.String("request", "-", "Path to deployment request (YAML or JSON), - for stdin")
	planOnly := fs.Bool("plan", false, "Print the translated engine command and exit")
	showVersion := fs.Bool("version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return ExitConfigError
	}

	// Handle version flag
	if *showVersion {
		fmt.Fprintf(stdout, "atlas-local %s (built %s)\n", Version, BuildTime)
		return ExitSuccess
	}

	// Load configuration
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return ExitConfigError
	}

	// Setup logger
	logger := SetupLogger(cfg, stderr)
	logger.Debug("starting atlas-local",
		"version", Version,
		"config", *configPath,
		"request", *requestPath,
	)

	runner := NewRunner(cfg, logger, stdout)

	req, err := runner.ReadRequest(*requestPath, stdin)
	if err != nil {
		return exitCode(logger, err)
	}

	ctx := context.Background()
	if *planOnly {
		err = runner.Plan(req)
	} else {
		err = runner.Apply(ctx, req)
	}
	if err != nil {
		return exitCode(logger, err)
	}

	return ExitSuccess
}
