package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mailsentry/email-threat-analyzer/internal/adapters/console"
	"github.com/mailsentry/email-threat-analyzer/internal/di"
)

var (
	configDir = flag.String("config", "config", "Directory holding config.yaml and the keyword/domain lists")
	inputFile = flag.String("file", "", "Analyze a single raw email file and exit (skips the interactive menu)")
)

func main() {
	flag.Parse()

	container, err := di.BuildContainer(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	err = container.Invoke(func(ui *console.Console, logger *zap.Logger) error {
		defer logger.Sync() //nolint:errcheck

		if *inputFile != "" {
			return ui.AnalyzeFile(*inputFile)
		}

		ui.Run()
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
