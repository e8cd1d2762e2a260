package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"

	"github.com/stepreport/stepreport/apptests"
	"github.com/stepreport/stepreport/framework"
	"github.com/stepreport/stepreport/framework/allure"
	"github.com/stepreport/stepreport/framework/ldtest"
	"github.com/stepreport/stepreport/framework/report"
	"github.com/stepreport/stepreport/framework/resultserver"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	results, err := run(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !results.OK() {
		os.Exit(1)
	}
}

func run(params commandParams) (*ldtest.Results, error) {
	cfg := params.config
	if params.skipFile != "" {
		if err := loadSuppressions(&params); err != nil {
			return nil, err
		}
	}

	mainDebugLogger := framework.NullLogger()
	if cfg.DebugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	consoleLogger := ldtest.ConsoleTestLogger{
		DebugOutputOnFailure: cfg.Debug || cfg.DebugAll,
		DebugOutputOnSuccess: cfg.DebugAll,
		ShowSteps:            cfg.ShowSteps,
	}
	loggers := []ldtest.TestLogger{consoleLogger}
	if cfg.JUnitFile != "" {
		loggers = append(loggers, ldtest.NewJUnitTestLogger(cfg.JUnitFile, cfg.SuiteName, params.filters))
	}
	if cfg.AllureDir != "" {
		allureLogger, err := ldtest.NewAllureTestLogger(cfg.AllureDir)
		if err != nil {
			return nil, err
		}
		loggers = append(loggers, allureLogger)
	}
	var store *report.Store
	if cfg.ServePort != 0 {
		store = report.NewStore()
		loggers = append(loggers, ldtest.StoreTestLogger{Store: store})
		server, err := resultserver.Start(cfg.ServePort, resultserver.NewHandler(store, framework.LoggerWithPrefix(mainDebugLogger, "[resultserver] ")))
		if err != nil {
			return nil, err
		}
		defer func() { _ = server.Close() }()
		fmt.Printf("Serving results at http://localhost:%d/results\n", cfg.ServePort)
	}
	testLogger := &ldtest.MultiTestLogger{Loggers: loggers}

	results, err := apptests.RunAppTestSuite(
		apptests.SuiteConfig{
			AttachmentTitle: cfg.AttachmentTitle,
			LogLevel:        cfg.LogLevel,
			Labels:          []report.Label{{Name: "parentSuite", Value: cfg.SuiteName}},
		},
		params.filters,
		testLogger,
	)
	if err != nil {
		return nil, err
	}

	fmt.Println()
	if err := testLogger.EndLog(results); err != nil {
		return nil, fmt.Errorf("error writing log: %v", err)
	}

	if cfg.ArchiveFile != "" {
		mainDebugLogger.Printf("Writing %s", cfg.ArchiveFile)
		if err := allure.WriteArchiveFile(cfg.AllureDir, cfg.ArchiveFile); err != nil {
			return nil, fmt.Errorf("cannot write results archive: %v", err)
		}
	}

	if cfg.RecordFailures != "" {
		f, err := os.Create(cfg.RecordFailures)
		if err != nil {
			return nil, fmt.Errorf("cannot create suppression file: %v", err)
		}
		for _, test := range results.Failures {
			fmt.Fprintln(f, test.TestID)
		}
		_ = f.Close()
	}

	if store != nil {
		fmt.Println("Press Ctrl-C to stop serving results")
		waitForInterrupt()
	}

	return &results, nil
}

func waitForInterrupt() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	signal.Stop(sig)
}

func loadSuppressions(params *commandParams) error {
	file, err := os.Open(params.skipFile)
	if err != nil {
		return fmt.Errorf("cannot open provided suppression file: %v", err)
	}
	defer func() { _ = file.Close() }()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		// Ignore blank lines
		if strings.TrimSpace(line) == "" {
			continue
		}
		escaped := regexp.QuoteMeta(line)
		if err := params.filters.MustNotMatch.Set(escaped); err != nil {
			return fmt.Errorf("cannot parse suppression: %v", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("while processing suppression file: %v", err)
	}
	return nil
}
