package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/stepreport/stepreport/config"
	"github.com/stepreport/stepreport/framework/ldtest"
)

type commandParams struct {
	configFile string
	envFile    string
	skipFile   string
	filters    ldtest.RegexFilters
	config     config.Config
}

func (c *commandParams) Read(args []string) bool {
	var (
		debug          bool
		debugAll       bool
		showSteps      bool
		jUnitFile      string
		allureDir      string
		archiveFile    string
		servePort      int
		recordFailures string
		logLevel       string
	)
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.configFile, "config", "", "read settings from a JSON or YAML file")
	fs.StringVar(&c.envFile, "env-file", "", "load STEPREPORT_* environment variables from a .env file")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.StringVar(&c.skipFile, "skip-from", "", "file containing names of tests to skip, one per line")
	fs.BoolVar(&debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.BoolVar(&showSteps, "show-steps", false, "print the steps of each test")
	fs.StringVar(&logLevel, "log-level", "", "lowest level of log output added to reports")
	fs.StringVar(&jUnitFile, "junit", "", "write JUnit XML output to the specified path")
	fs.StringVar(&allureDir, "allure-dir", "", "write Allure results to the specified directory")
	fs.StringVar(&archiveFile, "archive", "", "write a .tar.gz of the Allure results to the specified path")
	fs.IntVar(&servePort, "serve-port", 0, "serve results over HTTP on this port until interrupted")
	fs.StringVar(&recordFailures, "record-failures", "", "write the names of failed tests to the specified path")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}

	cfg, err := config.Load(c.configFile, c.envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug":
			cfg.Debug = debug
		case "debug-all":
			cfg.DebugAll = debugAll
		case "show-steps":
			cfg.ShowSteps = showSteps
		case "log-level":
			cfg.LogLevel = logLevel
		case "junit":
			cfg.JUnitFile = jUnitFile
		case "allure-dir":
			cfg.AllureDir = allureDir
		case "archive":
			cfg.ArchiveFile = archiveFile
		case "serve-port":
			cfg.ServePort = servePort
		case "record-failures":
			cfg.RecordFailures = recordFailures
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	for _, p := range cfg.Run {
		if err := c.filters.MustMatch.Set(p); err != nil {
			fmt.Fprintf(os.Stderr, "invalid run pattern in configuration: %s\n", err)
			return false
		}
	}
	for _, p := range cfg.Skip {
		if err := c.filters.MustNotMatch.Set(p); err != nil {
			fmt.Fprintf(os.Stderr, "invalid skip pattern in configuration: %s\n", err)
			return false
		}
	}
	c.config = cfg
	return true
}
