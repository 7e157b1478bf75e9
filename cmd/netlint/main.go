package main

import (
	"fmt"
	"os"

	"github.com/netlist-tools/netlint/internal/config"
	"github.com/netlist-tools/netlint/internal/lint"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]

	switch cmd {
	case "init":
		runInit()
	case "-v", "--verbose":
		if len(os.Args) < 3 {
			printUsage()
			os.Exit(1)
		}
		runLint(os.Args[2], true, false)
	case "--json":
		if len(os.Args) < 3 {
			printUsage()
			os.Exit(1)
		}
		runLint(os.Args[2], false, true)
	case "-h", "--help", "help":
		printUsage()
	case "-c", "--config":
		if len(os.Args) < 4 {
			printUsage()
			os.Exit(1)
		}
		runLintWithConfig(os.Args[2], os.Args[3])
	default:
		runLint(cmd, false, false)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: netlint [command] [options] <netlist.json>

Commands:
  init              Create a netlint.json configuration file
  <netlist.json>    Check the elaborated netlist for unused/undriven signals

Options:
  -v, --verbose     Trace every used/driven mark transition
  --json            Emit the structured result as JSON
  -c, --config      Specify config file: netlint -c config.json <netlist.json>
  -h, --help        Show this help message

Configuration:
  netlint looks for configuration in:
    1. ./netlint.json
    2. ./.netlint.json
    3. ~/.config/netlint/config.json

  Run 'netlint init' to create a default configuration file.`)
}

func runInit() {
	configPath := "netlint.json"

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config file %s already exists. Overwrite? [y/N]: ", configPath)
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return
		}
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created %s\n", configPath)
	fmt.Println("\nEdit this file to configure:")
	fmt.Println("  - Rule severities (unused, undriven)")
	fmt.Println("  - Signal name suppression patterns")
	fmt.Println("  - A custom severity policy directory")
}

func runLint(path string, verbose, jsonOutput bool) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Warning: Could not load config: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}

	runner := lint.NewWithConfig(cfg)
	runner.Verbose = runner.Verbose || verbose
	runner.JSONOutput = jsonOutput
	run(runner, path)
}

func runLintWithConfig(configPath, netlistPath string) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config %s: %v\n", configPath, err)
		os.Exit(1)
	}

	run(lint.NewWithConfig(cfg), netlistPath)
}

func run(runner *lint.Runner, path string) {
	result, err := runner.Run(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := runner.Report(os.Stdout, result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if result.HasErrors() {
		os.Exit(1)
	}
}
