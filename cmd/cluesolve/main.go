// Copyright 2025 The cluesolve Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the cryptic crossword clue solver server and CLI.

cluesolve proposes ranked answers for cryptic clues. Each clue is split into
a definition and a wordplay part; wordplay engines (anagram, run, double
definition, charade, initial and final letters) propose candidates that are
then weighed against the definition with WordNet relatedness.

# Usage

Start the msgpack IPC server with default settings:

	cluesolve

Solve clues interactively, with debug logs:

	cluesolve -c -d

Solve a single clue and exit:

	cluesolve "Zoroastrian pairs dancing. | cat=anagram"

Rebuild the word list from its source lists, or only the wordplay
dictionaries compiled from it:

	cluesolve -rebuild-wordlist
	cluesolve -rebuild-wordplay

# Data

The data directory holds the word list (wordlist.txt), the Open English
WordNet JSON export (senses.json), an optional abbreviation table and
keyword overrides, and the source lists under categorised/ and complete/.
Compiled msgpack artifacts are cached under cache/ and rebuilt whenever
they are missing or were compiled from a different word list.

# Configuration

Runtime configuration lives in a TOML file created with defaults when
missing:

	[solver]
	synonym_search_depth = 1
	charade_synonym_depth = 2
	definition_max_len = 3

	[dict]
	data_dir = "data/"

	[server]
	max_limit = 50
	solve_timeout_ms = 30000

# IPC Protocol

See package server for the message shapes.

	{"id": "req1", "action": "solve", "clue": "Guide graphite"}
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bastiangx/cluesolve/internal/cli"
	"github.com/bastiangx/cluesolve/internal/utils"
	"github.com/bastiangx/cluesolve/pkg/config"
	"github.com/bastiangx/cluesolve/pkg/dictionary"
	"github.com/bastiangx/cluesolve/pkg/server"
	"github.com/bastiangx/cluesolve/pkg/solver"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "cluesolve"
	gh      = "https://github.com/bastiangx/cluesolve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only wires packages together and manages the flow.
func main() {
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configFile := flag.String("config", "", "Path to a config.toml")
	dataDir := flag.String("data", "", "Directory containing the dictionary files (default from config)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run the interactive CLI")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of solutions to print in CLI mode")
	depth := flag.Int("depth", 0, "Synonym search depth (default from config)")
	rebuildWordList := flag.Bool("rebuild-wordlist", false, "Rebuild the word list and every dictionary compiled from it, then exit")
	rebuildWordplay := flag.Bool("rebuild-wordplay", false, "Rebuild the anagram and run dictionaries, then exit")
	save := flag.Bool("save", false, "Save -depth to the config file")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	customConfig := *configFile
	if customConfig == "" {
		if p, err := pathResolver.GetConfigPath("config.toml"); err == nil && utils.FileExists(p) {
			customConfig = p
		}
	}
	appConfig, configPath, err := config.LoadConfigWithPriority(customConfig)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(configPath))

	if *depth > 0 {
		appConfig.Solver.SynonymSearchDepth = *depth
	}
	if *save && configPath != "" {
		if err := appConfig.Update(configPath, depth, nil); err != nil {
			log.Errorf("Failed to save config: %v", err)
		}
	}
	appConfig.CLI.DefaultLimit = *limit

	requested := appConfig.Dict.DataDir
	if *dataDir != "" {
		requested = *dataDir
	}
	resolvedDataDir, err := pathResolver.GetDataDir(requested)
	if err != nil {
		log.Fatalf("Failed to resolve data dir:(%v)", err)
	}
	appConfig.Dict.DataDir = resolvedDataDir
	log.Debugf("Using data dir at: %s", resolvedDataDir)

	store := dictionary.NewStore(appConfig.Dict)
	ctx := context.Background()

	if *rebuildWordList || *rebuildWordplay {
		sigHandler()
		if err := rebuild(ctx, store, appConfig.Solver, *rebuildWordList); err != nil {
			log.Fatalf("Rebuild failed: %v", err)
		}
		return
	}

	slv, err := solver.Load(ctx, store, appConfig.Solver)
	if err != nil {
		log.Fatalf("Failed to load dictionaries: %v", err)
	}

	if *cliMode || flag.NArg() > 0 {
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(slv, appConfig.CLI)
		if flag.NArg() > 0 {
			clue := strings.Join(flag.Args(), " ")
			handler = cli.NewInputHandlerWithIO(slv, appConfig.CLI, strings.NewReader(clue+"\n"), os.Stdout)
		}
		if err := handler.Start(ctx); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	sigHandler()
	log.Debug("spawning IPC")
	srv := server.NewServer(slv, appConfig.Server)
	showStartupInfo(resolvedDataDir, slv.Stats())

	if err := srv.Start(ctx); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// rebuild runs the requested maintenance and reports what it produced.
func rebuild(ctx context.Context, store *dictionary.Store, cfg config.SolverConfig, wordList bool) error {
	if wordList {
		// loading afterwards recompiles the now stale wordplay artifacts
		if _, err := store.RebuildWordList(); err != nil {
			return err
		}
	}
	slv, err := solver.Load(ctx, store, cfg)
	if err != nil {
		return err
	}
	if !wordList {
		if err := slv.RebuildWordplayDictionaries(ctx); err != nil {
			return err
		}
	}
	stats := slv.Stats()
	fmt.Fprintf(os.Stderr, "rebuilt: %d words, %d anagram keys, %d run words\n",
		stats.Words, stats.AnagramKeys, stats.RunWords)
	return nil
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ " + AppName + " ] Cryptic crossword clue solver")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dataDir string, stats solver.Stats) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, " "+AppName+" ")
	fmt.Fprintln(os.Stderr, "===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("data dir: ( %s )", dataDir)
	log.Infof("words: %d, synsets: %d", stats.Words, stats.Synsets)
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
