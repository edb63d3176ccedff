/*
Package main implements the chemseek catalog search server and CLI.

Chemseek provides incremental product search over a research-chemical catalog:
prefix matching with similarity scoring, debounced lookup dispatch, per-session
result caching and tiered suggestion display. It can operate as a MessagePack
IPC server for integration with editor plugins and desktop frontends, as an
HTTP endpoint serving the catalog API, or as an interactive CLI for testing.

# Usage

Start the IPC server over the bundled catalog:

	chemseek -catalog data/catalog.toml

Serve the HTTP search endpoint:

	chemseek -http :8080

Run the interactive CLI against the remote endpoint configured as
[client] base_url:

	chemseek -c -remote

An explicit URL overrides the configured endpoint:

	chemseek -c -url http://localhost:8080

# Configuration

Runtime configuration is managed through a TOML file that supports search
component parameters, remote endpoint settings, and CLI defaults:

	[search]
	debounce_ms = 300
	max_limit = 24
	min_query = 1
	max_query = 60
	enable_filter = true

	[client]
	base_url = "http://localhost:8080"
	timeout_ms = 5000
	retries = 3
	min_similarity = 0.7

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Search requests
are processed synchronously with timing information included in responses.

Send a search request:

	{"id": "req1", "op": "search", "q": "asp", "l": 10}

Receive candidates with similarity tiers:

	{"id": "req1", "r": [{"n": "Aspirin", "s": 0.97, "t": "high"}], "c": 1, "t": 2}
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/veldt-labs/chemseek/internal/cli"
	"github.com/veldt-labs/chemseek/pkg/api"
	"github.com/veldt-labs/chemseek/pkg/catalog"
	"github.com/veldt-labs/chemseek/pkg/client"
	"github.com/veldt-labs/chemseek/pkg/config"
	"github.com/veldt-labs/chemseek/pkg/server"
)

const (
	Version = "0.3.0"
	AppName = "chemseek"
	gh      = "https://github.com/veldt-labs/chemseek"
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

// main wires config, backend and frontend together. The logic lives in the
// packages; main only manages the flow.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	catalogPath := flag.String("catalog", "data/catalog.toml", "Path to the TOML catalog file")
	configPath := flag.String("config", "", "Path to a custom config.toml")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run interactive CLI -- useful for testing and debugging")
	httpAddr := flag.String("http", "", "Serve the catalog HTTP API on this address (e.g. :8080)")
	remoteMode := flag.Bool("remote", false, "Use the remote endpoint from [client] base_url instead of the local catalog")
	remoteURL := flag.String("url", "", "Remote endpoint URL; overrides [client] base_url and implies -remote")
	limit := flag.Int("limit", defaults.CLI.DefaultLimit, "Number of suggestions to return")
	minQuery := flag.Int("qmin", defaults.Search.MinQuery, "Minimum query length for suggestions")
	maxQuery := flag.Int("qmax", defaults.Search.MaxQuery, "Maximum query length for suggestions")
	noFilter := flag.Bool("no-filter", false, "Disable input filtering (DBG only)")

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

	cfg, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Active config: %s", config.GetActiveConfigPath(activePath))

	endpoint := resolveEndpoint(*remoteMode, *remoteURL, cfg)
	if *httpAddr != "" && endpoint != "" {
		log.Fatal("HTTP mode serves the local catalog; drop the -remote flag")
	}
	searcher, detailer := buildBackend(cfg, endpoint, *catalogPath)

	switch {
	case *httpAddr != "":
		index := searcher.(*catalog.Index)
		serverConfig := api.DefaultServerConfig()
		serverConfig.Addr = *httpAddr
		if err := api.NewServer(index, serverConfig).Start(); err != nil {
			log.Fatalf("HTTP server: %v", err)
		}
	case *cliMode:
		debounce := time.Duration(cfg.Search.DebounceMs) * time.Millisecond
		handler := cli.NewInputHandler(searcher, detailer, *minQuery, *maxQuery, *limit, *noFilter, debounce)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI: %v", err)
		}
	default:
		if err := server.NewServer(searcher, detailer, cfg).Start(); err != nil {
			log.Fatalf("IPC server: %v", err)
		}
	}
}

// resolveEndpoint picks the remote search endpoint, or "" for the local
// catalog. An explicit -url wins over the configured [client] base_url.
func resolveEndpoint(remote bool, override string, cfg *config.Config) string {
	if override != "" {
		return override
	}
	if remote {
		return cfg.Client.BaseURL
	}
	return ""
}

// buildBackend picks the search backend: a remote endpoint client when
// requested, the local trie index otherwise.
func buildBackend(cfg *config.Config, remoteURL, catalogPath string) (catalog.Searcher, catalog.Detailer) {
	if remoteURL != "" {
		c := client.New(remoteURL,
			client.WithTimeout(time.Duration(cfg.Client.TimeoutMs)*time.Millisecond),
			client.WithAttempts(cfg.Client.Retries),
		)
		log.Debugf("Using remote search endpoint at %s", remoteURL)
		return c, c
	}

	products, err := catalog.LoadFile(catalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog from %s: %v", catalogPath, err)
	}
	index := catalog.BuildIndex(products)
	log.Debugf("Indexed %d products from %s", index.Len(), catalogPath)
	return index, index
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ chemseek ] Incremental catalog search!")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}
