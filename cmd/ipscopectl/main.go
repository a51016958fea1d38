package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ipscope/internal/client/cli"
	"ipscope/internal/client/geo"
	"ipscope/internal/client/session"
)

const defaultServerURL = "http://localhost:8000"

func main() {
	serverURL := flag.String("server", envOr("IPSCOPE_SERVER_URL", defaultServerURL), "ipscope API server base URL")
	geoURL := flag.String("geo", envOr("IPSCOPE_GEO_URL", geo.DefaultBaseURL), "geolocation API base URL")
	stateDir := flag.String("state-dir", os.Getenv("IPSCOPE_STATE_DIR"), "directory for session and history state")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	dir := *stateDir
	if dir == "" {
		resolved, err := session.DefaultDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		dir = resolved
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(cli.Config{
		ServerURL: *serverURL,
		GeoURL:    *geoURL,
		StateDir:  dir,
	}, os.Stdin, os.Stdout)

	if err := app.Run(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: ipscopectl [flags] <command> [args]

Commands:
  login [email password]   log in to the ipscope server
  logout                   discard the stored session
  whoami                   show the stored profile
  lookup [ip]              look up an IPv4 address, or your own when omitted
  history                  show past searches, newest first
  clear-history            empty the search history

Flags:
`)
	flag.PrintDefaults()
}
