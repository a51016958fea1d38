// Package cli implements the ipscopectl commands over the client
// packages: session store, login API client, geo client, and history.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"ipscope/internal/client/api"
	"ipscope/internal/client/app"
	"ipscope/internal/client/geo"
	"ipscope/internal/client/session"
	"ipscope/internal/domain/entity"

	"github.com/pkg/errors"
)

// Config carries the endpoints and state directory resolved from
// flags and environment by the caller.
type Config struct {
	ServerURL string
	GeoURL    string
	StateDir  string
}

// App dispatches the CLI commands.
type App struct {
	cfg      Config
	sessions *session.Store
	login    *api.Client
	view     *app.App
	in       *bufio.Reader
	out      io.Writer
}

// NewApp wires the client stack for the given config.
func NewApp(cfg Config, in io.Reader, out io.Writer) *App {
	geoClient := geo.New(cfg.GeoURL, nil)
	history := geo.NewHistory(cfg.StateDir)

	return &App{
		cfg:      cfg,
		sessions: session.NewStore(cfg.StateDir),
		login:    api.New(cfg.ServerURL, nil),
		view:     app.New(geoClient, history),
		in:       bufio.NewReader(in),
		out:      out,
	}
}

// Run executes one command with its arguments.
func (a *App) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.runLogin(ctx, args)
	case "logout":
		return a.runLogout()
	case "whoami":
		return a.runWhoami()
	case "lookup":
		return a.requireAuth(func() error { return a.runLookup(ctx, args) })
	case "history":
		return a.requireAuth(a.runHistory)
	case "clear-history":
		return a.requireAuth(a.runClearHistory)
	default:
		return errors.Errorf("unknown command %q", command)
	}
}

// requireAuth is the route guard: an anonymous caller is sent to login
// instead of running the command.
func (a *App) requireAuth(run func() error) error {
	if a.sessions.State() != session.Authenticated {
		return errors.New("not logged in, run: ipscopectl login")
	}

	return run()
}

func (a *App) runLogin(ctx context.Context, args []string) error {
	if a.sessions.State() == session.Authenticated {
		current := a.sessions.Load()
		fmt.Fprintf(a.out, "Already logged in as %s. Run logout first.\n", current.User.Email)

		return nil
	}

	email, password, err := a.credentials(args)
	if err != nil {
		return err
	}

	sess, err := a.login.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := a.sessions.Save(sess); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", sess.User.Name, sess.User.Email)

	return nil
}

func (a *App) runLogout() error {
	if err := a.sessions.Clear(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Logged out.")

	return nil
}

func (a *App) runWhoami() error {
	sess := a.sessions.Load()
	if sess == nil {
		fmt.Fprintln(a.out, "anonymous")

		return nil
	}

	fmt.Fprintf(a.out, "%s <%s> (id %s)\n", sess.User.Name, sess.User.Email, sess.User.ID)

	return nil
}

func (a *App) runLookup(ctx context.Context, args []string) error {
	if len(args) == 0 {
		if err := a.view.Start(ctx); err != nil {
			return err
		}

		a.printRecord(a.view.Current())

		return nil
	}

	if err := a.view.Search(ctx, args[0]); err != nil {
		return err
	}

	a.printRecord(a.view.Current())

	return nil
}

func (a *App) runHistory() error {
	entries, err := a.view.History()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No searches yet.")

		return nil
	}

	for _, entry := range entries {
		fmt.Fprintf(a.out, "%s  %s  %s\n",
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.IP,
			joinNonEmpty(entry.City, entry.Region, entry.Country))
	}

	return nil
}

func (a *App) runClearHistory() error {
	if err := a.view.ClearHistory(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "History cleared.")

	return nil
}

// credentials takes email/password from args when given, otherwise
// prompts for them.
func (a *App) credentials(args []string) (string, string, error) {
	if len(args) >= 2 {
		return args[0], args[1], nil
	}

	email, err := a.prompt("Email")
	if err != nil {
		return "", "", err
	}

	password, err := a.prompt("Password")
	if err != nil {
		return "", "", err
	}

	return email, password, nil
}

func (a *App) prompt(label string) (string, error) {
	fmt.Fprintf(a.out, "%s: ", label)

	line, err := a.in.ReadString('\n')
	if err != nil {
		return "", errors.Wrap(err, "failed to read input")
	}

	return strings.TrimSpace(line), nil
}

func (a *App) printRecord(record *entity.GeoRecord) {
	if record == nil {
		return
	}

	fields := []struct {
		label string
		value string
	}{
		{"IP", record.IP},
		{"Hostname", record.Hostname},
		{"City", record.City},
		{"Region", record.Region},
		{"Country", record.Country},
		{"Location", record.Loc},
		{"Organization", record.Org},
		{"Postal", record.Postal},
		{"Timezone", record.Timezone},
	}

	for _, f := range fields {
		if f.value == "" {
			continue
		}
		fmt.Fprintf(a.out, "%-13s %s\n", f.label+":", f.value)
	}
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}

	return strings.Join(kept, ", ")
}
