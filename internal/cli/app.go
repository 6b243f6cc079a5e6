package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/apetrenko/jobport/internal/api"
	"github.com/apetrenko/jobport/internal/config"
	"github.com/apetrenko/jobport/internal/logging"
	"github.com/apetrenko/jobport/internal/services"
	"github.com/apetrenko/jobport/internal/session"

	_ "modernc.org/sqlite"
)

// App ties the session store, the API client, and the client-side services
// together behind the REPL.
type App struct {
	config *config.Config
	log    logging.Logger
	store  *session.SQLiteStore
	client api.Client
	auth   *services.AuthManager
	jobs   *services.JobDirectory
	apps   *services.ApplicationLedger
	reader *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	store, err := session.Open(ctx, c.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	// The HTTP client needs the current bearer token and the auth manager
	// needs the HTTP client; the closure breaks the cycle.
	var auth *services.AuthManager
	client := api.NewHTTPClient(c.APIBaseURL, c.UploadBaseURL, c.RequestTimeout, func() string {
		if auth == nil {
			return ""
		}
		return auth.Token()
	})

	auth = services.NewAuthManager(client, store, log)
	jobs := services.NewJobDirectory(client, auth, log)
	apps := services.NewApplicationLedger(client, auth, log)

	return &App{
		config: c,
		log:    log,
		store:  store,
		client: client,
		auth:   auth,
		jobs:   jobs,
		apps:   apps,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores the persisted session, does the initial fetches, wires the
// auth-driven refresh, and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.store.Close()

	a.auth.Restore(ctx)
	if err := a.jobs.Reload(ctx); err != nil {
		a.log.Warn(ctx, "initial job fetch aborted", "error", err)
	}
	if err := a.apps.Reload(ctx); err != nil {
		a.log.Warn(ctx, "initial application fetch failed", "error", err)
	}
	// Subscriptions are wired after the initial fetches so the restore
	// above does not trigger a second round.
	services.WireRefresh(ctx, a.auth, a.jobs, a.apps, a.log)

	printlnFn("Welcome to jobport CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.auth.State().IsAuthenticated
}

func (a *App) getStatus() string {
	s := ""
	if st := a.auth.State(); st.User != nil {
		s = fmt.Sprintf("%s %s", st.User.Email, st.User.Role)
	}
	if a.jobs.UsingFallback() {
		if s != "" {
			s += " "
		}
		s += "demo data"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
