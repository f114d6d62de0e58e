package cli

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/aGautrain/legeclair/internal/client/api"
	"github.com/aGautrain/legeclair/internal/client/config"
	"github.com/aGautrain/legeclair/internal/client/guard"
	"github.com/aGautrain/legeclair/internal/client/session"
	"github.com/aGautrain/legeclair/internal/client/storage"
	"github.com/aGautrain/legeclair/internal/client/store"
	"github.com/aGautrain/legeclair/internal/logging"

	_ "modernc.org/sqlite"
)

// App owns the client-side state: the session, the two collection stores,
// the route guard and the current path. The REPL dispatches onto it.
type App struct {
	config  *config.Config
	log     logging.Logger
	client  api.Client
	session *session.Store
	docs    *store.DocumentStore
	audits  *store.AuditStore
	guard   *guard.Guard
	reader  *bufio.Reader
	path    string
}

// NewApp wires storage, the API client and the stores from configuration.
// The durable medium lives in the configured SQLite file; the ephemeral one
// is process memory, so a session not marked "remember me" dies with the
// process.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewTextLogger(os.Stderr, c.LogLevel)

	durable, err := storage.OpenSQLite(ctx, c.StoragePath)
	if err != nil {
		log.Error(ctx, "failed to open session storage", "path", c.StoragePath, "error", err)
		return nil, err
	}
	ephemeral := storage.NewMemory()
	chain := storage.NewChain(durable, ephemeral)

	a := &App{
		config: c,
		log:    log,
		guard:  guard.New(),
		reader: bufio.NewReader(os.Stdin),
		path:   guard.LoginPath,
	}

	a.client = api.NewHTTPClient(c.APIBaseURL,
		api.WithLogger(log),
		api.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout}),
		api.WithTokenFunc(func(ctx context.Context) string {
			tok, err := chain.Get(ctx, storage.KeyToken)
			if err != nil || tok == nil {
				return ""
			}
			return string(tok)
		}),
		api.WithUnauthorizedHook(func(ctx context.Context) {
			a.session.Logout(ctx)
			a.path = guard.LoginPath
		}),
	)

	a.session = session.New(a.client, durable, ephemeral, log)
	a.docs = store.NewDocumentStore(a.client, log)
	a.audits = store.NewAuditStore(a.client, log)
	return a, nil
}

// Run restores any persisted session, routes to the matching view and
// blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.client.Close()

	a.session.Restore(ctx)
	if a.session.Authenticated() {
		a.path = guard.HomePath
		fmt.Printf("Welcome back, %s!\n", a.session.User().Username)
	}

	fmt.Println("LegeClair CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) isAuthenticated() bool {
	return a.session.Authenticated()
}

// status builds the prompt suffix: user name and current path.
func (a *App) status() string {
	if u := a.session.User(); u != nil {
		return fmt.Sprintf("(%s %s)", u.Username, a.path)
	}
	return fmt.Sprintf("(%s)", a.path)
}

// Go navigates to a path through the route guard. A denied navigation
// reports and follows the redirect instead.
func (a *App) Go(ctx context.Context, path string) error {
	d := a.guard.Check(path, a.session.Authenticated())
	if !d.Allow {
		printlnFn("Redirected to", d.RedirectTo)
		a.path = d.RedirectTo
		return nil
	}
	a.path = path
	return nil
}
