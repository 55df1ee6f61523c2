package cli

import (
	"bufio"
	"context"
	"io"

	"github.com/samber/oops"

	"github.com/dmitrijs2005/lostfound/internal/auth/form"
	"github.com/dmitrijs2005/lostfound/internal/catalog"
	"github.com/dmitrijs2005/lostfound/internal/client/config"
	"github.com/dmitrijs2005/lostfound/internal/client/services"
	"github.com/dmitrijs2005/lostfound/internal/client/session"
	"github.com/dmitrijs2005/lostfound/internal/common"
	"github.com/dmitrijs2005/lostfound/internal/eventloop"
	"github.com/dmitrijs2005/lostfound/internal/flow"
	"github.com/dmitrijs2005/lostfound/internal/logging"
	"github.com/dmitrijs2005/lostfound/internal/notify"
)

// App is the interactive client.
type App struct {
	config *config.Config
	logger logging.Logger

	loop     *eventloop.Loop
	center   *notify.Center
	flow     *flow.Flow
	login    *form.Controller
	register *form.Controller
	store    *session.Store
	listing  *catalog.Listing

	reader *bufio.Reader
	out    io.Writer

	nav      chan flow.Destination
	failures chan error
	page     flow.Destination
}

// NewApp opens the session store and wires the flow. The caller must Close
// the App.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	w := &syncWriter{w: out}

	store, err := session.Open(ctx, c.StorePath)
	if err != nil {
		logging.LogError(ctx, logger, "error initializing database", err)
		return nil, err
	}

	source, err := catalogSource(c)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	loop := eventloop.New(nil)
	center := notify.NewCenter(loop, notificationLine{w: w},
		notify.WithLogger(logger),
		notify.WithDefaultDuration(c.NotificationDuration),
		notify.WithFade(c.NotificationFade),
		notify.WithAppearDelay(c.NotificationAppear),
	)

	tokens, err := services.NewTokenIssuer(common.GenerateRandByteArray(32), c.TokenTTL, loop.Now)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	auth := services.NewSimulatedAuthenticator(loop, c.AuthDelay, tokens,
		services.Profile{Name: c.DemoUserName, Avatar: c.DemoAvatar}, logger)

	a := &App{
		config:   c,
		logger:   logger,
		loop:     loop,
		center:   center,
		store:    store,
		listing:  catalog.NewListing(source, listingPrinter{w: w}, logger),
		reader:   bufio.NewReader(in),
		out:      w,
		nav:      make(chan flow.Destination, 1),
		failures: make(chan error, 1),
		page:     flow.DestinationLogin,
	}

	a.flow, err = flow.New(loop, center, auth,
		flow.WithNavigator(navigator{ch: a.nav}),
		flow.WithSessionStore(store),
		flow.WithStrengthDisplay(strengthBar{w: w}),
		flow.WithTiming(flow.Timing{
			LoginRedirect:    c.LoginRedirectDelay,
			RegisterRedirect: c.RegisterRedirectDelay,
			SocialConnect:    c.SocialConnectDelay,
			SocialRedirect:   c.SocialRedirectDelay,
		}),
		flow.WithLogger(logger),
		flow.WithClock(loop.Now),
	)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	view := formView{w: w, failed: a.failures}
	if a.login, err = a.flow.Form(form.LoginLayout()); err != nil {
		_ = store.Close()
		return nil, err
	}
	a.login.OnChange(view.render)
	if a.register, err = a.flow.Form(form.FullRegisterLayout()); err != nil {
		_ = store.Close()
		return nil, err
	}
	a.register.OnChange(view.render)

	return a, nil
}

func catalogSource(c *config.Config) (catalog.Source, error) {
	if c.CatalogFile == "" {
		return catalog.Builtin(), nil
	}
	src, err := catalog.LoadFile(c.CatalogFile)
	if err != nil {
		return nil, oops.With("catalog_file", c.CatalogFile).Wrap(err)
	}
	return src, nil
}

// Close releases the session store.
func (a *App) Close() error {
	return a.store.Close()
}

// Run starts the event loop and the REPL, and blocks until the user exits
// or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		_ = a.loop.Run(ctx)
	}()

	a.println("Welcome to lostfound (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)

	cancel()
	<-loopDone
	return nil
}
