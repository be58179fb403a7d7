package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/urfave/cli/v2"

	"wardrobe101/internal/adapter/marketplace"
	"wardrobe101/internal/domain/entity"
	"wardrobe101/internal/infrastructure/session"
	"wardrobe101/internal/infrastructure/websocket"
	"wardrobe101/internal/usecase"
	"wardrobe101/pkg/config"
	"wardrobe101/pkg/logger"
)

// app is the client side wiring shared by every command.
type app struct {
	cfg      *config.Config
	out      io.Writer
	api      *marketplace.Client
	sessions *usecase.SessionManager
	catalog  *usecase.CatalogUseCase
}

func newApp(c *cli.Context, out io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if url := c.String("api"); url != "" {
		cfg.MarketplaceURL = url
	}

	api := marketplace.NewClient(cfg.MarketplaceURL, cfg.HTTPTimeout)

	var fallback usecase.FallbackStrategy = usecase.NoFallback{}
	if cfg.IsDevelopment() {
		fallback = usecase.NewDevSeedStrategy(api, cfg.DevSeedUsername, cfg.DevSeedPassword)
	}
	sessions := usecase.NewSessionManager(api, session.NewFileStore(cfg.ClientStateFile), fallback)
	if _, err := sessions.Restore(); err != nil {
		logger.Warn("Could not restore session: %v", err)
	}

	return &app{
		cfg:      cfg,
		out:      out,
		api:      api,
		sessions: sessions,
		catalog:  usecase.NewCatalogUseCase(api),
	}, nil
}

func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// dialChat connects to the chat hub as the current session. Chat stays local on failure.
func (a *app) dialChat(ctx context.Context) (*websocket.ChatClient, error) {
	sess, err := a.sessions.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return websocket.Dial(ctx, a.cfg.ChatURL, sess.Token)
}

// terminalNavigator turns the delayed post-submit navigation into a signal the
// command can wait on.
type terminalNavigator struct {
	once sync.Once
	done chan string
}

func newTerminalNavigator() *terminalNavigator {
	return &terminalNavigator{done: make(chan string, 1)}
}

func (n *terminalNavigator) ShowListingOverview(sellerID string) {
	n.once.Do(func() { n.done <- sellerID })
}

func (n *terminalNavigator) wait(timeout time.Duration) (string, bool) {
	select {
	case id := <-n.done:
		return id, true
	case <-time.After(timeout):
		return "", false
	}
}

type terminalObserver struct {
	out io.Writer
}

func (o terminalObserver) ListingSubmitted(item *entity.Item) {
	fmt.Fprintf(o.out, "Listing submitted! %q is now %s and awaiting verification.\n", item.Title, item.Status)
}
