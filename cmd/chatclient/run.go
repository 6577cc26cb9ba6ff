package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/socialconnect/chat-client/internal/config"
	"github.com/socialconnect/chat-client/internal/connection"
	"github.com/socialconnect/chat-client/internal/logging"
	"github.com/socialconnect/chat-client/internal/page"
	"github.com/socialconnect/chat-client/internal/ui"
	"github.com/socialconnect/chat-client/internal/version"
)

const (
	quitCommand     = "/quit"
	shutdownTimeout = 5 * time.Second
	fetchBackoff    = 500 * time.Millisecond
)

var errInputClosed = errors.New("input closed")

func runChat(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	logger.Info("starting chat client",
		"version", version.Version,
		"commit", version.Commit,
		"page", cfg.Page.URL,
	)

	identity, endpoint, err := resolvePage(ctx, cfg, logger)
	if err != nil {
		return err
	}

	term := ui.NewTerminal(cmd.OutOrStdout(), cfg.UI.ColorEnabled(), cfg.UI.TimeFormat)
	view := ui.View{
		Container: ui.Identity(identity),
		Input:     term,
		Status:    term,
		Messages:  term,
	}

	mgr := connection.NewManager(managerConfig(cfg, endpoint), view, logger)
	if err := mgr.Start(ctx); err != nil {
		return fmt.Errorf("start connection manager: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		mgr.Stop(shutdownCtx)

		stats := mgr.Stats()
		logger.Info("chat client stopped",
			"state", stats.State,
			"connects", stats.Connects,
			"sent", stats.Sent,
			"rendered", stats.Rendered,
			"dropped", stats.Dropped,
		)
	}()

	lines := readLines(cmd.InOrStdin())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return submitLines(gctx, lines, term, mgr)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errInputClosed) {
		return err
	}
	return nil
}

// loadConfig reads the config file, applies command-line overrides and validates.
func loadConfig() (*config.ClientConfig, error) {
	cfg, err := config.LoadWithDefaults(flagConfig)
	if err != nil {
		return nil, err
	}

	if flagPageURL != "" {
		cfg.Page.URL = flagPageURL
	}
	if flagCookie != "" {
		cfg.Page.SessionCookie = flagCookie
	}
	if flagIdentity != "" {
		cfg.Page.UserEmail = flagIdentity
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// resolvePage returns the user identity and the chat endpoint. The chat page
// is only fetched when no identity is configured.
func resolvePage(ctx context.Context, cfg *config.ClientConfig, logger *slog.Logger) (string, string, error) {
	if cfg.Page.UserEmail != "" {
		endpoint, err := connection.EndpointURL(cfg.Page.URL, cfg.Connection.Path)
		if err != nil {
			return "", "", err
		}
		return cfg.Page.UserEmail, endpoint, nil
	}

	pc := page.NewClient(cfg.Page.SessionCookie,
		page.WithLogger(logger),
		page.WithTimeout(cfg.Page.FetchTimeout),
		page.WithRetries(cfg.Page.FetchRetries, fetchBackoff),
	)
	p, err := pc.Discover(ctx, cfg.Page.URL, cfg.Connection.Path)
	if err != nil {
		return "", "", err
	}
	return p.Identity, p.Endpoint, nil
}

// managerConfig maps the file configuration onto the connection package.
func managerConfig(cfg *config.ClientConfig, endpoint string) connection.ManagerConfig {
	c := cfg.Connection

	header := http.Header{}
	if cfg.Page.SessionCookie != "" {
		header.Set("Cookie", cfg.Page.SessionCookie)
	}
	if origin := originOf(cfg.Page.URL); origin != "" {
		header.Set("Origin", origin)
	}

	return connection.ManagerConfig{
		Client: connection.ClientConfig{
			URL:              endpoint,
			Header:           header,
			HandshakeTimeout: c.HandshakeTimeout,
			PingInterval:     c.PingInterval,
			PingTimeout:      c.PingTimeout,
			WriteTimeout:     c.WriteTimeout,
			BufferSize:       c.BufferSize,
		},
		MaxAttempts:       c.MaxAttempts,
		Backoff:           connection.NewBackoff(c.RetryPolicy, c.BaseDelay, c.GrowthFactor, c.MaxDelay),
		StatusRevertDelay: cfg.UI.StatusRevertDelay,
	}
}

// originOf returns scheme://host of the page, as a browser would send it.
func originOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// readLines feeds stdin lines into a channel that is closed at EOF. The
// reader goroutine is left blocked on shutdown; stdin cannot be interrupted.
func readLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}

// submitLines places each line in the input and submits it.
func submitLines(ctx context.Context, lines <-chan string, input interface{ SetValue(string) }, mgr connection.Manager) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok || strings.TrimSpace(line) == quitCommand {
				return errInputClosed
			}
			input.SetValue(line)
			if err := mgr.Submit(ctx); err != nil {
				if errors.Is(err, connection.ErrStopped) || errors.Is(err, context.Canceled) {
					return nil
				}
				return fmt.Errorf("submit: %w", err)
			}
		}
	}
}
