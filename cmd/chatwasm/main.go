//go:build js && wasm

// Command chatwasm runs the chat client inside the chat page.
//
//	GOOS=js GOARCH=wasm go build -o static/wasm/chat.wasm ./cmd/chatwasm
package main

import (
	"context"
	"log/slog"
	"os"
	"syscall/js"

	"github.com/socialconnect/chat-client/internal/config"
	"github.com/socialconnect/chat-client/internal/connection"
	"github.com/socialconnect/chat-client/internal/ui/dom"
	"github.com/socialconnect/chat-client/internal/version"
)

func main() {
	// stdout is the browser console
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting chat client", "version", version.Version)

	cfg := config.Default()

	view, err := dom.Attach(js.Global().Get("document"), cfg.UI.TimeFormat)
	if err != nil {
		// Not a chat page
		logger.Info("chat client not attached", "reason", err)
		return
	}

	pageURL := js.Global().Get("location").Get("href").String()
	endpoint, err := connection.EndpointURL(pageURL, cfg.Connection.Path)
	if err != nil {
		logger.Error("failed to derive chat endpoint", "page", pageURL, "error", err)
		return
	}

	mcfg := connection.DefaultManagerConfig()
	mcfg.Client.URL = endpoint
	mcfg.MaxAttempts = cfg.Connection.MaxAttempts
	mcfg.StatusRevertDelay = cfg.UI.StatusRevertDelay
	mcfg.Backoff = connection.NewBackoff(
		cfg.Connection.RetryPolicy,
		cfg.Connection.BaseDelay,
		cfg.Connection.GrowthFactor,
		cfg.Connection.MaxDelay,
	)

	ctx := context.Background()
	mgr := connection.NewManager(mcfg, view.UIView(), logger, connection.WithDialer(dom.Dial))
	if err := mgr.Start(ctx); err != nil {
		logger.Error("failed to start connection manager", "error", err)
		return
	}

	view.OnSubmit(dom.SubmitHandler(ctx, mgr, logger))

	// Keep the module alive for the page's lifetime
	select {}
}
