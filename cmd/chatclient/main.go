package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/socialconnect/chat-client/internal/version"
)

var rootCmd = &cobra.Command{
	Use:          "chatclient",
	Short:        "Terminal client for the chat room of the social web application",
	Version:      version.String(),
	SilenceUsage: true,
	RunE:         runChat,
}

var (
	flagConfig   string
	flagPageURL  string
	flagCookie   string
	flagIdentity string
	flagLogLevel string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "path to YAML config file")
	flags.StringVar(&flagPageURL, "page", "", "chat page URL (overrides page.url)")
	flags.StringVar(&flagCookie, "cookie", "", "session Cookie header value (overrides page.session_cookie)")
	flags.StringVar(&flagIdentity, "identity", "", "user email; skips reading it from the chat page")
	flags.StringVar(&flagLogLevel, "log-level", "", "debug, info, warn or error (overrides log.level)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
