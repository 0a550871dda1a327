package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "krakenws",
	Short: "Demo client for the exchange's v2 WebSocket market-data feed",
	Long: `krakenws is a thin demonstration of the krakenmd client library: it
connects to the exchange's public WebSocket feed, subscribes to the book
and trade channels for a symbol, and prints updates as they arrive.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is not an error; env vars and flags still work.
		_ = godotenv.Load()
		return nil
	},
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().String("url", "wss://ws.kraken.com/v2", "WebSocket endpoint to connect to")
}
