// Command krakenws is a thin demo CLI over the krakenmd client: connect to
// the exchange's public WebSocket feed and tab-write book and trade
// updates for a symbol. It exists to exercise the client library
// end-to-end, not as a trading tool.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
