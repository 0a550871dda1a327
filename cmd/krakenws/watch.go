package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mselser95/krakenmd"
	"github.com/mselser95/krakenmd/internal/wsconn"
	"github.com/mselser95/krakenmd/pkg/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var watchCmd = &cobra.Command{
	Use:   "watch <symbol>",
	Short: "Watch book and trade updates for a symbol",
	Long: `Connects to the exchange's WebSocket feed and prints real-time book and
trade updates for a symbol.

Example:
  krakenws watch BTC/USD`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolP("json", "j", false, "print raw update payloads as JSON")
	watchCmd.Flags().IntP("depth", "d", 10, "book channel depth (10/25/100/500/1000)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	symbol := args[0]

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger, err := config.NewLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	url, _ := cmd.Flags().GetString("url")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	depth, _ := cmd.Flags().GetInt("depth")

	client, err := krakenmd.New(krakenmd.Config{
		URL:             url,
		DialTimeout:     10 * time.Second,
		ReconnectPolicy: wsconn.DefaultPolicy(),
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("build client: %w", err)
	}

	if err := client.Connect(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer client.Disconnect()

	bookSub, err := client.SubscribeBook(symbol, depth)
	if err != nil {
		return fmt.Errorf("subscribe book: %w", err)
	}
	tradeSub, err := client.SubscribeTrades(symbol)
	if err != nil {
		return fmt.Errorf("subscribe trade: %w", err)
	}

	fmt.Printf("Watching %s (depth=%d). Press Ctrl+C to stop.\n\n", symbol, depth)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	for {
		select {
		case <-sigChan:
			fmt.Println("\nShutting down...")
			return nil
		case delta, ok := <-bookSub.Items():
			if !ok {
				return fmt.Errorf("book stream closed")
			}
			printUpdate(w, jsonOutput, "book", delta)
		case trade, ok := <-tradeSub.Items():
			if !ok {
				return fmt.Errorf("trade stream closed")
			}
			printUpdate(w, jsonOutput, "trade", trade)
		}
	}
}

func printUpdate(w *tabwriter.Writer, jsonOutput bool, kind string, v interface{}) {
	if jsonOutput {
		b, _ := json.Marshal(v)
		fmt.Println(string(b))
		return
	}

	ts := time.Now().Format("15:04:05")
	fmt.Fprintf(w, "[%s] %s\t%+v\n", ts, kind, v)
	w.Flush()
}
