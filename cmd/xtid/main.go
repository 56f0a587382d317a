// Command xtid fetches X's current key material and prints transaction IDs,
// mainly for smoke-testing the extraction against the live site.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	xtid "github.com/anatolykoptev/go-xtid"
)

var (
	flagProxy  string
	flagMethod string
	flagPath   string
	flagCount  int
)

func newClient(ctx context.Context) (*xtid.Client, error) {
	fetcher, err := xtid.NewStealthFetcher(xtid.FetchConfig{Proxy: flagProxy})
	if err != nil {
		return nil, err
	}
	return xtid.Fetch(ctx, fetcher)
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	rootCmd := &cobra.Command{
		Use:           "xtid",
		Short:         "Generate x-client-transaction-id headers for X API requests",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&flagProxy, "proxy", "", "proxy URL for fetching x.com")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Fetch key material and print transaction IDs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}
			for range flagCount {
				id, err := client.GenerateTransactionID(flagMethod, flagPath)
				if err != nil {
					return err
				}
				fmt.Println(id)
			}
			return nil
		},
	}
	generateCmd.Flags().StringVarP(&flagMethod, "method", "X", "GET", "HTTP method of the target request")
	generateCmd.Flags().StringVarP(&flagPath, "path", "p", "/i/api/1.1/jot/client_event.json", "path of the target request")
	generateCmd.Flags().IntVarP(&flagCount, "count", "n", 1, "number of IDs to generate")

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Fetch key material and print what was extracted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}
			fmt.Println("ondemand bundle:", client.OndemandURL())

			id, err := client.GenerateTransactionID("GET", "/i/api/1.1/jot/client_event.json")
			if err != nil {
				return err
			}
			fmt.Println("sample id:", id)
			return nil
		},
	}

	rootCmd.AddCommand(generateCmd, inspectCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("xtid failed", slog.Any("error", err))
		os.Exit(1)
	}
}
