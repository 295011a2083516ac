package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/usecase"
)

var (
	baseURL string
	timeout time.Duration
	retries uint64

	retryInterval = 100 * time.Millisecond
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gobank-cli",
		Short:         "GoBank CLI tool",
		Long:          `A command line interface for the GoBank API and an in-process demo bank.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoBank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().Uint64Var(&retries, "retries", 3, "Retries for failed API requests")

	rootCmd.AddCommand(capitalCmd(), ratesCmd(), tierCmd(), demoCmd())
	return rootCmd
}

func capitalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capital",
		Short: "Show the bank capital not reserved by devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.AmountResponse
			if err := getJSON("/api/v1/capital", &resp); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Amount.StringFixed(2))
			return nil
		},
	}
}

func ratesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "rates",
		Short: "List exchange rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rates []dto.RateResponse
			if err := getJSON("/api/v1/rates", &rates); err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), rates)
			}
			printRates(cmd.OutOrStdout(), rates)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON")
	return cmd
}

func tierCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tier <total-balance>",
		Short: "Show the benefit tier for a total balance in EUR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid balance %q: %w", args[0], err)
			}
			return printJSON(cmd.OutOrStdout(), dto.TierFromReport(usecase.NewTierReport(total)))
		},
	}
}

// getJSON fetches path from the API into out, retrying connection
// failures, 429 and 5xx responses with exponential backoff.
func getJSON(path string, out any) error {
	client := &http.Client{Timeout: timeout}
	url := strings.TrimRight(baseURL, "/") + path

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInterval
	b.MaxInterval = time.Second

	var body []byte
	operation := func() error {
		resp, err := client.Get(url)
		if err != nil {
			return fmt.Errorf("error making request: %w", err)
		}
		defer resp.Body.Close()

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("error reading response: %w", err)
		}

		if resp.StatusCode == http.StatusOK {
			return nil
		}
		err = statusError(resp.StatusCode, body)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return err
		}
		return backoff.Permanent(err)
	}

	if err := backoff.Retry(operation, backoff.WithMaxRetries(b, retries)); err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func statusError(status int, body []byte) error {
	var apiErr dto.ErrorResponse
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
		return fmt.Errorf("request failed (status: %d): %s %s", status, apiErr.Error, apiErr.Message)
	}
	return fmt.Errorf("request failed (status: %d): %s", status, truncate(string(body), 200))
}

func printRates(w io.Writer, rates []dto.RateResponse) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FROM\tTO\tRATE\tSTATUS")
	for _, r := range rates {
		status := "enabled"
		if r.Disabled {
			status = "disabled"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.From, r.To, r.Rate.String(), status)
	}
	tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
