package commands

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/deepfinance-dev/deepfinance/internal/accounts"
	"github.com/deepfinance-dev/deepfinance/internal/analytics"
	"github.com/deepfinance-dev/deepfinance/internal/config"
	"github.com/deepfinance-dev/deepfinance/internal/store"
	"github.com/deepfinance-dev/deepfinance/internal/trend"
)

func newReportCommand() *cobra.Command {
	var configPath string
	var months int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a financial summary to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			data, err := store.New(cfg.Data.Dir).LoadAll()
			if err != nil {
				return fmt.Errorf("loading data: %w", err)
			}

			return runReport(cmd.OutOrStdout(), data, months, time.Now())
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "deepfinance.yaml", "path to config file")
	cmd.Flags().IntVar(&months, "months", 6, "months of history to show")

	return cmd
}

func runReport(w io.Writer, data store.Data, months int, now time.Time) error {
	summary := accounts.Summarize(data.CardBalances, data.CashBalances,
		data.InvestmentBalances, data.Transactions, now)

	fmt.Fprintf(w, "Net worth:       $%s\n", summary.NetWorth.StringFixed(2))
	fmt.Fprintf(w, "Cash:            $%s\n", summary.CashBalance.StringFixed(2))
	fmt.Fprintf(w, "Investments:     $%s\n", summary.InvestmentBalance.StringFixed(2))
	fmt.Fprintf(w, "Card debt:       $%s\n", summary.CreditCardDebt.StringFixed(2))
	fmt.Fprintf(w, "Month spending:  $%s\n", summary.MonthSpending.StringFixed(2))

	buckets := analytics.LastN(analytics.MonthlyIncomeSpending(data.Transactions), months)
	if len(buckets) > 0 {
		fmt.Fprintf(w, "\n%-8s  %12s  %12s  %12s\n", "Month", "Income", "Spending", "Net")
		for _, b := range buckets {
			fmt.Fprintf(w, "%-8s  %12s  %12s  %12s\n",
				b.Month, b.Income.StringFixed(2), b.Spending.StringFixed(2),
				b.Income.Sub(b.Spending).StringFixed(2))
		}
	}

	rng := rand.New(rand.NewSource(now.UnixNano()))
	if insights, ok := trend.Predict(data.Transactions, now, rng); ok {
		fmt.Fprintln(w, "\nInsights:")
		for _, in := range insights.Insights {
			fmt.Fprintf(w, "  [%s] %s\n", in.Severity, in.Message)
		}
	}

	return nil
}
