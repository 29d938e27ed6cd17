package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/spendtrack-dev/spendtrack/internal/ledger"
	"github.com/spendtrack-dev/spendtrack/internal/model"
)

func newReportCommand(dir *string) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Spending reports",
	}
	cmd.PersistentFlags().StringVar(&username, "user", "", "account username (required)")
	_ = cmd.MarkPersistentFlagRequired("user")

	cmd.AddCommand(newReportTotalCommand(dir, &username))
	cmd.AddCommand(newReportAverageCommand(dir, &username))
	cmd.AddCommand(newReportMonthCommand(dir, &username))
	cmd.AddCommand(newReportYearCommand(dir, &username))
	cmd.AddCommand(newReportAllTimeCommand(dir, &username))
	cmd.AddCommand(newReportMerchantsCommand(dir, &username))
	cmd.AddCommand(newReportByDayCommand(dir, &username))
	cmd.AddCommand(newReportByMonthCommand(dir, &username))
	cmd.AddCommand(newReportByYearCommand(dir, &username))
	cmd.AddCommand(newReportYearsCommand(dir, &username))

	return cmd
}

// reportContext opens the project and resolves the reporting user and
// their currency symbol.
type reportContext struct {
	app    *app
	user   *model.User
	symbol string
}

func openReport(dir, username string) (*reportContext, error) {
	a, err := openApp(dir)
	if err != nil {
		return nil, err
	}

	u, err := a.users.Lookup(username)
	if err != nil {
		a.close()
		return nil, err
	}
	symbol, err := a.users.CurrencySymbol(u)
	if err != nil {
		a.close()
		return nil, err
	}

	return &reportContext{app: a, user: u, symbol: symbol}, nil
}

func (r *reportContext) close() {
	r.app.close()
}

func (r *reportContext) amount(d decimal.Decimal) string {
	return r.symbol + d.StringFixed(2)
}

// printEmpty reports whether err is one of the empty-result failures,
// printing its message when it is. Empty results are ordinary outcomes
// for a reporting command, not program failures.
func printEmpty(err error) bool {
	var (
		noData  *ledger.NoDataFoundError
		noRange *ledger.NoTotalBetweenDatesError
		noTotal *ledger.NoTotalFoundError
	)
	switch {
	case errors.As(err, &noData), errors.As(err, &noRange), errors.As(err, &noTotal):
		fmt.Println(err.Error())
		return true
	}
	return false
}

func printBuckets(r *reportContext, buckets []ledger.Bucket) {
	for _, b := range buckets {
		fmt.Printf("%s\t%s\n", b.Label, r.amount(b.Total))
	}
}

// monthYearArgs parses a month name or number plus an optional year,
// defaulting to the current year.
func monthYearArgs(args []string) (time.Month, int, error) {
	month, err := ledger.ParseMonth(args[0])
	if err != nil {
		return 0, 0, err
	}
	year := time.Now().Year()
	if len(args) > 1 {
		if year, err = ledger.ParseYear(args[1]); err != nil {
			return 0, 0, err
		}
	}
	return month, year, nil
}

func newReportTotalCommand(dir, username *string) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "total",
		Short: "Total spent in a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openReport(*dir, *username)
			if err != nil {
				return err
			}
			defer r.close()

			total, err := r.app.ledger.TotalBetween(start, end, r.user.ID)
			if err != nil {
				if printEmpty(err) {
					return nil
				}
				return err
			}
			fmt.Printf("Total: %s\n", r.amount(total))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&end, "end", "", "end date, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newReportAverageCommand(dir, username *string) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "average",
		Short: "Average transaction amount in a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openReport(*dir, *username)
			if err != nil {
				return err
			}
			defer r.close()

			avg, err := r.app.ledger.AverageBetween(start, end, r.user.ID)
			if err != nil {
				if printEmpty(err) {
					return nil
				}
				return err
			}
			fmt.Printf("Average: %s\n", r.amount(avg))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&end, "end", "", "end date, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newReportMonthCommand(dir, username *string) *cobra.Command {
	return &cobra.Command{
		Use:   "month <month> [year]",
		Short: "Total spent in a month",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, year, err := monthYearArgs(args)
			if err != nil {
				return err
			}

			r, err := openReport(*dir, *username)
			if err != nil {
				return err
			}
			defer r.close()

			total, err := r.app.ledger.MonthlyTotal(month, year, r.user.ID)
			if err != nil {
				if printEmpty(err) {
					return nil
				}
				return err
			}
			fmt.Printf("%s %d: %s\n", month, year, r.amount(total))
			return nil
		},
	}
}

func newReportYearCommand(dir, username *string) *cobra.Command {
	return &cobra.Command{
		Use:   "year <year>",
		Short: "Total spent in a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := ledger.ParseYear(args[0])
			if err != nil {
				return err
			}

			r, err := openReport(*dir, *username)
			if err != nil {
				return err
			}
			defer r.close()

			total, err := r.app.ledger.YearlyTotal(year, r.user.ID)
			if err != nil {
				if printEmpty(err) {
					return nil
				}
				return err
			}
			fmt.Printf("%d: %s\n", year, r.amount(total))
			return nil
		},
	}
}

func newReportAllTimeCommand(dir, username *string) *cobra.Command {
	return &cobra.Command{
		Use:   "all-time",
		Short: "Total spent across all recorded years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openReport(*dir, *username)
			if err != nil {
				return err
			}
			defer r.close()

			total, err := r.app.ledger.AllTimeTotal(r.user.ID)
			if err != nil {
				if printEmpty(err) {
					return nil
				}
				return err
			}
			fmt.Printf("All time: %s\n", r.amount(total))
			return nil
		},
	}
}

func newReportMerchantsCommand(dir, username *string) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "merchants",
		Short: "Spending per merchant in a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openReport(*dir, *username)
			if err != nil {
				return err
			}
			defer r.close()

			buckets, err := r.app.ledger.MerchantTotals(start, end, r.user.ID)
			if err != nil {
				if printEmpty(err) {
					return nil
				}
				return err
			}
			printBuckets(r, buckets)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&end, "end", "", "end date, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newReportByDayCommand(dir, username *string) *cobra.Command {
	return &cobra.Command{
		Use:   "by-day <month> [year]",
		Short: "Daily spending within a month",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, year, err := monthYearArgs(args)
			if err != nil {
				return err
			}

			r, err := openReport(*dir, *username)
			if err != nil {
				return err
			}
			defer r.close()

			buckets, err := r.app.ledger.GroupByDay(month, year, r.user.ID)
			if err != nil {
				if printEmpty(err) {
					return nil
				}
				return err
			}
			printBuckets(r, buckets)
			return nil
		},
	}
}

func newReportByMonthCommand(dir, username *string) *cobra.Command {
	return &cobra.Command{
		Use:   "by-month <year>",
		Short: "Monthly spending within a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := ledger.ParseYear(args[0])
			if err != nil {
				return err
			}

			r, err := openReport(*dir, *username)
			if err != nil {
				return err
			}
			defer r.close()

			buckets, err := r.app.ledger.GroupByMonth(year, r.user.ID)
			if err != nil {
				if printEmpty(err) {
					return nil
				}
				return err
			}
			printBuckets(r, buckets)
			return nil
		},
	}
}

func newReportByYearCommand(dir, username *string) *cobra.Command {
	return &cobra.Command{
		Use:   "by-year",
		Short: "Spending per year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openReport(*dir, *username)
			if err != nil {
				return err
			}
			defer r.close()

			buckets, err := r.app.ledger.GroupByYear(r.user.ID)
			if err != nil {
				if printEmpty(err) {
					return nil
				}
				return err
			}
			printBuckets(r, buckets)
			return nil
		},
	}
}

func newReportYearsCommand(dir, username *string) *cobra.Command {
	return &cobra.Command{
		Use:   "years",
		Short: "Years with recorded transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openReport(*dir, *username)
			if err != nil {
				return err
			}
			defer r.close()

			years, err := r.app.ledger.DistinctYears(r.user.ID)
			if err != nil {
				return err
			}
			if len(years) == 0 {
				fmt.Println("No transactions recorded yet")
				return nil
			}
			for _, year := range years {
				fmt.Println(year)
			}
			return nil
		},
	}
}
