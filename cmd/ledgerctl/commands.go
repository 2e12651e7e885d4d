package main

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"ledgerbook/internal/middleware"
	"ledgerbook/internal/period"
	"ledgerbook/internal/seed"
)

const dateFormat = "2006-01-02"

func newSeedCmd(app *cli) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create missing accounts from a chart of accounts",
		Long:  "Create every account of the chart that does not exist yet. Existing accounts are left untouched.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			chart, err := seed.Default()
			if file != "" {
				chart, err = seed.LoadFile(file)
			}
			if err != nil {
				return err
			}
			db, err := app.database()
			if err != nil {
				return err
			}
			created, err := seed.Apply(db, chart)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d of %d accounts\n", created, len(chart.Accounts))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML chart of accounts (defaults to the built-in chart)")
	return cmd
}

func newCashBookCmd(app *cli) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "cashbook <book>",
		Short: "Print one month of a cash book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ym, err := monthFlag(month, app.now())
			if err != nil {
				return err
			}
			svc, err := app.services()
			if err != nil {
				return err
			}
			book, ok := svc.Reports.CashBooks[args[0]]
			if !ok {
				keys := make([]string, 0, len(svc.Reports.CashBooks))
				for key := range svc.Reports.CashBooks {
					keys = append(keys, key)
				}
				sort.Strings(keys)
				return fmt.Errorf("unknown cash book %q (configured: %v)", args[0], keys)
			}
			report, err := book.MonthlyBalance(ym.Year, ym.Month)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", report.AccountName, ym)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "DATE\tSUMMARY\tCOUNTER\tINCOME\tEXPENSE\tBALANCE\t")
			for _, row := range report.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
					row.Date.Format(dateFormat), row.Summary, row.CounterParty,
					amount(row.Income), amount(row.Expense), row.Balance.String())
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&month, "month", "m", "", "month as YYYY-MM (defaults to the current month)")
	return cmd
}

func newGeneralLedgerCmd(app *cli) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "general-ledger <account>",
		Short: "Print the running-balance ledger of one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ym *period.YearMonth
			if month != "" {
				parsed, err := period.ParseYearMonth(month)
				if err != nil {
					return err
				}
				ym = &parsed
			}
			svc, err := app.services()
			if err != nil {
				return err
			}
			ledger, err := svc.Reports.GeneralLedger.GeneralLedger(args[0], ym)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "DATE\tSUMMARY\tCOUNTER\tDEBIT\tCREDIT\tBALANCE\t")
			for _, row := range ledger.Rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
					row.Date.Format(dateFormat), row.Summary, row.CounterParty,
					amount(row.DebitAmount), amount(row.CreditAmount), row.RunningBalance.String())
			}
			fmt.Fprintf(w, "\tTOTAL\t\t%s\t%s\t%s\t\n",
				ledger.DebitTotal.String(), ledger.CreditTotal.String(), ledger.EndingBalance.String())
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&month, "month", "m", "", "limit to one month (YYYY-MM)")
	return cmd
}

func newTrialBalanceCmd(app *cli) *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Print the trial balance of a fiscal year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if year == 0 {
				now := app.now()
				year = now.Year()
				if int(now.Month()) < app.cfg.FiscalStartMonth {
					year--
				}
			}
			svc, err := app.services()
			if err != nil {
				return err
			}
			tb, err := svc.Reports.Statements.TrialBalance(year)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Trial balance FY%d (%s to %s)\n", tb.Year,
				tb.Range.Start.Format(dateFormat), tb.Range.End.Format(dateFormat))
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "ACCOUNT\tTYPE\tDEBIT\tCREDIT\t")
			for _, line := range tb.Debits {
				fmt.Fprintf(w, "%s\t%s\t%s\t\t\n", line.AccountName, line.AccountType, line.Amount.String())
			}
			for _, line := range tb.Credits {
				fmt.Fprintf(w, "%s\t%s\t\t%s\t\n", line.AccountName, line.AccountType, line.Amount.String())
			}
			fmt.Fprintf(w, "TOTAL\t\t%s\t%s\t\n", tb.DebitTotal.String(), tb.CreditTotal.String())
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&year, "year", "y", 0, "fiscal year (defaults to the current one)")
	return cmd
}

func newDepreciationCmd(app *cli) *cobra.Command {
	var companyID, entryID string
	var record bool
	cmd := &cobra.Command{
		Use:   "depreciation <fiscal-period-id>",
		Short: "Print or record the straight-line depreciation of a fiscal period",
		Long: "Print the depreciation of every active asset for the period. With --record, " +
			"link the not yet recorded assets to the adjustment entry given by --entry.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var company *string
			if companyID != "" {
				company = &companyID
			}
			svc, err := app.services()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if record {
				if entryID == "" {
					return fmt.Errorf("--record requires --entry")
				}
				recorded, err := svc.Adjustment.RecordDepreciation(args[0], entryID, company)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "recorded depreciation for %d asset(s)\n", recorded)
				return nil
			}

			summary, err := svc.Adjustment.CalculateDepreciation(args[0], company)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "ASSET\tNAME\tCOST\tMONTHS\tCURRENT\tACCUMULATED\tBOOK VALUE\tRECORDED\t")
			for _, line := range summary.Assets {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%t\t\n",
					line.AssetNumber, line.AssetName, line.AcquisitionCost.String(),
					line.MonthsInPeriod, line.CurrentPeriodDepreciation.String(),
					line.AccumulatedWithCurrent.String(), line.BookValue.String(), line.AlreadyRecorded)
			}
			fmt.Fprintf(w, "TOTAL\t\t\t\t%s\t\t\t\t\n", summary.TotalDepreciation.String())
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&companyID, "company", "", "limit to one company")
	cmd.Flags().BoolVar(&record, "record", false, "record the depreciation instead of printing it")
	cmd.Flags().StringVar(&entryID, "entry", "", "adjustment entry that books the depreciation")
	return cmd
}

func newTokenCmd(app *cli) *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token <subject>",
		Short: "Issue an API bearer token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ttl == 0 {
				ttl = app.cfg.JWTExpirationDur
			}
			token, err := middleware.GenerateToken(args[0], []byte(app.cfg.JWTSecret), ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to JWT_EXPIRES_IN)")
	return cmd
}

func monthFlag(v string, now time.Time) (period.YearMonth, error) {
	if v == "" {
		return period.Of(now), nil
	}
	return period.ParseYearMonth(v)
}

// amount renders zero as an empty column.
func amount(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}
