// backoffice is a small operator CLI for running statement exports and
// balance checks against the live database without going through the server.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/core"
	"backoffice/internal/db"
	"backoffice/internal/export"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	ownerFlag  string
	cutoffFlag string
	formatFlag string
	outFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "backoffice",
	Short: "Back-office operator tools: client statements and balances",
}

var statementCmd = &cobra.Command{
	Use:   "statement <customer-id>",
	Short: "Generate a client statement and write it to a file or stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		customerID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid customer id: %w", err)
		}
		ownerID, err := uuid.Parse(ownerFlag)
		if err != nil {
			return fmt.Errorf("invalid owner id: %w", err)
		}

		cutoff := time.Time{}
		if cutoffFlag != "" {
			cutoff, err = time.Parse("2006-01-02", cutoffFlag)
			if err != nil {
				return fmt.Errorf("invalid cutoff: %w", err)
			}
		}

		cfg, pool, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		statements := core.NewStatementService(core.NewPgLedgerSource(pool))
		stmt, err := statements.GenerateStatement(cmd.Context(), ownerID, customerID, cutoff)
		if err != nil {
			return err
		}

		var data []byte
		switch formatFlag {
		case "pdf":
			data, err = export.BuildStatementPDF(stmt, cfg.CurrencySymbol)
		case "xlsx":
			data, err = export.BuildStatementXLSX(stmt)
		default:
			return fmt.Errorf("unknown format %q (want pdf or xlsx)", formatFlag)
		}
		if err != nil {
			return err
		}

		out := outFlag
		if out == "" {
			out = fmt.Sprintf("statement-%s.%s", customerID, formatFlag)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d lines, closing balance %s)\n",
			out, len(stmt.Lines), stmt.ClosingBalance.StringFixed(2))
		return nil
	},
}

var owingCmd = &cobra.Command{
	Use:   "owing",
	Short: "Print each customer's balance and the total outstanding",
	RunE: func(cmd *cobra.Command, args []string) error {
		ownerID, err := uuid.Parse(ownerFlag)
		if err != nil {
			return fmt.Errorf("invalid owner id: %w", err)
		}

		_, pool, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		customers, err := core.NewCustomerService(pool).GetCustomers(cmd.Context(), ownerID)
		if err != nil {
			return err
		}

		for _, c := range customers {
			fmt.Printf("%-36s  %-30s  %12s\n", c.ID, c.Name, c.CurrentBalance.StringFixed(2))
		}
		fmt.Printf("total outstanding: %s\n", core.TotalOwing(customers).StringFixed(2))
		return nil
	},
}

func connect(ctx context.Context) (config.Config, *pgxpool.Pool, error) {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, fmt.Errorf("config: %w", err)
	}
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return cfg, nil, fmt.Errorf("database: %w", err)
	}
	return cfg, pool, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&ownerFlag, "owner", "", "owner (user) UUID, required")
	_ = rootCmd.MarkPersistentFlagRequired("owner")

	statementCmd.Flags().StringVar(&cutoffFlag, "cutoff", "", "inclusive cutoff date YYYY-MM-DD (default today)")
	statementCmd.Flags().StringVar(&formatFlag, "format", "pdf", "output format: pdf or xlsx")
	statementCmd.Flags().StringVar(&outFlag, "out", "", "output file (default statement-<id>.<format>)")

	rootCmd.AddCommand(statementCmd)
	rootCmd.AddCommand(owingCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
