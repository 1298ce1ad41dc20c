// Command migrate applies the infinium database schema and checks connectivity.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"infinium/internal/config"
	"infinium/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply the infinium database schema",
		Long:          "Applies the embedded schema to the database configured by the DB_* environment variables. Every statement is idempotent.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd.Context(), func(pool *pgxpool.Pool, logger zerolog.Logger) error {
				return database.Migrate(cmd.Context(), pool, logger)
			})
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "check",
			Short: "Check the connection and list tables",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withPool(cmd.Context(), func(pool *pgxpool.Pool, _ zerolog.Logger) error {
					return check(cmd.Context(), pool, out)
				})
			},
		},
		&cobra.Command{
			Use:   "schema",
			Short: "Print the schema without applying it",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := io.WriteString(out, database.Schema())
				return err
			},
		},
	)

	return root
}

func withPool(ctx context.Context, fn func(*pgxpool.Pool, zerolog.Logger) error) error {
	dbCfg, logCfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}
	logger := config.NewLogger(*logCfg, os.Stderr)

	pool, err := database.NewPool(ctx, *dbCfg, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(pool, logger)
}

func check(ctx context.Context, pool *pgxpool.Pool, out io.Writer) error {
	var dbName string
	if err := pool.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		return fmt.Errorf("failed to query database name: %w", err)
	}
	fmt.Fprintf(out, "connected to database: %s\n", dbName)

	rows, err := pool.Query(ctx, "SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename")
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan table name: %w", err)
		}
		fmt.Fprintf(out, "  %s\n", name)
	}
	return rows.Err()
}
