// Package main contains the cli implementation of the catalog kernel's
// operational harness, built on cobra.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"catalogkernel/internal/dbconfig"
	"catalogkernel/internal/engine"
)

type createDatabaseFlags struct {
	path string
}

type createTableFlags struct {
	sql     string
	sqlFile string
}

func main() {
	eng, err := engine.Bootstrap(dbconfig.PathTriple{Data: "./catalogd-data"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "catalogd",
		Short: "Schema catalog kernel operational harness",
	}

	rootCmd.AddCommand(bootstrapCmd(eng))
	rootCmd.AddCommand(createDatabaseCmd(eng))
	rootCmd.AddCommand(createTableCmd(eng))
	rootCmd.AddCommand(describeCmd(eng))
	rootCmd.AddCommand(dropTableCmd(eng))
	rootCmd.AddCommand(capabilitiesCmd(eng))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func bootstrapCmd(eng *engine.Engine) *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Print the bootstrapped meta-database's system tables",
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Printf("meta-database %q (id=%d, status=%s)\n", eng.Meta.Database.Name, eng.Meta.Database.ID, eng.Meta.Database.Status)
			for name, table := range eng.Meta.Tables {
				fmt.Printf("  System_%-12s columns=%d\n", name, len(table.Columns))
			}
			return nil
		},
	}
}

func createDatabaseCmd(eng *engine.Engine) *cobra.Command {
	flags := &createDatabaseFlags{}
	cmd := &cobra.Command{
		Use:   "create-database <name>",
		Short: "Create a user database",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := dbconfig.PathTriple{Data: flags.path}.Resolved()
			db, err := eng.CreateDatabase(args[0], path)
			if err != nil {
				return err
			}
			fmt.Printf("created database %q (id=%d)\n", db.Name, db.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.path, "path", "./data", "Data directory for the new database")
	return cmd
}

func createTableCmd(eng *engine.Engine) *cobra.Command {
	flags := &createTableFlags{}
	cmd := &cobra.Command{
		Use:   "create-table <database>",
		Short: "Create a table from a CREATE TABLE statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			sql := flags.sql
			if flags.sqlFile != "" {
				data, err := os.ReadFile(flags.sqlFile)
				if err != nil {
					return fmt.Errorf("read %q: %w", flags.sqlFile, err)
				}
				sql = string(data)
			}
			if sql == "" {
				return fmt.Errorf("create-table: one of --sql or --sql-file is required")
			}
			table, err := eng.CreateTable(args[0], sql)
			if err != nil {
				return err
			}
			counts := table.Counts()
			fmt.Printf("created table %q (id=%d): columns=%d keys=%d constraints=%d indexes=%d files=%d\n",
				table.Name, table.ID, counts.Columns, counts.Keys, counts.Constraints, counts.Indexes, counts.Files)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.sql, "sql", "", "Inline CREATE TABLE statement")
	cmd.Flags().StringVar(&flags.sqlFile, "sql-file", "", "Path to a file containing a CREATE TABLE statement")
	return cmd
}

func describeCmd(eng *engine.Engine) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <database> <table>",
		Short: "Print a table's column, key, constraint, index, and file counts",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			db, err := eng.Database(args[0])
			if err != nil {
				return err
			}
			table, ok := db.TableByName(args[1])
			if !ok {
				return fmt.Errorf("no table %q in database %q", args[1], args[0])
			}
			counts := table.Counts()
			fmt.Printf("table %q (id=%d, status=%s)\n", table.Name, table.ID, table.Status)
			fmt.Printf("  columns=%d keys=%d constraints=%d indexes=%d files=%d\n",
				counts.Columns, counts.Keys, counts.Constraints, counts.Indexes, counts.Files)
			for _, col := range table.Columns {
				fmt.Printf("  - %-20s %-12s length=%d nullable=%v\n", col.Name, col.Type, col.Length, col.Nullable)
			}
			return nil
		},
	}
}

func dropTableCmd(eng *engine.Engine) *cobra.Command {
	return &cobra.Command{
		Use:   "drop-table <database> <table>",
		Short: "Mark a table deleted",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := eng.DropTable(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("dropped table %q\n", args[1])
			return nil
		},
	}
}

func capabilitiesCmd(eng *engine.Engine) *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities <database> <table> <file>",
		Short: "Print a File's capability matrix",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			caps, err := eng.Capabilities(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Printf("file %q (%s)\n", caps.Name, caps.Category)
			fmt.Printf("  scan=%v fetch=%v search=%v getByBitSet=%v searchByBitSet=%v sort=%v keyUnique=%v hasAllTuples=%v skipInsert=%v\n",
				caps.Scan, caps.Fetch, caps.Search, caps.GetByBitSet, caps.SearchByBitSet, caps.Sort, caps.KeyUnique, caps.HasAllTuples, caps.SkipInsertType)
			return nil
		},
	}
}
