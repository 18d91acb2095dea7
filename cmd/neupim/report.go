package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sarchlab/neupim/record"
)

var reportCmd = &cobra.Command{
	Use:   "report [database file]",
	Short: "Print the contents of a recorded counter database.",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, args []string) error {
	reader, err := record.NewReader(args[0])
	if err != nil {
		return err
	}
	defer reader.Close()

	tables, err := reader.ListTables()
	if err != nil {
		return err
	}

	tableTitle := color.New(color.FgCyan, color.Bold)
	columnTitle := color.New(color.FgYellow)

	for _, table := range tables {
		columns, rows, err := reader.ReadAll(table)
		if err != nil {
			return err
		}

		tableTitle.Printf("%s (%d rows)\n", table, len(rows))

		for _, col := range columns {
			columnTitle.Printf("%v\t", col)
		}
		fmt.Println()

		for _, row := range rows {
			for _, col := range columns {
				fmt.Printf("%v\t", row[col])
			}
			fmt.Println()
		}
		fmt.Println()
	}

	return nil
}
