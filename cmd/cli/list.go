package main

import (
	"github.com/spf13/cobra"
)

func makeListCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List students",
		RunE: func(cmd *cobra.Command, _args []string) error {
			return listStudents(cmd, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table, json or yaml")

	return cmd
}

func listStudents(cmd *cobra.Command, output string) error {
	v, err := newView()
	if err != nil {
		return err
	}

	err = v.Mount(cmd.Context())
	state := v.Snapshot()
	if err != nil {
		return reportState(cmd.OutOrStdout(), state, err)
	}

	return renderStudents(cmd.OutOrStdout(), output, state.Students)
}
