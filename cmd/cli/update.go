package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/bigredeye/studentmanager/internal/models"
)

func makeUpdateCommand() *cobra.Command {
	flags := &studentFlags{}

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a student, keeping fields that are not set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateStudent(cmd, models.StudentID(args[0]), flags)
		},
	}
	flags.register(cmd)

	return cmd
}

func updateStudent(cmd *cobra.Command, id models.StudentID, flags *studentFlags) error {
	v, err := newView()
	if err != nil {
		return err
	}

	if err := v.Mount(cmd.Context()); err != nil {
		return reportState(cmd.OutOrStdout(), v.Snapshot(), err)
	}

	student, ok := v.Lookup(id)
	if !ok {
		return errors.Errorf("Unknown student %s", id)
	}
	v.BeginEdit(student)

	for field, value := range flags.values() {
		if cmd.Flags().Changed(field) {
			check(v.OnFieldChange(field, value))
		}
	}

	err = v.Submit(cmd.Context())
	return reportState(cmd.OutOrStdout(), v.Snapshot(), err)
}
