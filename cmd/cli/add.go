package main

import (
	"github.com/spf13/cobra"

	"github.com/bigredeye/studentmanager/internal/models"
)

type studentFlags struct {
	name   string
	email  string
	course string
	age    string
}

func (f *studentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, models.FieldName, "", "Student name")
	cmd.Flags().StringVar(&f.email, models.FieldEmail, "", "Student email")
	cmd.Flags().StringVar(&f.course, models.FieldCourse, "", "Course")
	cmd.Flags().StringVar(&f.age, models.FieldAge, "", "Age")
}

func (f *studentFlags) values() map[string]string {
	return map[string]string{
		models.FieldName:   f.name,
		models.FieldEmail:  f.email,
		models.FieldCourse: f.course,
		models.FieldAge:    f.age,
	}
}

func makeAddCommand() *cobra.Command {
	flags := &studentFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a student",
		RunE: func(cmd *cobra.Command, _args []string) error {
			return addStudent(cmd, flags)
		},
	}
	flags.register(cmd)

	return cmd
}

func addStudent(cmd *cobra.Command, flags *studentFlags) error {
	v, err := newView()
	if err != nil {
		return err
	}

	for field, value := range flags.values() {
		check(v.OnFieldChange(field, value))
	}

	err = v.Submit(cmd.Context())
	return reportState(cmd.OutOrStdout(), v.Snapshot(), err)
}
