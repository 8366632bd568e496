package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bigredeye/studentmanager/internal/models"
	"github.com/bigredeye/studentmanager/internal/view"
)

func makeDeleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteStudent(cmd, models.StudentID(args[0]), yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func promptConfirm(in io.Reader, out io.Writer) view.ConfirmFunc {
	return func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}

func deleteStudent(cmd *cobra.Command, id models.StudentID, yes bool) error {
	v, err := newView()
	if err != nil {
		return err
	}

	confirm := promptConfirm(cmd.InOrStdin(), cmd.ErrOrStderr())
	if yes {
		confirm = func(string) bool { return true }
	}

	confirmed := false
	err = v.Remove(cmd.Context(), id, func(prompt string) bool {
		confirmed = confirm(prompt)
		return confirmed
	})
	if !confirmed {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
		return nil
	}
	return reportState(cmd.OutOrStdout(), v.Snapshot(), err)
}
