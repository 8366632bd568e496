package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/bigredeye/studentmanager/internal/models"
	"github.com/bigredeye/studentmanager/internal/view"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func renderStudents(w io.Writer, format string, list []models.Student) error {
	switch format {
	case outputTable:
		if len(list) == 0 {
			_, err := fmt.Fprintln(w, "No students yet.")
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tCOURSE\tAGE")
		for _, s := range list {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", s.ID, s.Name, s.Email, s.Course, s.Age)
		}
		return tw.Flush()
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	case outputYAML:
		out, err := yaml.Marshal(list)
		if err != nil {
			return errors.Wrap(err, "Failed to marshal students")
		}
		_, err = w.Write(out)
		return err
	default:
		return errors.Errorf("Unknown output format %q", format)
	}
}

// reportState prints the success banner and turns the error banner into
// the command error.
func reportState(w io.Writer, state view.State, err error) error {
	if state.Success != "" {
		fmt.Fprintln(w, state.Success)
	}
	if err == nil {
		return nil
	}
	log.Debug("Operation failed", zap.Error(err))
	if state.Error != "" {
		return errors.New(state.Error)
	}
	return err
}
