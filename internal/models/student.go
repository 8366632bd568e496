package models

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// StudentID is assigned by the backend. Some backends emit numeric ids,
// others strings; both decode into the same opaque value.
type StudentID string

func (id *StudentID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StudentID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrapf(err, "Invalid student id %s", string(data))
	}
	*id = StudentID(n.String())
	return nil
}

func (id StudentID) String() string {
	return string(id)
}

type Student struct {
	ID     StudentID `json:"id" yaml:"id"`
	Name   string    `json:"name" yaml:"name"`
	Email  string    `json:"email" yaml:"email"`
	Course string    `json:"course" yaml:"course"`
	Age    int       `json:"age" yaml:"age"`
}

const (
	FieldName   = "name"
	FieldEmail  = "email"
	FieldCourse = "course"
	FieldAge    = "age"
)

// FormRecord is the draft being edited. Age stays text until submit.
type FormRecord struct {
	ID     StudentID
	Name   string `validate:"required"`
	Email  string `validate:"required"`
	Course string `validate:"required"`
	Age    string `validate:"required"`
}

func (f FormRecord) Editing() bool {
	return f.ID != ""
}

func (f FormRecord) IsEmpty() bool {
	return f == FormRecord{}
}

func FormFromStudent(s *Student) FormRecord {
	return FormRecord{
		ID:     s.ID,
		Name:   s.Name,
		Email:  s.Email,
		Course: s.Course,
		Age:    strconv.Itoa(s.Age),
	}
}

// Set updates a single field by its form name.
func (f *FormRecord) Set(field, value string) bool {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldCourse:
		f.Course = value
	case FieldAge:
		f.Age = value
	default:
		return false
	}
	return true
}
