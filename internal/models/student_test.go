package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStudentIDDecoding(t *testing.T) {
	payload := `[
		{"id": 7, "name": "A", "email": "a@x.com", "course": "CS", "age": 20},
		{"id": "65f1c0ffee", "name": "B", "email": "b@x.com", "course": "Math", "age": 31}
	]`

	var students []Student
	if err := json.Unmarshal([]byte(payload), &students); err != nil {
		t.Fatal("Failed to decode students:", err)
	}

	expected := []Student{
		{ID: "7", Name: "A", Email: "a@x.com", Course: "CS", Age: 20},
		{ID: "65f1c0ffee", Name: "B", Email: "b@x.com", Course: "Math", Age: 31},
	}
	if diff := cmp.Diff(expected, students); diff != "" {
		t.Fatalf("Unexpected students (-want +got):\n%s", diff)
	}
}

func TestStudentIDRejectsGarbage(t *testing.T) {
	var s Student
	if err := json.Unmarshal([]byte(`{"id": true}`), &s); err == nil {
		t.Fatal("Expected error for boolean id")
	}
}

func TestFormRecordSet(t *testing.T) {
	form := FormRecord{Name: "A", Email: "a@x.com"}

	if !form.Set(FieldAge, "21") {
		t.Fatal("age should be a known field")
	}
	if form.Set("nickname", "x") {
		t.Fatal("nickname should be rejected")
	}

	expected := FormRecord{Name: "A", Email: "a@x.com", Age: "21"}
	if diff := cmp.Diff(expected, form); diff != "" {
		t.Fatalf("Unexpected form (-want +got):\n%s", diff)
	}
}

func TestFormFromStudent(t *testing.T) {
	form := FormFromStudent(&Student{ID: "3", Name: "A", Email: "a@x.com", Course: "CS", Age: 20})
	if !form.Editing() {
		t.Fatal("form copied from a student must be in edit mode")
	}
	if form.Age != "20" {
		t.Fatalf("Invalid age: %q", form.Age)
	}
	if (FormRecord{}).Editing() || !(FormRecord{}).IsEmpty() {
		t.Fatal("zero form must be an empty create form")
	}
}
