package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v2"

	"github.com/bigredeye/studentmanager/internal/fakebackend"
	"github.com/bigredeye/studentmanager/internal/models"
	"github.com/bigredeye/studentmanager/internal/view"
)

func runCLI(t *testing.T, backend *fakebackend.Backend, stdin string, argv ...string) (string, error) {
	t.Helper()

	cmd := makeRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--endpoint", backend.URL()}, argv...))

	err := cmd.Execute()
	return out.String(), err
}

func listJSON(t *testing.T, backend *fakebackend.Backend) []models.Student {
	t.Helper()
	out, err := runCLI(t, backend, "", "list", "-o", "json")
	if err != nil {
		t.Fatal("list failed:", err)
	}
	var list []models.Student
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		t.Fatalf("Failed to decode list output %q: %v", out, err)
	}
	return list
}

func TestCLIStudentLifecycle(t *testing.T) {
	backend := fakebackend.New()
	defer backend.Close()

	out, err := runCLI(t, backend, "", "add", "--name", "A", "--email", "a@x.com", "--course", "CS", "--age", "20")
	if err != nil {
		t.Fatal("add failed:", err)
	}
	if !strings.Contains(out, view.MessageStudentAdded) {
		t.Fatalf("Unexpected output: %q", out)
	}

	out, err = runCLI(t, backend, "", "list")
	if err != nil {
		t.Fatal("list failed:", err)
	}
	if !strings.Contains(out, "a@x.com") || !strings.Contains(out, "EMAIL") {
		t.Fatalf("Unexpected table: %q", out)
	}

	out, err = runCLI(t, backend, "", "update", "1", "--age", "21")
	if err != nil {
		t.Fatal("update failed:", err)
	}
	if !strings.Contains(out, view.MessageStudentUpdated) {
		t.Fatalf("Unexpected output: %q", out)
	}

	expected := []models.Student{{ID: "1", Name: "A", Email: "a@x.com", Course: "CS", Age: 21}}
	if diff := cmp.Diff(expected, listJSON(t, backend)); diff != "" {
		t.Fatalf("Unexpected list (-want +got):\n%s", diff)
	}

	out, err = runCLI(t, backend, "n\n", "delete", "1")
	if err != nil {
		t.Fatal("delete failed:", err)
	}
	if !strings.Contains(out, "Cancelled") || len(backend.Students()) != 1 {
		t.Fatalf("Declined delete must keep the student, output %q", out)
	}

	out, err = runCLI(t, backend, "", "delete", "1", "--yes")
	if err != nil {
		t.Fatal("delete failed:", err)
	}
	if !strings.Contains(out, view.MessageStudentDeleted) || len(backend.Students()) != 0 {
		t.Fatalf("Student must be deleted, output %q", out)
	}
}

func TestCLIValidation(t *testing.T) {
	backend := fakebackend.New()
	defer backend.Close()

	_, err := runCLI(t, backend, "", "add", "--name", "A", "--course", "CS", "--age", "20")
	if err == nil || err.Error() != view.MessageFillAllFields {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if len(backend.Requests()) != 0 {
		t.Fatalf("No request expected, got %v", backend.Requests())
	}
}

func TestCLIBackendError(t *testing.T) {
	backend := fakebackend.New()
	defer backend.Close()
	backend.Seed(models.Student{Name: "B", Email: "a@x.com", Course: "CS", Age: 30})

	_, err := runCLI(t, backend, "", "add", "--name", "A", "--email", "a@x.com", "--course", "CS", "--age", "20")
	if err == nil || err.Error() != "Email already exists" {
		t.Fatalf("Expected backend message, got %v", err)
	}

	_, err = runCLI(t, backend, "", "update", "42", "--age", "21")
	if err == nil {
		t.Fatal("Expected error for unknown student")
	}
}

func TestCLIListYAML(t *testing.T) {
	backend := fakebackend.New()
	defer backend.Close()
	seeded := backend.Seed(models.Student{Name: "B", Email: "b@x.com", Course: "Math", Age: 30})

	out, err := runCLI(t, backend, "", "list", "--output", "yaml")
	if err != nil {
		t.Fatal("list failed:", err)
	}

	var list []models.Student
	if err := yaml.Unmarshal([]byte(out), &list); err != nil {
		t.Fatalf("Failed to decode yaml %q: %v", out, err)
	}
	if diff := cmp.Diff(seeded, list); diff != "" {
		t.Fatalf("Unexpected list (-want +got):\n%s", diff)
	}
}

func TestRenderStudentsUnknownFormat(t *testing.T) {
	if err := renderStudents(&bytes.Buffer{}, "xml", nil); err == nil {
		t.Fatal("Expected error for unknown format")
	}

	out := &bytes.Buffer{}
	if err := renderStudents(out, outputTable, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No students yet") {
		t.Fatalf("Unexpected output: %q", out.String())
	}
}

func TestCLIEndpointFromEnv(t *testing.T) {
	backend := fakebackend.New()
	defer backend.Close()
	backend.Seed(models.Student{Name: "B", Email: "b@x.com", Course: "CS", Age: 30})

	t.Setenv("SM_BACKEND_BASEURL", backend.URL())

	cmd := makeRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"list"})
	if err := cmd.Execute(); err != nil {
		t.Fatal("list failed:", err)
	}
	if !strings.Contains(out.String(), "b@x.com") {
		t.Fatalf("Unexpected table: %q", out.String())
	}
}

func TestCLIEndpointFlagOverridesEnv(t *testing.T) {
	backend := fakebackend.New()
	defer backend.Close()

	t.Setenv("SM_BACKEND_BASEURL", "http://127.0.0.1:1/api/students")

	if _, err := runCLI(t, backend, "", "list"); err != nil {
		t.Fatal("--endpoint must win over the environment:", err)
	}
	if diff := cmp.Diff([]string{"GET /api/students"}, backend.Requests()); diff != "" {
		t.Fatalf("Unexpected requests (-want +got):\n%s", diff)
	}
}
