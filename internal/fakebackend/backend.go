// Package fakebackend serves an in-memory students REST API for tests.
package fakebackend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/bigredeye/studentmanager/api"
	"github.com/bigredeye/studentmanager/internal/models"
)

const BasePath = "/api/students"

type failure struct {
	status  int
	message string
}

type Backend struct {
	Server *httptest.Server

	mu       sync.Mutex
	students []models.Student
	nextID   int
	requests []string
	failures map[string][]failure
}

func New() *Backend {
	b := &Backend{
		nextID:   1,
		failures: make(map[string][]failure),
	}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	return b
}

func (b *Backend) URL() string {
	return b.Server.URL + BasePath
}

func (b *Backend) Close() {
	b.Server.Close()
}

// Seed stores students, assigning ids in insertion order.
func (b *Backend) Seed(students ...models.Student) []models.Student {
	b.mu.Lock()
	defer b.mu.Unlock()

	res := make([]models.Student, 0, len(students))
	for _, s := range students {
		s.ID = b.allocID()
		b.students = append(b.students, s)
		res = append(res, s)
	}
	return res
}

// Fail makes the next request with the given method answer with status.
// An empty message produces a body without the message field.
func (b *Backend) Fail(method string, status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method] = append(b.failures[method], failure{status, message})
}

func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func (b *Backend) Students() []models.Student {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Student{}, b.students...)
}

func (b *Backend) allocID() models.StudentID {
	id := models.StudentID(strconv.Itoa(b.nextID))
	b.nextID++
	return id
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.requests = append(b.requests, fmt.Sprintf("%s %s", r.Method, r.URL.Path))

	if queue := b.failures[r.Method]; len(queue) > 0 {
		f := queue[0]
		b.failures[r.Method] = queue[1:]
		writeJSON(w, f.status, api.ErrorResponse{Message: f.message})
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, BasePath)
	if rest == r.URL.Path {
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Message: "Not found"})
		return
	}
	id := models.StudentID(strings.Trim(rest, "/"))

	switch {
	case id == "" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, b.students)
	case id == "" && r.Method == http.MethodPost:
		b.create(w, r)
	case id != "" && r.Method == http.MethodPut:
		b.update(w, r, id)
	case id != "" && r.Method == http.MethodDelete:
		b.delete(w, id)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, api.ErrorResponse{Message: "Method not allowed"})
	}
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (*api.StudentRequest, bool) {
	req := &api.StudentRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		return nil, false
	}
	if req.Name == "" || req.Email == "" || req.Course == "" {
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Message: "Name, email and course are required"})
		return nil, false
	}
	return req, true
}

func (b *Backend) emailTaken(email string, except models.StudentID) bool {
	for _, s := range b.students {
		if s.Email == email && s.ID != except {
			return true
		}
	}
	return false
}

func (b *Backend) find(id models.StudentID) int {
	for i, s := range b.students {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (b *Backend) create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	if b.emailTaken(req.Email, "") {
		writeJSON(w, http.StatusConflict, api.ErrorResponse{Message: "Email already exists"})
		return
	}

	s := models.Student{
		ID:     b.allocID(),
		Name:   req.Name,
		Email:  req.Email,
		Course: req.Course,
		Age:    req.Age,
	}
	b.students = append(b.students, s)
	writeJSON(w, http.StatusCreated, s)
}

func (b *Backend) update(w http.ResponseWriter, r *http.Request, id models.StudentID) {
	i := b.find(id)
	if i < 0 {
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Message: "Student not found"})
		return
	}
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	if b.emailTaken(req.Email, id) {
		writeJSON(w, http.StatusConflict, api.ErrorResponse{Message: "Email already exists"})
		return
	}

	b.students[i] = models.Student{
		ID:     id,
		Name:   req.Name,
		Email:  req.Email,
		Course: req.Course,
		Age:    req.Age,
	}
	writeJSON(w, http.StatusOK, b.students[i])
}

func (b *Backend) delete(w http.ResponseWriter, id models.StudentID) {
	i := b.find(id)
	if i < 0 {
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Message: "Student not found"})
		return
	}
	b.students = append(b.students[:i], b.students[i+1:]...)
	writeJSON(w, http.StatusOK, api.AckResponse{Message: "Student deleted"})
}
