package view

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/singleflight"

	"github.com/bigredeye/studentmanager/api"
	lf "github.com/bigredeye/studentmanager/internal/logfield"
	"github.com/bigredeye/studentmanager/internal/models"
)

type StudentService interface {
	List(ctx context.Context) ([]models.Student, error)
	Create(ctx context.Context, req *api.StudentRequest) (*models.Student, error)
	Update(ctx context.Context, id models.StudentID, req *api.StudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id models.StudentID) error
}

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(prompt string) bool

type State struct {
	Students    []models.Student
	Form        models.FormRecord
	Loading     bool
	Error       string
	Success     string
	RefreshedAt time.Time
}

var validate = validator.New()

// StudentManager owns the student list snapshot, the form draft and the
// status banners. Every write is followed by a full list refetch.
//
// The mutex is never held across a backend call. Overlapping refreshes
// with no completed write in between share one request, and a list
// response is dropped if a later-issued one was already applied.
type StudentManager struct {
	service StudentService
	logger  *zap.Logger

	listSeq  atomic.Uint64
	writeGen atomic.Uint64
	flights  singleflight.Group

	mu      sync.Mutex
	state   State
	pending int
	applied uint64
}

func NewStudentManager(service StudentService, logger *zap.Logger) *StudentManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentManager{
		service: service,
		logger:  logger.With(lf.Module("view")),
	}
}

func (m *StudentManager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := m.state
	state.Students = slices.Clone(m.state.Students)
	if state.Students == nil {
		state.Students = []models.Student{}
	}
	return state
}

// Lookup finds a student in the current snapshot.
func (m *StudentManager) Lookup(id models.StudentID) (models.Student, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.state.Students, func(s models.Student) bool {
		return s.ID == id
	})
	if i < 0 {
		return models.Student{}, false
	}
	return m.state.Students[i], true
}

func (m *StudentManager) Mount(ctx context.Context) error {
	return m.Refresh(ctx)
}

// RefreshTimeout bounds a shared list fetch, which runs detached from its
// callers' contexts.
const RefreshTimeout = 10 * time.Second

// Refresh refetches the list. Overlapping calls with no completed write in
// between share one fetch; each caller stops waiting when its own ctx is done
// while the fetch keeps going for the others.
func (m *StudentManager) Refresh(ctx context.Context) error {
	key := strconv.FormatUint(m.writeGen.Load(), 10)
	ch := m.flights.DoChan(key, func() (interface{}, error) {
		return nil, m.fetch()
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *StudentManager) fetch() error {
	m.mu.Lock()
	m.pending++
	m.state.Loading = true
	m.mu.Unlock()

	seq := m.listSeq.Inc()
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), RefreshTimeout)
	defer cancel()
	students, err := m.service.List(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending--
	m.state.Loading = m.pending > 0

	if seq < m.applied {
		m.logger.Debug("Dropping stale student list", lf.Sequence(seq))
		return err
	}

	if err != nil {
		m.logger.Warn("Failed to load students", zap.Error(err), lf.Sequence(seq))
		m.state.Error = MessageLoadFailed
		return err
	}

	m.logger.Debug("Fetched students",
		lf.Sequence(seq),
		lf.Count(len(students)),
		lf.Elapsed(time.Since(start)),
	)
	m.applied = seq
	m.state.Students = students
	m.state.RefreshedAt = time.Now()
	return nil
}

func (m *StudentManager) OnFieldChange(field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.state.Form.Set(field, value) {
		return ErrUnknownField
	}
	return nil
}

func buildRequest(form *models.FormRecord) (*api.StudentRequest, *ValidationError) {
	if err := validate.Struct(form); err != nil {
		return nil, &ValidationError{MessageFillAllFields}
	}

	age, err := strconv.Atoi(strings.TrimSpace(form.Age))
	if err != nil {
		return nil, &ValidationError{MessageAgeNotNumber}
	}

	return &api.StudentRequest{
		Name:   form.Name,
		Email:  form.Email,
		Course: form.Course,
		Age:    age,
	}, nil
}

func (m *StudentManager) Submit(ctx context.Context) error {
	m.mu.Lock()
	m.state.Error = ""
	m.state.Success = ""
	form := m.state.Form
	req, verr := buildRequest(&form)
	if verr != nil {
		m.state.Error = verr.Message
		m.mu.Unlock()
		return verr
	}
	m.mu.Unlock()

	var err error
	op := "create"
	if form.Editing() {
		op = "update"
		_, err = m.service.Update(ctx, form.ID, req)
	} else {
		_, err = m.service.Create(ctx, req)
	}

	if err != nil {
		m.logger.Warn("Failed to submit student", lf.Operation(op), lf.StudentID(form.ID.String()), zap.Error(err))
		m.mu.Lock()
		m.state.Error = bannerMessage(err, MessageRequestFailed)
		m.mu.Unlock()
		return err
	}
	m.writeGen.Inc()
	m.logger.Info("Submitted student", lf.Operation(op), lf.StudentID(form.ID.String()))

	m.mu.Lock()
	if form.Editing() {
		m.state.Success = MessageStudentUpdated
	} else {
		m.state.Success = MessageStudentAdded
	}
	m.state.Form = models.FormRecord{}
	m.mu.Unlock()

	// The write went through; a failed refetch only shows up in the banner.
	_ = m.Refresh(ctx)
	return nil
}

func (m *StudentManager) BeginEdit(student models.Student) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Form = models.FormFromStudent(&student)
	m.state.Error = ""
	m.state.Success = ""
}

func (m *StudentManager) CancelEdit() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Form = models.FormRecord{}
	m.state.Error = ""
	m.state.Success = ""
}

// Remove deletes a student after confirm approves. A nil confirm counts
// as declined.
func (m *StudentManager) Remove(ctx context.Context, id models.StudentID, confirm ConfirmFunc) error {
	if confirm == nil || !confirm(ConfirmDeletePrompt) {
		m.logger.Debug("Delete declined", lf.StudentID(id.String()))
		return nil
	}

	m.mu.Lock()
	m.state.Error = ""
	m.state.Success = ""
	m.mu.Unlock()

	if err := m.service.Delete(ctx, id); err != nil {
		m.logger.Warn("Failed to delete student", lf.StudentID(id.String()), zap.Error(err))
		m.mu.Lock()
		m.state.Error = bannerMessage(err, MessageDeleteFailed)
		m.mu.Unlock()
		return err
	}
	m.writeGen.Inc()
	m.logger.Info("Deleted student", lf.StudentID(id.String()))

	m.mu.Lock()
	m.state.Success = MessageStudentDeleted
	m.mu.Unlock()

	_ = m.Refresh(ctx)
	return nil
}
