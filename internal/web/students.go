package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	lf "github.com/bigredeye/studentmanager/internal/logfield"
	"github.com/bigredeye/studentmanager/internal/models"
)

var formFields = []string{
	models.FieldName,
	models.FieldEmail,
	models.FieldCourse,
	models.FieldAge,
}

type studentsService struct {
	server *server
	log    *zap.Logger
}

func setupStudentsService(server *server, r *gin.Engine) {
	s := studentsService{server, server.logger.With(lf.Module("students"))}

	g := r.Group("/", server.attachView)
	g.GET("/", server.RenderHomePage)
	g.POST("/refresh", s.refresh)
	g.POST("/form", s.submit)
	g.POST("/cancel", s.cancel)
	g.POST("/students/:id/edit", s.edit)
	g.GET("/students/:id/delete", s.confirmDelete)
	g.POST("/students/:id/delete", s.delete)
}

func backHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

func (s studentsService) refresh(c *gin.Context) {
	_ = currentView(c).Refresh(c.Request.Context())
	backHome(c)
}

func (s studentsService) submit(c *gin.Context) {
	v := currentView(c)
	for _, field := range formFields {
		if value, ok := c.GetPostForm(field); ok {
			if err := v.OnFieldChange(field, value); err != nil {
				s.log.Error("Failed to change form field", zap.String("field", field), zap.Error(err))
			}
		}
	}

	if err := v.Submit(c.Request.Context()); err != nil {
		s.log.Info("Form submit failed", zap.Error(err))
	}
	backHome(c)
}

func (s studentsService) cancel(c *gin.Context) {
	currentView(c).CancelEdit()
	backHome(c)
}

func (s studentsService) edit(c *gin.Context) {
	id := models.StudentID(c.Param("id"))
	v := currentView(c)

	student, ok := v.Lookup(id)
	if !ok {
		s.log.Info("Edit of unknown student", lf.StudentID(id.String()))
		c.String(http.StatusNotFound, "Unknown student %s", id)
		return
	}

	v.BeginEdit(student)
	backHome(c)
}

func (s studentsService) confirmDelete(c *gin.Context) {
	id := models.StudentID(c.Param("id"))

	var student *models.Student
	if found, ok := currentView(c).Lookup(id); ok {
		student = &found
	}
	s.server.RenderConfirmDeletePage(c, id, student)
}

func (s studentsService) delete(c *gin.Context) {
	id := models.StudentID(c.Param("id"))
	confirmed := func(string) bool {
		return c.PostForm("confirm") == "yes"
	}

	if err := currentView(c).Remove(c.Request.Context(), id, confirmed); err != nil {
		s.log.Info("Delete failed", lf.StudentID(id.String()), zap.Error(err))
	}
	backHome(c)
}
