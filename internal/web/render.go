package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bigredeye/studentmanager/internal/models"
	"github.com/bigredeye/studentmanager/internal/view"
)

const pageTitle = "Student Management"

func (s *server) RenderHomePage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Title": pageTitle,
		"State": currentView(c).Snapshot(),
	})
}

func (s *server) RenderConfirmDeletePage(c *gin.Context, id models.StudentID, student *models.Student) {
	c.HTML(http.StatusOK, "confirm.tmpl", gin.H{
		"Title":   pageTitle,
		"Prompt":  view.ConfirmDeletePrompt,
		"ID":      id,
		"Student": student,
	})
}
