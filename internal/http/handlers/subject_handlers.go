package handlers

import (
	"net/http"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
	"github.com/gin-gonic/gin"
)

type SubjectHandlers struct {
	subjects domain.SubjectRepository
}

func NewSubjectHandlers(subjects domain.SubjectRepository) *SubjectHandlers {
	return &SubjectHandlers{subjects: subjects}
}

type SubjectRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

func (h *SubjectHandlers) List(c *gin.Context) {
	subjects, err := h.subjects.List(c.Request.Context())
	if err != nil {
		respondRecordError(c, err, "Subject")
		return
	}
	c.JSON(http.StatusOK, nonNil(subjects))
}

func (h *SubjectHandlers) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	subject, err := h.subjects.FindByID(c.Request.Context(), id)
	if err != nil {
		respondRecordError(c, err, "Subject")
		return
	}
	c.JSON(http.StatusOK, subject)
}

func (h *SubjectHandlers) Create(c *gin.Context) {
	var req SubjectRequest
	if !bindJSON(c, &req) {
		return
	}

	subject := &domain.Subject{Name: req.Name, Code: req.Code}
	if err := h.subjects.Create(c.Request.Context(), subject); err != nil {
		respondRecordError(c, err, "Subject")
		return
	}
	c.JSON(http.StatusCreated, subject)
}

func (h *SubjectHandlers) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req SubjectRequest
	if !bindJSON(c, &req) {
		return
	}

	subject := &domain.Subject{ID: id, Name: req.Name, Code: req.Code}
	if err := h.subjects.Update(c.Request.Context(), subject); err != nil {
		respondRecordError(c, err, "Subject")
		return
	}

	updated, err := h.subjects.FindByID(c.Request.Context(), id)
	if err != nil {
		respondRecordError(c, err, "Subject")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes the subject along with its exams and their results
func (h *SubjectHandlers) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.subjects.Delete(c.Request.Context(), id); err != nil {
		respondRecordError(c, err, "Subject")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subject deleted successfully"})
}
