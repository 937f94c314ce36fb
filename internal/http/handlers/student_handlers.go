package handlers

import (
	"net/http"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
	"github.com/gin-gonic/gin"
)

type StudentHandlers struct {
	students domain.StudentRepository
}

func NewStudentHandlers(students domain.StudentRepository) *StudentHandlers {
	return &StudentHandlers{students: students}
}

type StudentRequest struct {
	Name               string `json:"name" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	RegistrationNumber string `json:"registration_number" binding:"required"`
}

// List returns every student, sorted by ?orderBy=name|email|registration|id&order=asc|desc
func (h *StudentHandlers) List(c *gin.Context) {
	students, err := h.students.List(c.Request.Context(), c.DefaultQuery("orderBy", "name"), c.DefaultQuery("order", "asc"))
	if err != nil {
		respondRecordError(c, err, "Student")
		return
	}
	c.JSON(http.StatusOK, nonNil(students))
}

func (h *StudentHandlers) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	student, err := h.students.FindByID(c.Request.Context(), id)
	if err != nil {
		respondRecordError(c, err, "Student")
		return
	}
	c.JSON(http.StatusOK, student)
}

func (h *StudentHandlers) Create(c *gin.Context) {
	var req StudentRequest
	if !bindJSON(c, &req) {
		return
	}

	student := &domain.Student{
		Name:               req.Name,
		Email:              req.Email,
		RegistrationNumber: req.RegistrationNumber,
	}
	if err := h.students.Create(c.Request.Context(), student); err != nil {
		respondRecordError(c, err, "Student")
		return
	}
	c.JSON(http.StatusCreated, student)
}

func (h *StudentHandlers) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req StudentRequest
	if !bindJSON(c, &req) {
		return
	}

	student := &domain.Student{
		ID:                 id,
		Name:               req.Name,
		Email:              req.Email,
		RegistrationNumber: req.RegistrationNumber,
	}
	if err := h.students.Update(c.Request.Context(), student); err != nil {
		respondRecordError(c, err, "Student")
		return
	}

	updated, err := h.students.FindByID(c.Request.Context(), id)
	if err != nil {
		respondRecordError(c, err, "Student")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes the student and every result they hold
func (h *StudentHandlers) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.students.Delete(c.Request.Context(), id); err != nil {
		respondRecordError(c, err, "Student")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Student deleted successfully"})
}

func (h *StudentHandlers) Performance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	performance, err := h.students.Performance(c.Request.Context(), id)
	if err != nil {
		respondRecordError(c, err, "Student")
		return
	}
	c.JSON(http.StatusOK, performance)
}
