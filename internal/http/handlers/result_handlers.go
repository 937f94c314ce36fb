package handlers

import (
	"net/http"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
	"github.com/gin-gonic/gin"
)

const rankingsLimit = 10

type ResultHandlers struct {
	results domain.ResultRepository
}

func NewResultHandlers(results domain.ResultRepository) *ResultHandlers {
	return &ResultHandlers{results: results}
}

// Marks are pointers so that a score of zero still passes "required"
type ResultRequest struct {
	StudentID     uint     `json:"student_id" binding:"required"`
	ExamID        uint     `json:"exam_id" binding:"required"`
	MarksObtained *float64 `json:"marks_obtained" binding:"required,gte=0"`
}

type UpdateMarksRequest struct {
	MarksObtained *float64 `json:"marks_obtained" binding:"required,gte=0"`
}

// List returns every result, sorted by ?orderBy=date|marks|percentage|student|subject&order=asc|desc
func (h *ResultHandlers) List(c *gin.Context) {
	results, err := h.results.List(c.Request.Context(), c.DefaultQuery("orderBy", "date"), c.DefaultQuery("order", "desc"))
	if err != nil {
		respondRecordError(c, err, "Result")
		return
	}
	c.JSON(http.StatusOK, nonNil(results))
}

func (h *ResultHandlers) ByStudent(c *gin.Context) {
	id, ok := parseID(c, "studentId")
	if !ok {
		return
	}

	results, err := h.results.ListByStudent(c.Request.Context(), id)
	if err != nil {
		respondRecordError(c, err, "Result")
		return
	}
	c.JSON(http.StatusOK, nonNil(results))
}

func (h *ResultHandlers) ByExam(c *gin.Context) {
	id, ok := parseID(c, "examId")
	if !ok {
		return
	}

	results, err := h.results.ListByExam(c.Request.Context(), id)
	if err != nil {
		respondRecordError(c, err, "Result")
		return
	}
	c.JSON(http.StatusOK, nonNil(results))
}

// Rankings returns the top ten students by average percentage
func (h *ResultHandlers) Rankings(c *gin.Context) {
	rankings, err := h.results.Rankings(c.Request.Context(), rankingsLimit)
	if err != nil {
		respondRecordError(c, err, "Result")
		return
	}
	c.JSON(http.StatusOK, nonNil(rankings))
}

func (h *ResultHandlers) Create(c *gin.Context) {
	var req ResultRequest
	if !bindJSON(c, &req) {
		return
	}

	result := &domain.Result{
		StudentID:     req.StudentID,
		ExamID:        req.ExamID,
		MarksObtained: *req.MarksObtained,
	}
	if err := h.results.Create(c.Request.Context(), result); err != nil {
		respondRecordError(c, err, "Result")
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Update changes only the marks of a result
func (h *ResultHandlers) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateMarksRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.results.UpdateMarks(c.Request.Context(), id, *req.MarksObtained); err != nil {
		respondRecordError(c, err, "Result")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "marks_obtained": *req.MarksObtained})
}

func (h *ResultHandlers) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.results.Delete(c.Request.Context(), id); err != nil {
		respondRecordError(c, err, "Result")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Result deleted successfully"})
}
