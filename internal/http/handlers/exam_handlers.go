package handlers

import (
	"net/http"
	"time"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
	"github.com/gin-gonic/gin"
)

type ExamHandlers struct {
	exams domain.ExamRepository
}

func NewExamHandlers(exams domain.ExamRepository) *ExamHandlers {
	return &ExamHandlers{exams: exams}
}

type ExamRequest struct {
	SubjectID uint   `json:"subject_id" binding:"required"`
	ExamDate  string `json:"exam_date" binding:"required"`
	MaxMarks  int    `json:"max_marks" binding:"required,gt=0"`
}

// toDomain parses the exam date as YYYY-MM-DD or RFC 3339
func (r ExamRequest) toDomain(id uint) (*domain.Exam, bool) {
	date, err := time.Parse("2006-01-02", r.ExamDate)
	if err != nil {
		if date, err = time.Parse(time.RFC3339, r.ExamDate); err != nil {
			return nil, false
		}
	}
	return &domain.Exam{ID: id, SubjectID: r.SubjectID, ExamDate: date, MaxMarks: r.MaxMarks}, true
}

func (h *ExamHandlers) List(c *gin.Context) {
	exams, err := h.exams.List(c.Request.Context())
	if err != nil {
		respondRecordError(c, err, "Exam")
		return
	}
	c.JSON(http.StatusOK, nonNil(exams))
}

func (h *ExamHandlers) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	exam, err := h.exams.FindByID(c.Request.Context(), id)
	if err != nil {
		respondRecordError(c, err, "Exam")
		return
	}
	c.JSON(http.StatusOK, exam)
}

func (h *ExamHandlers) Create(c *gin.Context) {
	var req ExamRequest
	if !bindJSON(c, &req) {
		return
	}
	exam, ok := req.toDomain(0)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exam_date must be YYYY-MM-DD or RFC 3339"})
		return
	}

	if err := h.exams.Create(c.Request.Context(), exam); err != nil {
		respondRecordError(c, err, "Exam")
		return
	}

	created, err := h.exams.FindByID(c.Request.Context(), exam.ID)
	if err != nil {
		respondRecordError(c, err, "Exam")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ExamHandlers) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req ExamRequest
	if !bindJSON(c, &req) {
		return
	}
	exam, ok := req.toDomain(id)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exam_date must be YYYY-MM-DD or RFC 3339"})
		return
	}

	if err := h.exams.Update(c.Request.Context(), exam); err != nil {
		respondRecordError(c, err, "Exam")
		return
	}

	updated, err := h.exams.FindByID(c.Request.Context(), id)
	if err != nil {
		respondRecordError(c, err, "Exam")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes the exam and its results
func (h *ExamHandlers) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.exams.Delete(c.Request.Context(), id); err != nil {
		respondRecordError(c, err, "Exam")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exam deleted successfully"})
}
