package repositories

import (
	"context"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
	"gorm.io/gorm"
)

// ResultRepositoryImpl implements domain.ResultRepository using GORM
type ResultRepositoryImpl struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) domain.ResultRepository {
	return &ResultRepositoryImpl{db: db}
}

var resultOrderColumns = map[string]string{
	"date":       "e.exam_date",
	"marks":      "r.marks_obtained",
	"percentage": "r.marks_obtained * 1.0 / e.max_marks",
	"student":    "s.name",
	"subject":    "sub.name",
}

const resultViewColumns = "r.id, r.student_id, r.exam_id, r.marks_obtained, " +
	"s.name AS student_name, s.registration_number, e.exam_date, e.max_marks, sub.name AS subject_name"

func (r *ResultRepositoryImpl) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("results AS r").
		Select(resultViewColumns).
		Joins("JOIN students s ON r.student_id = s.id").
		Joins("JOIN exams e ON r.exam_id = e.id").
		Joins("JOIN subjects sub ON e.subject_id = sub.id")
}

// List implements domain.ResultRepository. Unknown columns fall back to r.id descending.
func (r *ResultRepositoryImpl) List(ctx context.Context, orderBy, order string) ([]domain.ResultView, error) {
	column, ok := resultOrderColumns[orderBy]
	if !ok {
		column = "r.id"
	}
	if orderBy == "" {
		column = resultOrderColumns["date"]
	}
	direction := sortDirection(order, "DESC")

	return r.scan(r.joined(ctx).Order(column + " " + direction + ", r.id DESC"))
}

// ListByStudent returns a student's results, most recent exam first
func (r *ResultRepositoryImpl) ListByStudent(ctx context.Context, studentID uint) ([]domain.ResultView, error) {
	return r.scan(r.joined(ctx).Where("r.student_id = ?", studentID).Order("e.exam_date DESC, r.id DESC"))
}

// ListByExam returns an exam's results, highest marks first
func (r *ResultRepositoryImpl) ListByExam(ctx context.Context, examID uint) ([]domain.ResultView, error) {
	return r.scan(r.joined(ctx).Where("r.exam_id = ?", examID).Order("r.marks_obtained DESC, r.id ASC"))
}

func (r *ResultRepositoryImpl) scan(query *gorm.DB) ([]domain.ResultView, error) {
	results := []domain.ResultView{}
	if err := query.Scan(&results).Error; err != nil {
		return nil, storeError(err)
	}
	return results, nil
}

// Rankings returns the students with at least one result, best average percentage first
func (r *ResultRepositoryImpl) Rankings(ctx context.Context, limit int) ([]domain.Ranking, error) {
	rankings := []domain.Ranking{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.name,
			s.registration_number,
			COUNT(r.id) AS total_exams,
			AVG(r.marks_obtained * 100.0 / e.max_marks) AS average_percentage,
			SUM(r.marks_obtained) AS total_marks
		FROM students s
		JOIN results r ON s.id = r.student_id
		JOIN exams e ON r.exam_id = e.id
		GROUP BY s.id, s.name, s.registration_number
		HAVING COUNT(r.id) > 0
		ORDER BY average_percentage DESC, s.id ASC
		LIMIT ?`, limit).
		Scan(&rankings).Error
	if err != nil {
		return nil, storeError(err)
	}
	return rankings, nil
}

func (r *ResultRepositoryImpl) Create(ctx context.Context, result *domain.Result) error {
	row := &DBResult{StudentID: result.StudentID, ExamID: result.ExamID, MarksObtained: result.MarksObtained}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireRow(tx, &DBStudent{}, result.StudentID); err != nil {
			return err
		}
		if err := requireRow(tx, &DBExam{}, result.ExamID); err != nil {
			return err
		}
		return recordError(tx.Create(row).Error)
	})
	if err != nil {
		return err
	}
	result.ID = row.ID
	return nil
}

// UpdateMarks changes only the marks of a result
func (r *ResultRepositoryImpl) UpdateMarks(ctx context.Context, id uint, marks float64) error {
	result := r.db.WithContext(ctx).Model(&DBResult{}).Where("id = ?", id).Update("marks_obtained", marks)
	if result.Error != nil {
		return recordError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

func (r *ResultRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&DBResult{}, id)
	if result.Error != nil {
		return recordError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}
