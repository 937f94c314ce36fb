package repositories

import (
	"context"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
	"gorm.io/gorm"
)

// StudentRepositoryImpl implements domain.StudentRepository using GORM
type StudentRepositoryImpl struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) domain.StudentRepository {
	return &StudentRepositoryImpl{db: db}
}

var studentOrderColumns = map[string]string{
	"name":         "name",
	"email":        "email",
	"registration": "registration_number",
	"id":           "id",
}

// List implements domain.StudentRepository. Unknown columns fall back to name ascending.
func (r *StudentRepositoryImpl) List(ctx context.Context, orderBy, order string) ([]domain.Student, error) {
	column, ok := studentOrderColumns[orderBy]
	direction := sortDirection(order, "ASC")
	if !ok {
		column, direction = "name", "ASC"
	}

	var rows []DBStudent
	if err := r.db.WithContext(ctx).Order(column + " " + direction).Find(&rows).Error; err != nil {
		return nil, storeError(err)
	}

	students := make([]domain.Student, 0, len(rows))
	for i := range rows {
		students = append(students, *studentToDomain(&rows[i]))
	}
	return students, nil
}

func (r *StudentRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Student, error) {
	var row DBStudent
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, recordError(err)
	}
	return studentToDomain(&row), nil
}

func (r *StudentRepositoryImpl) Create(ctx context.Context, student *domain.Student) error {
	row := &DBStudent{
		Name:               student.Name,
		Email:              student.Email,
		RegistrationNumber: student.RegistrationNumber,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return recordError(err)
	}
	*student = *studentToDomain(row)
	return nil
}

func (r *StudentRepositoryImpl) Update(ctx context.Context, student *domain.Student) error {
	result := r.db.WithContext(ctx).Model(&DBStudent{}).Where("id = ?", student.ID).Updates(map[string]interface{}{
		"name":                student.Name,
		"email":               student.Email,
		"registration_number": student.RegistrationNumber,
	})
	if result.Error != nil {
		return recordError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

// Delete removes the student together with their results
func (r *StudentRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", id).Delete(&DBResult{}).Error; err != nil {
			return recordError(err)
		}
		result := tx.Delete(&DBStudent{}, id)
		if result.Error != nil {
			return recordError(result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrResourceNotFound
		}
		return nil
	})
}

// Performance implements domain.StudentRepository
func (r *StudentRepositoryImpl) Performance(ctx context.Context, id uint) (*domain.StudentPerformance, error) {
	var rows []domain.StudentPerformance
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.name,
			s.email,
			s.registration_number,
			COUNT(r.id) AS total_exams_taken,
			COALESCE(SUM(r.marks_obtained), 0) AS total_marks_obtained,
			COALESCE(SUM(e.max_marks), 0) AS total_max_marks,
			COALESCE(AVG(r.marks_obtained), 0) AS average_marks,
			COALESCE(SUM(r.marks_obtained) * 100.0 / NULLIF(SUM(e.max_marks), 0), 0) AS overall_percentage
		FROM students s
		LEFT JOIN results r ON s.id = r.student_id
		LEFT JOIN exams e ON r.exam_id = e.id
		WHERE s.id = ?
		GROUP BY s.id, s.name, s.email, s.registration_number`, id).
		Scan(&rows).Error
	if err != nil {
		return nil, storeError(err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrResourceNotFound
	}
	return &rows[0], nil
}

func studentToDomain(row *DBStudent) *domain.Student {
	return &domain.Student{
		ID:                 row.ID,
		Name:               row.Name,
		Email:              row.Email,
		RegistrationNumber: row.RegistrationNumber,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}
