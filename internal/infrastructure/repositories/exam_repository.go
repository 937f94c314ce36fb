package repositories

import (
	"context"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
	"gorm.io/gorm"
)

// ExamRepositoryImpl implements domain.ExamRepository using GORM
type ExamRepositoryImpl struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) domain.ExamRepository {
	return &ExamRepositoryImpl{db: db}
}

func (r *ExamRepositoryImpl) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("exams AS e").
		Select("e.id, e.subject_id, e.exam_date, e.max_marks, s.name AS subject_name, s.code AS subject_code").
		Joins("JOIN subjects s ON e.subject_id = s.id")
}

// List returns every exam with its subject, most recent first
func (r *ExamRepositoryImpl) List(ctx context.Context) ([]domain.Exam, error) {
	exams := []domain.Exam{}
	if err := r.joined(ctx).Order("e.exam_date DESC").Scan(&exams).Error; err != nil {
		return nil, storeError(err)
	}
	return exams, nil
}

func (r *ExamRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Exam, error) {
	var exams []domain.Exam
	if err := r.joined(ctx).Where("e.id = ?", id).Scan(&exams).Error; err != nil {
		return nil, storeError(err)
	}
	if len(exams) == 0 {
		return nil, domain.ErrResourceNotFound
	}
	return &exams[0], nil
}

func (r *ExamRepositoryImpl) Create(ctx context.Context, exam *domain.Exam) error {
	row := &DBExam{SubjectID: exam.SubjectID, ExamDate: exam.ExamDate, MaxMarks: exam.MaxMarks}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireRow(tx, &DBSubject{}, exam.SubjectID); err != nil {
			return err
		}
		return recordError(tx.Create(row).Error)
	})
	if err != nil {
		return err
	}
	exam.ID = row.ID
	return nil
}

func (r *ExamRepositoryImpl) Update(ctx context.Context, exam *domain.Exam) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireRow(tx, &DBSubject{}, exam.SubjectID); err != nil {
			return err
		}
		result := tx.Model(&DBExam{}).Where("id = ?", exam.ID).Updates(map[string]interface{}{
			"subject_id": exam.SubjectID,
			"exam_date":  exam.ExamDate,
			"max_marks":  exam.MaxMarks,
		})
		if result.Error != nil {
			return recordError(result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrResourceNotFound
		}
		return nil
	})
}

// Delete removes the exam and its results
func (r *ExamRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exam_id = ?", id).Delete(&DBResult{}).Error; err != nil {
			return recordError(err)
		}
		result := tx.Delete(&DBExam{}, id)
		if result.Error != nil {
			return recordError(result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrResourceNotFound
		}
		return nil
	})
}

// requireRow reports ErrInvalidReference when model has no row with id
func requireRow(tx *gorm.DB, model interface{}, id uint) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return storeError(err)
	}
	if count == 0 {
		return domain.ErrInvalidReference
	}
	return nil
}
