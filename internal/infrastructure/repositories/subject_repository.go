package repositories

import (
	"context"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
	"gorm.io/gorm"
)

// SubjectRepositoryImpl implements domain.SubjectRepository using GORM
type SubjectRepositoryImpl struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) domain.SubjectRepository {
	return &SubjectRepositoryImpl{db: db}
}

func (r *SubjectRepositoryImpl) List(ctx context.Context) ([]domain.Subject, error) {
	var rows []DBSubject
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, storeError(err)
	}

	subjects := make([]domain.Subject, 0, len(rows))
	for i := range rows {
		subjects = append(subjects, *subjectToDomain(&rows[i]))
	}
	return subjects, nil
}

func (r *SubjectRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Subject, error) {
	var row DBSubject
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, recordError(err)
	}
	return subjectToDomain(&row), nil
}

func (r *SubjectRepositoryImpl) Create(ctx context.Context, subject *domain.Subject) error {
	row := &DBSubject{Name: subject.Name, Code: subject.Code}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return recordError(err)
	}
	*subject = *subjectToDomain(row)
	return nil
}

func (r *SubjectRepositoryImpl) Update(ctx context.Context, subject *domain.Subject) error {
	result := r.db.WithContext(ctx).Model(&DBSubject{}).Where("id = ?", subject.ID).Updates(map[string]interface{}{
		"name": subject.Name,
		"code": subject.Code,
	})
	if result.Error != nil {
		return recordError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

// Delete removes the subject with its exams and their results
func (r *SubjectRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		examIDs := tx.Model(&DBExam{}).Select("id").Where("subject_id = ?", id)
		if err := tx.Where("exam_id IN (?)", examIDs).Delete(&DBResult{}).Error; err != nil {
			return recordError(err)
		}
		if err := tx.Where("subject_id = ?", id).Delete(&DBExam{}).Error; err != nil {
			return recordError(err)
		}
		result := tx.Delete(&DBSubject{}, id)
		if result.Error != nil {
			return recordError(result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrResourceNotFound
		}
		return nil
	})
}

func subjectToDomain(row *DBSubject) *domain.Subject {
	return &domain.Subject{
		ID:        row.ID,
		Name:      row.Name,
		Code:      row.Code,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
