package repositories

import (
	"context"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
	"gorm.io/gorm"
)

const (
	topPerformerThreshold = 85.0
	passThreshold         = 60.0
	// consistencyScore is a fixed placeholder until per-student variance is tracked
	consistencyScore = 85
	predictionLimit  = 10
	minTrendingExams = 2
)

// AnalyticsRepositoryImpl implements domain.AnalyticsRepository with SQL aggregates
type AnalyticsRepositoryImpl struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) domain.AnalyticsRepository {
	return &AnalyticsRepositoryImpl{db: db}
}

// Dashboard implements domain.AnalyticsRepository
func (r *AnalyticsRepositoryImpl) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	db := r.db.WithContext(ctx)
	dashboard := &domain.Dashboard{ConsistencyScore: consistencyScore}

	if err := db.Model(&DBStudent{}).Count(&dashboard.TotalStudents).Error; err != nil {
		return nil, storeError(err)
	}

	var totals struct {
		TotalExams   int64
		AverageScore float64
	}
	err := db.Raw(`
		SELECT
			COUNT(DISTINCT exam_id) AS total_exams,
			COALESCE(AVG(marks_obtained), 0) AS average_score
		FROM results`).
		Scan(&totals).Error
	if err != nil {
		return nil, storeError(err)
	}
	dashboard.TotalExams = totals.TotalExams
	dashboard.AverageScore = totals.AverageScore

	var students struct {
		TopPerformers int64
		PassRate      float64
	}
	err = db.Raw(`
		SELECT
			COUNT(CASE WHEN avg_marks > ? THEN 1 END) AS top_performers,
			COALESCE(COUNT(CASE WHEN avg_marks >= ? THEN 1 END) * 100.0 / NULLIF(COUNT(*), 0), 0) AS pass_rate
		FROM (
			SELECT student_id, AVG(marks_obtained) AS avg_marks
			FROM results
			GROUP BY student_id
		) student_averages`, topPerformerThreshold, passThreshold).
		Scan(&students).Error
	if err != nil {
		return nil, storeError(err)
	}
	dashboard.TopPerformers = students.TopPerformers
	dashboard.PassRate = students.PassRate

	dashboard.StudentPredictions = []domain.StudentPrediction{}
	err = db.Raw(`
		SELECT
			s.id,
			s.name,
			s.email,
			COALESCE(AVG(r.marks_obtained), 0) AS avg_marks,
			COUNT(r.id) AS total_exams,
			COALESCE(MAX(r.marks_obtained), 0) AS highest_score,
			COALESCE(MIN(r.marks_obtained), 0) AS lowest_score
		FROM students s
		LEFT JOIN results r ON s.id = r.student_id
		GROUP BY s.id, s.name, s.email
		ORDER BY COALESCE(AVG(r.marks_obtained), 0) DESC, s.id ASC
		LIMIT ?`, predictionLimit).
		Scan(&dashboard.StudentPredictions).Error
	if err != nil {
		return nil, storeError(err)
	}

	return dashboard, nil
}

// SubjectPerformance implements domain.AnalyticsRepository
func (r *AnalyticsRepositoryImpl) SubjectPerformance(ctx context.Context) ([]domain.SubjectPerformance, error) {
	stats := []domain.SubjectPerformance{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			sub.name AS subject_name,
			COUNT(DISTINCT r.student_id) AS students_count,
			COALESCE(AVG(r.marks_obtained), 0) AS avg_marks,
			COALESCE(MAX(r.marks_obtained), 0) AS highest_marks,
			COALESCE(MIN(r.marks_obtained), 0) AS lowest_marks
		FROM subjects sub
		LEFT JOIN exams e ON sub.id = e.subject_id
		LEFT JOIN results r ON e.id = r.exam_id
		GROUP BY sub.id, sub.name
		ORDER BY COALESCE(AVG(r.marks_obtained), 0) DESC, sub.id ASC`).
		Scan(&stats).Error
	if err != nil {
		return nil, storeError(err)
	}
	return stats, nil
}

// TrendingStudents returns students with at least two results, best average first
func (r *AnalyticsRepositoryImpl) TrendingStudents(ctx context.Context, limit int) ([]domain.TrendingStudent, error) {
	trending := []domain.TrendingStudent{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.name,
			s.email,
			AVG(r.marks_obtained) AS avg_marks,
			COUNT(r.id) AS exam_count
		FROM students s
		JOIN results r ON s.id = r.student_id
		GROUP BY s.id, s.name, s.email
		HAVING COUNT(r.id) >= ?
		ORDER BY AVG(r.marks_obtained) DESC, s.id ASC
		LIMIT ?`, minTrendingExams, limit).
		Scan(&trending).Error
	if err != nil {
		return nil, storeError(err)
	}
	return trending, nil
}
