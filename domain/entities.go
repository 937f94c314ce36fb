package domain

import "time"

// User represents an account that signs in through an emailed OTP
type User struct {
	ID           uint
	Username     string
	Email        string
	PasswordHash string `gorm:"column:password"`
	OTPCode      *string
	OTPExpiresAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPendingOTP reports whether the user has an outstanding challenge
func (u *User) HasPendingOTP() bool {
	return u.OTPCode != nil && u.OTPExpiresAt != nil
}

// OTPChallenge is one outstanding verification attempt embedded in a User row
type OTPChallenge struct {
	Code      string
	ExpiresAt time.Time
}

// Student is an enrolled learner
type Student struct {
	ID                 uint      `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	RegistrationNumber string    `json:"registration_number"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Subject is a course that exams are held for
type Subject struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Exam is a dated sitting of a subject
type Exam struct {
	ID          uint      `json:"id"`
	SubjectID   uint      `json:"subject_id"`
	ExamDate    time.Time `json:"exam_date"`
	MaxMarks    int       `json:"max_marks"`
	SubjectName string    `json:"subject_name,omitempty"`
	SubjectCode string    `json:"subject_code,omitempty"`
}

// Result is the mark a student obtained in an exam
type Result struct {
	ID            uint    `json:"id"`
	StudentID     uint    `json:"student_id"`
	ExamID        uint    `json:"exam_id"`
	MarksObtained float64 `json:"marks_obtained"`
}

// ResultView is a result joined with its student, exam and subject
type ResultView struct {
	ID                 uint      `json:"id"`
	StudentID          uint      `json:"student_id"`
	ExamID             uint      `json:"exam_id"`
	MarksObtained      float64   `json:"marks_obtained"`
	StudentName        string    `json:"student_name,omitempty"`
	RegistrationNumber string    `json:"registration_number,omitempty"`
	ExamDate           time.Time `json:"exam_date"`
	MaxMarks           int       `json:"max_marks"`
	SubjectName        string    `json:"subject_name,omitempty"`
}

// StudentPerformance aggregates every result of a single student
type StudentPerformance struct {
	ID                 uint    `json:"id"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	RegistrationNumber string  `json:"registration_number"`
	TotalExamsTaken    int64   `json:"total_exams_taken"`
	TotalMarksObtained float64 `json:"total_marks_obtained"`
	TotalMaxMarks      float64 `json:"total_max_marks"`
	AverageMarks       float64 `json:"average_marks"`
	OverallPercentage  float64 `json:"overall_percentage"`
}

// Ranking is one row of the top performers table
type Ranking struct {
	ID                 uint    `json:"id"`
	Name               string  `json:"name"`
	RegistrationNumber string  `json:"registration_number"`
	TotalExams         int64   `json:"total_exams"`
	AveragePercentage  float64 `json:"average_percentage"`
	TotalMarks         float64 `json:"total_marks"`
}

// StudentPrediction summarises a student's marks for the dashboard
type StudentPrediction struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	AvgMarks     float64 `json:"avg_marks"`
	TotalExams   int64   `json:"total_exams"`
	HighestScore float64 `json:"highest_score"`
	LowestScore  float64 `json:"lowest_score"`
}

// Dashboard is the analytics overview
type Dashboard struct {
	TotalStudents      int64               `json:"totalStudents"`
	TotalExams         int64               `json:"totalExams"`
	AverageScore       float64             `json:"averageScore"`
	TopPerformers      int64               `json:"topPerformers"`
	PassRate           float64             `json:"passRate"`
	ConsistencyScore   int                 `json:"consistencyScore"`
	StudentPredictions []StudentPrediction `json:"studentPredictions"`
}

// SubjectPerformance aggregates results per subject
type SubjectPerformance struct {
	SubjectName   string  `json:"subject_name"`
	StudentsCount int64   `json:"students_count"`
	AvgMarks      float64 `json:"avg_marks"`
	HighestMarks  float64 `json:"highest_marks"`
	LowestMarks   float64 `json:"lowest_marks"`
}

// TrendingStudent is a student with at least two results, ranked by average
type TrendingStudent struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvgMarks  float64 `json:"avg_marks"`
	ExamCount int64   `json:"exam_count"`
}
