package repositories

import "time"

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID           uint       `gorm:"primaryKey"`
	Username     string     `gorm:"uniqueIndex;size:100;not null"`
	Email        string     `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `gorm:"column:password;not null"`
	OTPCode      *string    `gorm:"column:otp_code;size:10"`
	OTPExpiresAt *time.Time `gorm:"column:otp_expires_at"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

type DBStudent struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"size:255;not null"`
	Email              string `gorm:"uniqueIndex;size:255;not null"`
	RegistrationNumber string `gorm:"column:registration_number;uniqueIndex;size:64;not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (DBStudent) TableName() string {
	return "students"
}

type DBSubject struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	Code      string `gorm:"uniqueIndex;size:32;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (DBSubject) TableName() string {
	return "subjects"
}

type DBExam struct {
	ID        uint      `gorm:"primaryKey"`
	SubjectID uint      `gorm:"index;not null"`
	ExamDate  time.Time `gorm:"index;not null"`
	MaxMarks  int       `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Subject   DBSubject `gorm:"constraint:OnDelete:CASCADE"`
}

func (DBExam) TableName() string {
	return "exams"
}

type DBResult struct {
	ID            uint    `gorm:"primaryKey"`
	StudentID     uint    `gorm:"uniqueIndex:idx_result_student_exam;not null"`
	ExamID        uint    `gorm:"uniqueIndex:idx_result_student_exam;index;not null"`
	MarksObtained float64 `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Student       DBStudent `gorm:"constraint:OnDelete:CASCADE"`
	Exam          DBExam    `gorm:"constraint:OnDelete:CASCADE"`
}

func (DBResult) TableName() string {
	return "results"
}

// Models lists every table the service owns, parents first
func Models() []interface{} {
	return []interface{}{
		&DBUser{},
		&DBStudent{},
		&DBSubject{},
		&DBExam{},
		&DBResult{},
	}
}
