package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultTaskPoints = 10

// Task is an assignment from one teacher to one student.
// Points is the maximum the task is worth; AwardedPoints is set by grading.
type Task struct {
	ID          string `json:"id" gorm:"primaryKey;size:36"`
	TeacherID   string `json:"teacherId" gorm:"size:36;not null;index"`
	StudentID   string `json:"studentId" gorm:"size:36;not null;index"`
	StudentName string `json:"studentName" gorm:"size:100"`
	Question    string `json:"question" gorm:"type:text;not null"`
	Points      int    `json:"points" gorm:"not null;default:10"`

	Answer        *string    `json:"answer" gorm:"type:text"`
	IsCorrect     *bool      `json:"isCorrect"`
	Feedback      *string    `json:"feedback" gorm:"type:text"`
	AwardedPoints *int       `json:"awardedPoints"`
	GradedAt      *time.Time `json:"gradedAt"`

	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`

	Grades []Grade `json:"grades" gorm:"foreignKey:TaskID"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// IsGraded reports whether the task left the ungraded state.
func (t *Task) IsGraded() bool {
	return t.IsCorrect != nil
}

// Grade is one ledger entry. Rows are only ever inserted.
type Grade struct {
	ID        string  `json:"id" gorm:"primaryKey;size:36"`
	StudentID string  `json:"studentId" gorm:"size:36;not null;index"`
	TaskID    string  `json:"taskId" gorm:"size:36;not null;uniqueIndex"`
	Points    int     `json:"points" gorm:"not null"`
	Feedback  *string `json:"feedback" gorm:"type:text"`

	// Snapshot keeps question and answer as they were at grading time.
	Snapshot datatypes.JSON `json:"snapshot,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"createdAt" gorm:"index"`

	Task *Task `json:"task,omitempty" gorm:"foreignKey:TaskID"`
}

func (Grade) TableName() string {
	return "grades"
}

func (g *Grade) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// GradeSnapshot is the payload stored in Grade.Snapshot.
type GradeSnapshot struct {
	Question  string  `json:"question"`
	Answer    *string `json:"answer,omitempty"`
	IsCorrect bool    `json:"isCorrect"`
	MaxPoints int     `json:"maxPoints"`
	GradedBy  string  `json:"gradedBy"`
}

// StudentProfile carries the running points total of a student.
type StudentProfile struct {
	UserID      string    `json:"userId" gorm:"primaryKey;size:36"`
	TotalPoints int       `json:"totalPoints" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}
