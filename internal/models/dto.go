package models

import "time"

// AnalyticsSummary is the per-student aggregate over the grade ledger and the points total.
type AnalyticsSummary struct {
	TotalPoints  int           `json:"totalPoints"`
	TotalTasks   int64         `json:"totalTasks"`
	AverageScore float64       `json:"averageScore"`
	RecentGrades []RecentGrade `json:"recentGrades"`
}

type RecentGrade struct {
	ID       string    `json:"id"`
	TaskName string    `json:"taskName"`
	Points   int       `json:"points"`
	Feedback *string   `json:"feedback"`
	Date     time.Time `json:"date"`
}

// GradeStats is the count/mean/sum of a student's ledger rows.
type GradeStats struct {
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
	Sum     int64   `json:"sum"`
}

// GradeExportRow is one line of the grade ledger spreadsheet.
type GradeExportRow struct {
	GradeID     string    `json:"gradeId"`
	TaskID      string    `json:"taskId"`
	StudentID   string    `json:"studentId"`
	StudentName string    `json:"studentName"`
	Question    string    `json:"question"`
	MaxPoints   int       `json:"maxPoints"`
	Points      int       `json:"points"`
	Feedback    *string   `json:"feedback"`
	GradedAt    time.Time `json:"gradedAt"`
}

// PointsDrift reports a profile whose total disagrees with its ledger.
type PointsDrift struct {
	UserID      string `json:"userId"`
	TotalPoints int    `json:"totalPoints"`
	LedgerSum   int64  `json:"ledgerSum"`
}

// MeetingRoom is a conferencing room and the link participants open.
type MeetingRoom struct {
	RoomID        string  `json:"roomId"`
	Link          string  `json:"link"`
	AppointmentID *string `json:"appointmentId,omitempty"`
}

// MeetingToken authorizes one user to join one room of the conferencing widget.
type MeetingToken struct {
	AppID     int64     `json:"appId"`
	RoomID    string    `json:"roomId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
