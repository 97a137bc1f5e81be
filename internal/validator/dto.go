package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/SAP-F-2025/tutoring-service/internal/models"
)

// FlexibleInt accepts a JSON number or a string starting with an integer ("7", "7abc",
// "12.9"). Anything without leading digits leaves it unset, so callers can apply their
// default.
type FlexibleInt struct {
	Value int
	Set   bool
}

func IntOf(v int) FlexibleInt {
	return FlexibleInt{Value: v, Set: true}
}

func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	*f = FlexibleInt{}

	raw := string(bytes.TrimSpace(data))
	if raw == "null" || raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if n, ok := leadingInt(strings.TrimSpace(s)); ok {
			*f = IntOf(n)
		}
		return nil
	}

	if n, err := strconv.Atoi(raw); err == nil {
		*f = IntOf(n)
		return nil
	}
	if fl, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(fl) && !math.IsInf(fl, 0) {
		*f = IntOf(int(fl))
	}
	return nil
}

// leadingInt parses the optional sign and digits that s starts with.
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func (f FlexibleInt) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(f.Value)), nil
}

// OrDefault returns def when the value is unset or zero.
func (f FlexibleInt) OrDefault(def int) int {
	if !f.Set || f.Value == 0 {
		return def
	}
	return f.Value
}

var flexibleTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// FlexibleTime accepts RFC 3339 timestamps as well as the zone-less forms
// produced by HTML date and datetime-local inputs, which are read as UTC.
type FlexibleTime struct {
	time.Time
}

func (t *FlexibleTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range flexibleTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognised date %q", s)
}

func (t FlexibleTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time)
}

// ===== TASKS =====

type CreateTaskRequest struct {
	StudentID   string      `json:"studentId" validate:"required,notblank,max=64"`
	StudentName string      `json:"studentName" validate:"max=100"`
	Question    string      `json:"question" validate:"required,notblank,max=5000"`
	Points      FlexibleInt `json:"points"`
}

// UpdateTaskRequest either records an answer (IsCorrect absent or null)
// or grades the task (IsCorrect present).
type UpdateTaskRequest struct {
	TaskID    string      `json:"taskId" validate:"required,notblank"`
	Answer    *string     `json:"answer" validate:"omitempty,max=10000"`
	IsCorrect *bool       `json:"isCorrect"`
	Feedback  *string     `json:"feedback" validate:"omitempty,max=5000"`
	Points    FlexibleInt `json:"points"`
}

// IsGrading reports whether the request grades the task.
func (r *UpdateTaskRequest) IsGrading() bool {
	return r.IsCorrect != nil
}

// ===== APPOINTMENTS =====

type CreateAppointmentRequest struct {
	TeacherID   string       `json:"teacherId" validate:"required,notblank"`
	TeacherName string       `json:"teacherName" validate:"max=100"`
	Subject     string       `json:"subject" validate:"required,notblank,max=200"`
	Date        FlexibleTime `json:"date"`
	Duration    FlexibleInt  `json:"duration"`
	Notes       *string      `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateAppointmentRequest struct {
	ID          string                   `json:"id" validate:"required,notblank"`
	Status      models.AppointmentStatus `json:"status" validate:"required,appointment_status"`
	MeetingLink *string                  `json:"meetingLink" validate:"omitempty,url,max=500"`
}

// ===== MESSAGES =====

type SendMessageRequest struct {
	ReceiverID string `json:"receiverId" validate:"required,notblank"`
	Content    string `json:"content" validate:"required,notblank,max=4000"`
}

type MarkReadRequest struct {
	SenderID string `json:"senderId" validate:"required,notblank"`
}

// ===== USERS =====

type SelectRoleRequest struct {
	Role models.UserRole `json:"role" validate:"required,user_role"`
}

// ===== VIDEOS =====

type CreateVideoRequest struct {
	Title     string `json:"title" validate:"required,notblank,max=200"`
	YouTubeID string `json:"youtubeId" validate:"required,youtube_id"`
	Subject   string `json:"subject" validate:"required,notblank,max=100"`
}

type RecordViewRequest struct {
	ID string `json:"id" validate:"required,notblank"`
}

// ===== AI HELP =====

type AIHelpRequest struct {
	Question  string  `json:"question"`
	Answer    *string `json:"answer"`
	IsCorrect *bool   `json:"isCorrect"`
}

// ===== MEETINGS =====

type CreateMeetingRequest struct {
	AppointmentID *string `json:"appointmentId" validate:"omitempty,notblank"`
}

type MeetingTokenRequest struct {
	RoomID string `json:"roomId" validate:"required,notblank,max=64"`
}
