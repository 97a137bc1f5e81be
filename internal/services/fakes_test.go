package services

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories"
)

// memStore is an in-memory Repository. WithTransaction restores the maps when fn fails.
type memStore struct {
	users        map[string]models.User
	tasks        map[string]models.Task
	grades       map[string]models.Grade
	profiles     map[string]models.StudentProfile
	appointments map[string]models.Appointment
	messages     map[string]models.Message
	videos       map[string]models.Video

	clock time.Time

	// failIncrement makes the next IncrementPoints call fail
	failIncrement error
}

func newMemStore() *memStore {
	return &memStore{
		users:        map[string]models.User{},
		tasks:        map[string]models.Task{},
		grades:       map[string]models.Grade{},
		profiles:     map[string]models.StudentProfile{},
		appointments: map[string]models.Appointment{},
		messages:     map[string]models.Message{},
		videos:       map[string]models.Video{},
		clock:        time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func newID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, repositories.ErrNotFound)
}

func (s *memStore) addUser(name string, role models.UserRole) *models.User {
	u := models.User{
		ID:        uuid.NewString(),
		Email:     name + "@example.com",
		Name:      name,
		Role:      role,
		CreatedAt: s.tick(),
	}
	s.users[u.ID] = u
	return &u
}

func (s *memStore) User() repositories.UserRepository               { return fakeUsers{s} }
func (s *memStore) Task() repositories.TaskRepository               { return fakeTasks{s} }
func (s *memStore) Grade() repositories.GradeRepository             { return fakeGrades{s} }
func (s *memStore) Appointment() repositories.AppointmentRepository { return fakeAppointments{s} }
func (s *memStore) Message() repositories.MessageRepository         { return fakeMessages{s} }
func (s *memStore) Video() repositories.VideoRepository             { return fakeVideos{s} }
func (s *memStore) Analytics() repositories.AnalyticsRepository     { return fakeAnalytics{s} }
func (s *memStore) Ping(ctx context.Context) error                  { return nil }
func (s *memStore) Close() error                                    { return nil }

func (s *memStore) StudentProfile() repositories.StudentProfileRepository {
	return fakeProfiles{s}
}

func (s *memStore) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	users, tasks, grades := maps.Clone(s.users), maps.Clone(s.tasks), maps.Clone(s.grades)
	profiles, appointments := maps.Clone(s.profiles), maps.Clone(s.appointments)
	messages, videos := maps.Clone(s.messages), maps.Clone(s.videos)

	if err := fn(s); err != nil {
		s.users, s.tasks, s.grades = users, tasks, grades
		s.profiles, s.appointments = profiles, appointments
		s.messages, s.videos = messages, videos
		return err
	}
	return nil
}

// ===== USERS =====

type fakeUsers struct{ s *memStore }

func (r fakeUsers) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = newID(user.ID)
	if user.Role == "" {
		user.Role = models.RoleStudent
	}
	user.CreatedAt = r.s.tick()
	r.s.users[user.ID] = *user
	return nil
}

func (r fakeUsers) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, notFound("user", id)
	}
	return &u, nil
}

func (r fakeUsers) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, notFound("user", email)
}

func (r fakeUsers) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if _, ok := r.s.users[user.ID]; !ok {
		return notFound("user", user.ID)
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r fakeUsers) ExistsByID(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	_, ok := r.s.users[id]
	return ok, nil
}

// ===== TASKS =====

type fakeTasks struct{ s *memStore }

func (r fakeTasks) Create(ctx context.Context, tx *gorm.DB, task *models.Task) error {
	task.ID = newID(task.ID)
	task.CreatedAt = r.s.tick()
	r.s.tasks[task.ID] = *task
	return nil
}

func (r fakeTasks) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Task, error) {
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, notFound("task", id)
	}
	return &t, nil
}

func (r fakeTasks) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Task, error) {
	return r.GetByID(ctx, tx, id)
}

func (r fakeTasks) Update(ctx context.Context, tx *gorm.DB, task *models.Task) error {
	if _, ok := r.s.tasks[task.ID]; !ok {
		return notFound("task", task.ID)
	}
	t := *task
	t.Grades = nil
	r.s.tasks[task.ID] = t
	return nil
}

func (r fakeTasks) List(ctx context.Context, tx *gorm.DB, filters repositories.TaskFilters) ([]*models.Task, error) {
	var out []*models.Task
	for _, t := range r.s.tasks {
		switch {
		case filters.StudentID != "":
			if t.StudentID != filters.StudentID {
				continue
			}
		case filters.TeacherID != "":
			if t.TeacherID != filters.TeacherID {
				continue
			}
		}
		task := t
		if filters.IncludeGrades {
			for _, g := range r.s.grades {
				if g.TaskID == task.ID {
					task.Grades = append(task.Grades, g)
				}
			}
		}
		out = append(out, &task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ===== GRADES =====

type fakeGrades struct{ s *memStore }

func (r fakeGrades) Create(ctx context.Context, tx *gorm.DB, grade *models.Grade) error {
	for _, g := range r.s.grades {
		if g.TaskID == grade.TaskID {
			return repositories.ErrDuplicate
		}
	}
	grade.ID = newID(grade.ID)
	grade.CreatedAt = r.s.tick()
	r.s.grades[grade.ID] = *grade
	return nil
}

func (r fakeGrades) ExistsByTask(ctx context.Context, tx *gorm.DB, taskID string) (bool, error) {
	for _, g := range r.s.grades {
		if g.TaskID == taskID {
			return true, nil
		}
	}
	return false, nil
}

// ===== PROFILES =====

type fakeProfiles struct{ s *memStore }

func (r fakeProfiles) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*models.StudentProfile, error) {
	p, ok := r.s.profiles[userID]
	if !ok {
		return nil, notFound("profile", userID)
	}
	return &p, nil
}

func (r fakeProfiles) IncrementPoints(ctx context.Context, tx *gorm.DB, userID string, points int) error {
	if err := r.s.failIncrement; err != nil {
		r.s.failIncrement = nil
		return err
	}
	p := r.s.profiles[userID]
	p.UserID = userID
	p.TotalPoints += points
	r.s.profiles[userID] = p
	return nil
}

func (r fakeProfiles) SetTotalPoints(ctx context.Context, tx *gorm.DB, userID string, total int) error {
	r.s.profiles[userID] = models.StudentProfile{UserID: userID, TotalPoints: total}
	return nil
}

func (r fakeProfiles) List(ctx context.Context, tx *gorm.DB) ([]*models.StudentProfile, error) {
	var out []*models.StudentProfile
	for _, p := range r.s.profiles {
		profile := p
		out = append(out, &profile)
	}
	return out, nil
}

// ===== APPOINTMENTS =====

type fakeAppointments struct{ s *memStore }

func (r fakeAppointments) Create(ctx context.Context, tx *gorm.DB, a *models.Appointment) error {
	a.ID = newID(a.ID)
	if a.Status == "" {
		a.Status = models.AppointmentPending
	}
	a.CreatedAt = r.s.tick()
	r.s.appointments[a.ID] = *a
	return nil
}

func (r fakeAppointments) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Appointment, error) {
	a, ok := r.s.appointments[id]
	if !ok {
		return nil, notFound("appointment", id)
	}
	return &a, nil
}

func (r fakeAppointments) Update(ctx context.Context, tx *gorm.DB, a *models.Appointment) error {
	if _, ok := r.s.appointments[a.ID]; !ok {
		return notFound("appointment", a.ID)
	}
	r.s.appointments[a.ID] = *a
	return nil
}

func (r fakeAppointments) ListByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]*models.Appointment, error) {
	return r.list(func(a models.Appointment) bool { return a.StudentID == studentID }), nil
}

func (r fakeAppointments) ListByTeacher(ctx context.Context, tx *gorm.DB, teacherID string) ([]*models.Appointment, error) {
	return r.list(func(a models.Appointment) bool { return a.TeacherID == teacherID }), nil
}

func (r fakeAppointments) list(match func(models.Appointment) bool) []*models.Appointment {
	var out []*models.Appointment
	for _, a := range r.s.appointments {
		if match(a) {
			appointment := a
			out = append(out, &appointment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// ===== MESSAGES =====

type fakeMessages struct{ s *memStore }

func (r fakeMessages) Create(ctx context.Context, tx *gorm.DB, m *models.Message) error {
	m.ID = newID(m.ID)
	m.CreatedAt = r.s.tick()
	r.s.messages[m.ID] = *m
	return nil
}

func (r fakeMessages) withParties(m models.Message) *models.Message {
	if u, ok := r.s.users[m.SenderID]; ok {
		m.Sender = &u
	}
	if u, ok := r.s.users[m.ReceiverID]; ok {
		m.Receiver = &u
	}
	return &m
}

func (r fakeMessages) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Message, error) {
	m, ok := r.s.messages[id]
	if !ok {
		return nil, notFound("message", id)
	}
	return r.withParties(m), nil
}

func (r fakeMessages) ListThread(ctx context.Context, tx *gorm.DB, a, b string) ([]*models.Message, error) {
	var out []*models.Message
	for _, m := range r.s.messages {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			out = append(out, r.withParties(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r fakeMessages) MarkRead(ctx context.Context, tx *gorm.DB, senderID, receiverID string) (int64, error) {
	var n int64
	for id, m := range r.s.messages {
		if m.SenderID == senderID && m.ReceiverID == receiverID && !m.Read {
			m.Read = true
			r.s.messages[id] = m
			n++
		}
	}
	return n, nil
}

// ===== VIDEOS =====

type fakeVideos struct{ s *memStore }

func (r fakeVideos) Create(ctx context.Context, tx *gorm.DB, v *models.Video) error {
	v.ID = newID(v.ID)
	v.CreatedAt = r.s.tick()
	r.s.videos[v.ID] = *v
	return nil
}

func (r fakeVideos) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Video, error) {
	v, ok := r.s.videos[id]
	if !ok {
		return nil, notFound("video", id)
	}
	return &v, nil
}

func (r fakeVideos) ListFeatured(ctx context.Context, tx *gorm.DB, limit int) ([]*models.Video, error) {
	var out []*models.Video
	for _, v := range r.s.videos {
		if v.Featured {
			video := v
			out = append(out, &video)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Views > out[j].Views })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r fakeVideos) IncrementViews(ctx context.Context, tx *gorm.DB, id string) (*models.Video, error) {
	v, ok := r.s.videos[id]
	if !ok {
		return nil, notFound("video", id)
	}
	v.Views++
	r.s.videos[id] = v
	return &v, nil
}

// ===== ANALYTICS =====

type fakeAnalytics struct{ s *memStore }

func (r fakeAnalytics) studentGrades(studentID string) []models.Grade {
	var out []models.Grade
	for _, g := range r.s.grades {
		if g.StudentID == studentID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r fakeAnalytics) GetGradeStats(ctx context.Context, tx *gorm.DB, studentID string) (*models.GradeStats, error) {
	stats := &models.GradeStats{}
	for _, g := range r.studentGrades(studentID) {
		stats.Count++
		stats.Sum += int64(g.Points)
	}
	if stats.Count > 0 {
		stats.Average = float64(stats.Sum) / float64(stats.Count)
	}
	return stats, nil
}

func (r fakeAnalytics) GetTotalPoints(ctx context.Context, tx *gorm.DB, studentID string) (int, error) {
	return r.s.profiles[studentID].TotalPoints, nil
}

func (r fakeAnalytics) GetRecentGrades(ctx context.Context, tx *gorm.DB, studentID string, limit int) ([]*models.Grade, error) {
	var out []*models.Grade
	for _, g := range r.studentGrades(studentID) {
		if len(out) == limit {
			break
		}
		grade := g
		if t, ok := r.s.tasks[g.TaskID]; ok {
			grade.Task = &t
		}
		out = append(out, &grade)
	}
	return out, nil
}

func (r fakeAnalytics) GetGradeExportRows(ctx context.Context, tx *gorm.DB, filters repositories.GradeExportFilters) ([]models.GradeExportRow, error) {
	var out []models.GradeExportRow
	for _, g := range r.s.grades {
		t := r.s.tasks[g.TaskID]
		if filters.StudentID != "" && g.StudentID != filters.StudentID {
			continue
		}
		if filters.TeacherID != "" && t.TeacherID != filters.TeacherID {
			continue
		}
		out = append(out, models.GradeExportRow{
			GradeID:     g.ID,
			TaskID:      g.TaskID,
			StudentID:   g.StudentID,
			StudentName: t.StudentName,
			Question:    t.Question,
			MaxPoints:   t.Points,
			Points:      g.Points,
			Feedback:    g.Feedback,
			GradedAt:    g.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GradedAt.After(out[j].GradedAt) })
	return out, nil
}

func (r fakeAnalytics) GetLedgerSums(ctx context.Context, tx *gorm.DB) (map[string]int64, error) {
	sums := map[string]int64{}
	for _, g := range r.s.grades {
		sums[g.StudentID] += int64(g.Points)
	}
	return sums, nil
}

var errBoom = errors.New("boom")
