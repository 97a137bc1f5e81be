package handlers

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/services"
)

var errBoom = errors.New("boom")

type fakeProvider struct {
	identities map[string]*models.Identity
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	identity, ok := p.identities[token]
	if !ok {
		return nil, errors.New("unknown token")
	}
	return identity, nil
}

type fakeUsers struct {
	byEmail map[string]*models.User
	created int
}

func (f *fakeUsers) GetOrCreate(ctx context.Context, identity *models.Identity) (*models.User, error) {
	if u, ok := f.byEmail[identity.Email]; ok {
		return u, nil
	}
	u := &models.User{ID: "new-" + identity.Subject, Email: identity.Email, Name: identity.Name, Role: models.RoleStudent}
	f.byEmail[identity.Email] = u
	f.created++
	return u, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, services.ErrUserNotFound
}

func (f *fakeUsers) SelectRole(ctx context.Context, userID string, req *services.SelectRoleRequest) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID != userID {
			continue
		}
		if u.RoleSelected && u.Role != req.Role {
			return nil, services.ErrRoleAlreadySelected
		}
		u.Role, u.RoleSelected = req.Role, true
		return u, nil
	}
	return nil, services.ErrUserNotFound
}

type fakeTasks struct {
	err     error
	lastReq *services.UpdateTaskRequest
}

func (f *fakeTasks) Create(ctx context.Context, req *services.CreateTaskRequest, caller *models.User) (*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Task{ID: "t1", TeacherID: caller.ID, StudentID: req.StudentID, Question: req.Question, Points: req.Points.OrDefault(10)}, nil
}

func (f *fakeTasks) List(ctx context.Context, caller *models.User, studentID string) ([]*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*models.Task{}, nil
}

func (f *fakeTasks) Update(ctx context.Context, req *services.UpdateTaskRequest, caller *models.User) (*models.Task, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.Task{ID: req.TaskID, IsCorrect: req.IsCorrect}, nil
}

type fakeMessages struct {
	markedFrom string
}

func (f *fakeMessages) Thread(ctx context.Context, callerID, otherID string) ([]*models.MessageResponse, error) {
	return []*models.MessageResponse{{SenderID: otherID, ReceiverID: callerID, Content: "hi"}}, nil
}

func (f *fakeMessages) Send(ctx context.Context, senderID string, req *services.SendMessageRequest) (*models.MessageResponse, error) {
	if req.ReceiverID == "ghost" {
		return nil, services.ErrUserNotFound
	}
	return &models.MessageResponse{SenderID: senderID, ReceiverID: req.ReceiverID, Content: req.Content}, nil
}

func (f *fakeMessages) MarkRead(ctx context.Context, callerID string, req *services.MarkReadRequest) (int64, error) {
	f.markedFrom = req.SenderID
	return 2, nil
}

type fakeVideos struct{}

func (fakeVideos) List(ctx context.Context) ([]*models.Video, error) {
	return services.FallbackVideos(), nil
}

func (fakeVideos) Create(ctx context.Context, req *services.CreateVideoRequest) (*models.Video, error) {
	return &models.Video{ID: "v1", Title: req.Title, YouTubeID: req.YouTubeID, Featured: true}, nil
}

func (fakeVideos) RecordView(ctx context.Context, id string) (*models.Video, error) {
	return nil, services.ErrVideoNotFound
}

func (fakeVideos) SeedDefaults(ctx context.Context) (int, error) { return 0, nil }

type fakeAnalytics struct{}

func (fakeAnalytics) Summary(ctx context.Context, studentID string) (*models.AnalyticsSummary, error) {
	return &models.AnalyticsSummary{TotalPoints: 10, TotalTasks: 1, AverageScore: 10, RecentGrades: []models.RecentGrade{}}, nil
}

func (fakeAnalytics) ExportGrades(ctx context.Context, caller *models.User, w io.Writer) error {
	_, err := io.Copy(w, strings.NewReader("PK"))
	return err
}

func (fakeAnalytics) ReconcilePoints(ctx context.Context, fix bool) ([]models.PointsDrift, error) {
	return nil, nil
}

type fakeAppointments struct{}

func (fakeAppointments) List(ctx context.Context, caller *models.User, asTeacher bool) ([]*models.Appointment, error) {
	return []*models.Appointment{}, nil
}

func (fakeAppointments) Create(ctx context.Context, req *services.CreateAppointmentRequest, caller *models.User) (*models.Appointment, error) {
	return &models.Appointment{ID: "a1", StudentID: caller.ID, TeacherID: req.TeacherID}, nil
}

func (fakeAppointments) Update(ctx context.Context, req *services.UpdateAppointmentRequest, callerID string) (*models.Appointment, error) {
	return nil, services.NewPermissionError(callerID, req.ID, "appointment", "update", "not a participant")
}

type fakeMeetings struct{}

func (fakeMeetings) CreateRoom(ctx context.Context, caller *models.User, req *services.CreateMeetingRequest) (*models.MeetingRoom, error) {
	return &models.MeetingRoom{RoomID: "r1", Link: "https://meet.example.com/room/r1"}, nil
}

func (fakeMeetings) IssueToken(ctx context.Context, caller *models.User, req *services.MeetingTokenRequest) (*models.MeetingToken, error) {
	return nil, services.ErrMeetingNotConfigured
}

type fakeServiceManager struct {
	users     *fakeUsers
	tasks     *fakeTasks
	messages  *fakeMessages
	healthErr error
}

func (m *fakeServiceManager) User() services.UserService               { return m.users }
func (m *fakeServiceManager) Task() services.TaskService               { return m.tasks }
func (m *fakeServiceManager) Grading() services.GradingService         { return nil }
func (m *fakeServiceManager) Analytics() services.AnalyticsService     { return fakeAnalytics{} }
func (m *fakeServiceManager) Appointment() services.AppointmentService { return fakeAppointments{} }
func (m *fakeServiceManager) Message() services.MessageService         { return m.messages }
func (m *fakeServiceManager) Video() services.VideoService             { return fakeVideos{} }
func (m *fakeServiceManager) Assistant() services.AssistantService     { return services.NewAssistantService() }
func (m *fakeServiceManager) Meeting() services.MeetingService         { return fakeMeetings{} }
func (m *fakeServiceManager) Initialize(ctx context.Context) error     { return nil }
func (m *fakeServiceManager) HealthCheck(ctx context.Context) error    { return m.healthErr }
func (m *fakeServiceManager) Shutdown(ctx context.Context) error       { return nil }

var errTaskConflict = services.ErrTaskAlreadyGraded
