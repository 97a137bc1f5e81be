package repositories

import "context"

// Repository groups every repository of the service behind one handle.
type Repository interface {
	User() UserRepository
	Task() TaskRepository
	Grade() GradeRepository
	StudentProfile() StudentProfileRepository
	Appointment() AppointmentRepository
	Message() MessageRepository
	Video() VideoRepository
	Analytics() AnalyticsRepository

	// WithTransaction runs fn with repositories bound to one database transaction.
	// Returning an error from fn rolls the transaction back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager owns the repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
