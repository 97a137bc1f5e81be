package services

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
)

const (
	recentGradesLimit = 10
	previewLength     = 50
	exportSheet       = "Grades"
)

var exportHeader = []interface{}{
	"Grade ID", "Task ID", "Student ID", "Student", "Question", "Max Points", "Points", "Feedback", "Graded At",
}

type analyticsService struct {
	repo   repositories.Repository
	logger utils.Logger
}

func NewAnalyticsService(repo repositories.Repository, logger utils.Logger) AnalyticsService {
	return &analyticsService{
		repo:   repo,
		logger: logger,
	}
}

func (s *analyticsService) Summary(ctx context.Context, studentID string) (*models.AnalyticsSummary, error) {
	stats, err := s.repo.Analytics().GetGradeStats(ctx, nil, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get grade stats: %w", err)
	}

	totalPoints, err := s.repo.Analytics().GetTotalPoints(ctx, nil, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get total points: %w", err)
	}

	grades, err := s.repo.Analytics().GetRecentGrades(ctx, nil, studentID, recentGradesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent grades: %w", err)
	}

	summary := &models.AnalyticsSummary{
		TotalPoints:  totalPoints,
		TotalTasks:   stats.Count,
		RecentGrades: make([]models.RecentGrade, 0, len(grades)),
	}
	if stats.Count > 0 {
		summary.AverageScore = stats.Average
	}

	for _, g := range grades {
		recent := models.RecentGrade{
			ID:       g.ID,
			Points:   g.Points,
			Feedback: g.Feedback,
			Date:     g.CreatedAt,
		}
		if g.Task != nil {
			recent.TaskName = preview(g.Task.Question, previewLength)
		}
		summary.RecentGrades = append(summary.RecentGrades, recent)
	}

	return summary, nil
}

// preview keeps the first n runes of s followed by an ellipsis
func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes) + "..."
}

// ExportGrades writes the caller's ledger as an xlsx workbook. Teachers get the grades on
// tasks they assigned; students get their own.
func (s *analyticsService) ExportGrades(ctx context.Context, caller *models.User, w io.Writer) error {
	filters := repositories.GradeExportFilters{StudentID: caller.ID}
	if caller.IsTeacher() {
		filters = repositories.GradeExportFilters{TeacherID: caller.ID}
	}

	rows, err := s.repo.Analytics().GetGradeExportRows(ctx, nil, filters)
	if err != nil {
		return fmt.Errorf("failed to load grades: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		feedback := ""
		if row.Feedback != nil {
			feedback = *row.Feedback
		}
		values := []interface{}{
			row.GradeID, row.TaskID, row.StudentID, row.StudentName, row.Question,
			row.MaxPoints, row.Points, feedback, row.GradedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	s.logger.Info("Grades exported", "user_id", caller.ID, "rows", len(rows))
	return f.Write(w)
}

func (s *analyticsService) ReconcilePoints(ctx context.Context, fix bool) ([]models.PointsDrift, error) {
	sums, err := s.repo.Analytics().GetLedgerSums(ctx, nil)
	if err != nil {
		return nil, err
	}
	profiles, err := s.repo.StudentProfile().List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	totals := make(map[string]int, len(profiles))
	for _, p := range profiles {
		totals[p.UserID] = p.TotalPoints
	}

	var drifts []models.PointsDrift
	for userID, total := range totals {
		if int64(total) != sums[userID] {
			drifts = append(drifts, models.PointsDrift{UserID: userID, TotalPoints: total, LedgerSum: sums[userID]})
		}
	}
	for userID, sum := range sums {
		if _, ok := totals[userID]; !ok && sum != 0 {
			drifts = append(drifts, models.PointsDrift{UserID: userID, LedgerSum: sum})
		}
	}
	sort.Slice(drifts, func(i, j int) bool { return drifts[i].UserID < drifts[j].UserID })

	if fix {
		for _, d := range drifts {
			if err := s.repo.StudentProfile().SetTotalPoints(ctx, nil, d.UserID, int(d.LedgerSum)); err != nil {
				return drifts, fmt.Errorf("failed to fix points of %s: %w", d.UserID, err)
			}
			s.logger.Warn("Points total corrected", "user_id", d.UserID, "from", d.TotalPoints, "to", d.LedgerSum)
		}
	}

	return drifts, nil
}
