package validator

import (
	"fmt"

	"github.com/SAP-F-2025/tutoring-service/internal/models"
)

// ValidateTaskPoints checks the maximum points of a new task after defaulting.
func ValidateTaskPoints(points int) ValidationErrors {
	if points <= 0 {
		return ValidationErrors{{
			Field:   "points",
			Message: "must be a positive number",
			Value:   points,
			Rule:    "min",
		}}
	}
	return nil
}

// ValidateAwardedPoints checks a grade against the task it grades.
func ValidateAwardedPoints(task *models.Task, points int) ValidationErrors {
	if points < 0 || points > task.Points {
		return ValidationErrors{{
			Field:   "points",
			Message: fmt.Sprintf("must be between 0 and %d", task.Points),
			Value:   points,
			Rule:    "points_range",
		}}
	}
	return nil
}
