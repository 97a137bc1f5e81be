package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/tutoring-service/internal/events"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
	"github.com/SAP-F-2025/tutoring-service/internal/validator"
)

// publishEvent delivers an event after the state change is durable. Delivery failures are
// logged; the caller's operation already succeeded.
func publishEvent(ctx context.Context, publisher events.EventPublisher, logger utils.Logger, eventType string, data interface{}) {
	if publisher == nil {
		return
	}
	event := events.NewEvent(eventType, data)
	if err := publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		logger.Warn("Failed to publish event", "type", eventType, "event_id", event.ID, "error", err)
	}
}

// validate runs tag validation, returning validator.ValidationErrors on failure
func validate(v *validator.Validator, req interface{}) error {
	if err := v.Validate(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return fieldErrs
		}
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	return nil
}

// notFoundAs maps a repository miss onto a service sentinel
func notFoundAs(err error, sentinel error) error {
	if repositories.IsNotFoundError(err) {
		return sentinel
	}
	return err
}
