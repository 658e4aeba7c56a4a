package api

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jufengpp/signup/internal/domain"
	"github.com/jufengpp/signup/internal/tracing"
)

const (
	PathRegistrations  = "/registrations"
	PathRemainingSlots = "/registrations/remaining-slots"
)

// Result is the envelope of a submitted registration. A non-success code
// is a handled failure whose Message is meant for the user.
type Result struct {
	Code    int
	Message string
}

// OK reports whether the server accepted the registration.
func (r Result) OK() bool {
	return r.Code == SuccessCode
}

// Register submits req once. It never retries.
func (c *Client) Register(ctx context.Context, req domain.RegistrationRequest) (Result, error) {
	env, err := c.do(ctx, "register", http.MethodPost, PathRegistrations, req,
		attribute.String(tracing.AttrCoursePackage, string(req.CoursePackage)))
	if err != nil {
		return Result{}, err
	}
	return Result{Code: env.Code, Message: env.Message}, nil
}

// RemainingSlots fetches the current capacity.
func (c *Client) RemainingSlots(ctx context.Context) (domain.SlotStatus, error) {
	env, err := c.do(ctx, "remaining_slots", http.MethodGet, PathRemainingSlots, nil)
	if err != nil {
		return domain.SlotStatus{}, err
	}

	var status domain.SlotStatus
	if err := unwrap(env, &status); err != nil {
		return domain.SlotStatus{}, err
	}
	return status, nil
}

// ListRegistrations fetches every registration record.
func (c *Client) ListRegistrations(ctx context.Context) ([]domain.RegistrationRecord, error) {
	env, err := c.do(ctx, "list_registrations", http.MethodGet, PathRegistrations, nil)
	if err != nil {
		return nil, err
	}

	records := []domain.RegistrationRecord{}
	if err := unwrap(env, &records); err != nil {
		return nil, err
	}
	return records, nil
}
