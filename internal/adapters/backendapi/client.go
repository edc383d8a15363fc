package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/orbitdesk/receptionist-scheduler/internal/domain/entities"
	"github.com/orbitdesk/receptionist-scheduler/internal/domain/providers"
	"github.com/orbitdesk/receptionist-scheduler/internal/schedule"
	"github.com/orbitdesk/receptionist-scheduler/pkg/config"
	apperrors "github.com/orbitdesk/receptionist-scheduler/pkg/errors"
)

const fallbackErrorMessage = "the scheduling service returned an error"

// Client talks to the upstream receptionist REST API. Every response is
// wrapped in a {success, data, error} envelope; success=false and transport
// failures are surfaced the same way, as upstream errors carrying the
// envelope message or a fallback string.
type Client struct {
	baseURL    string
	apiKey     string
	tenantID   string
	httpClient *http.Client
}

// NewClient creates a backend API client
func NewClient(cfg *config.BackendConfig) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		tenantID: cfg.TenantID,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// calendarPayload is the upstream calendar shape. Its working-hours map is
// Monday-indexed (the settings-screen convention); it is rekeyed to the
// engine's Sunday-first convention here, at the boundary.
type calendarPayload struct {
	ID           string                    `json:"id"`
	Timezone     string                    `json:"timezone"`
	WorkingHours map[int]entities.DayHours `json:"working_hours"`
	SlotDuration int                       `json:"slot_duration"`
}

func (p calendarPayload) toEntity() *entities.Calendar {
	return &entities.Calendar{
		ID:                  p.ID,
		Timezone:            p.Timezone,
		WorkingHours:        schedule.WorkingHoursFromMondayIndexed(p.WorkingHours),
		SlotDurationMinutes: p.SlotDuration,
	}
}

// GetCalendar returns the tenant's calendar configuration
func (c *Client) GetCalendar(ctx context.Context) (*entities.Calendar, error) {
	var payload []calendarPayload
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/v1/calendars", nil, &payload); err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, apperrors.NewNotFoundError("no calendar configured for tenant")
	}
	return payload[0].toEntity(), nil
}

// ListEvents returns appointments within an inclusive local-date range
func (c *Client) ListEvents(ctx context.Context, calendarID, startDate, endDate string) ([]entities.Appointment, error) {
	endpoint, err := url.Parse(fmt.Sprintf("%s/v1/calendars/%s/events", c.baseURL, url.PathEscape(calendarID)))
	if err != nil {
		return nil, apperrors.NewInternalError("invalid events URL", err)
	}
	query := endpoint.Query()
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)
	endpoint.RawQuery = query.Encode()

	var events []entities.Appointment
	if err := c.doJSON(ctx, http.MethodGet, endpoint.String(), nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// ListAppointmentTypes returns the tenant's bookable service categories
func (c *Client) ListAppointmentTypes(ctx context.Context) ([]entities.AppointmentType, error) {
	var types []entities.AppointmentType
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/v1/appointment-types", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// CreateAppointment creates an appointment upstream
func (c *Client) CreateAppointment(ctx context.Context, req *providers.CreateAppointmentRequest) (*entities.Appointment, error) {
	out := &entities.Appointment{}
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/v1/appointments", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateAppointment applies a partial update
func (c *Client) UpdateAppointment(ctx context.Context, id string, req *providers.UpdateAppointmentRequest) (*entities.Appointment, error) {
	out := &entities.Appointment{}
	endpoint := fmt.Sprintf("%s/v1/appointments/%s", c.baseURL, url.PathEscape(id))
	if err := c.doJSON(ctx, http.MethodPatch, endpoint, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ConfirmAppointment confirms a pending appointment
func (c *Client) ConfirmAppointment(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("%s/v1/appointments/%s/confirm", c.baseURL, url.PathEscape(id))
	return c.doJSON(ctx, http.MethodPost, endpoint, nil, nil)
}

// CancelAppointment cancels an appointment
func (c *Client) CancelAppointment(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("%s/v1/appointments/%s/cancel", c.baseURL, url.PathEscape(id))
	return c.doJSON(ctx, http.MethodPost, endpoint, nil, nil)
}

// DeleteAppointment removes an appointment
func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("%s/v1/appointments/%s", c.baseURL, url.PathEscape(id))
	return c.doJSON(ctx, http.MethodDelete, endpoint, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewInternalError("failed to encode request", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return apperrors.NewInternalError("failed to build request", err)
	}
	c.addHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return apperrors.NewUpstreamError(fallbackErrorMessage, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return apperrors.NewUpstreamError(fallbackErrorMessage, err)
	}

	if !env.Success || resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := fallbackErrorMessage
		if env.Error != nil && env.Error.Message != "" {
			message = env.Error.Message
		}
		return apperrors.NewUpstreamError(message, fmt.Errorf("backend status %d", resp.StatusCode))
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return apperrors.NewUpstreamError(fallbackErrorMessage, err)
		}
	}
	return nil
}

func (c *Client) addHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	if c.tenantID != "" {
		req.Header.Set("X-Tenant-ID", c.tenantID)
	}
	req.Header.Set("Content-Type", "application/json")
}
