package appsscript

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"bookingcalendar/internal/domain"
)

const maxBodyBytes = 4 << 20

// jsonpRe matches a JSONP body such as `cb({...});` and captures the payload.
var jsonpRe = regexp.MustCompile(`(?s)^\s*[A-Za-z_$][\w$.]*\s*\(\s*(.*?)\s*\)\s*;?\s*$`)

// Config configures the Apps Script client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// RequestsPerSecond bounds outgoing calls; Apps Script web apps have tight quotas.
	RequestsPerSecond float64
}

type client struct {
	http    *http.Client
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
}

// NewClient returns a SlotBackend that calls an Apps Script web app.
func NewClient(httpClient *http.Client, cfg Config) domain.SlotBackend {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &client{
		http:    httpClient,
		baseURL: cfg.BaseURL,
		timeout: cfg.Timeout,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// envelope is the response shape of every Apps Script action.
type envelope struct {
	OK      *bool           `json:"ok"`
	Success *bool           `json:"success"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e envelope) failed() bool {
	if e.OK != nil {
		return !*e.OK
	}
	if e.Success != nil {
		return !*e.Success
	}
	return e.Error != ""
}

func (e envelope) errorMessage() string {
	if e.Error != "" {
		return e.Error
	}
	if e.Message != "" {
		return e.Message
	}
	return "request rejected"
}

type listData struct {
	Sessions []any `json:"sessions"`
	Slots    []any `json:"slots"`
}

func (c *client) ListSessions(ctx context.Context, q domain.SlotQuery) ([]any, error) {
	params := url.Values{}
	params.Set("from", q.From)
	params.Set("to", q.To)
	if q.CalendarID != "" {
		params.Set("calendar", q.CalendarID)
	}
	env, err := c.get(ctx, "sessions", params)
	if err != nil {
		return nil, err
	}
	return decodeSessions(env.Data)
}

func decodeSessions(data json.RawMessage) ([]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []any{}, nil
	}
	if trimmed[0] == '[' {
		var items []any
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%w: failed to decode sessions: %v", domain.ErrBackend, err)
		}
		return items, nil
	}
	var ld listData
	if err := json.Unmarshal(trimmed, &ld); err != nil {
		return nil, fmt.Errorf("%w: failed to decode sessions: %v", domain.ErrBackend, err)
	}
	if ld.Sessions != nil {
		return ld.Sessions, nil
	}
	if ld.Slots != nil {
		return ld.Slots, nil
	}
	return []any{}, nil
}

// Book submits a booking. The web app only serves GET, so the booking travels
// as query parameters; attendees are joined with commas.
func (c *client) Book(ctx context.Context, req domain.BookingRequest) (domain.BookingConfirmation, error) {
	params := url.Values{}
	params.Set("slot_id", req.SlotID)
	params.Set("requester_name", req.RequesterName)
	setIfNotEmpty(params, "calendar", req.CalendarID)
	setIfNotEmpty(params, "requester_email", req.RequesterEmail)
	setIfNotEmpty(params, "attendees", strings.Join(req.AttendeeEmails, ","))
	setIfNotEmpty(params, "user_type", req.MeetingType)
	setIfNotEmpty(params, "notes", req.Notes)

	env, err := c.get(ctx, "book", params)
	if err != nil {
		return domain.BookingConfirmation{}, err
	}
	var conf domain.BookingConfirmation
	if trimmed := bytes.TrimSpace(env.Data); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &conf); err != nil {
			return domain.BookingConfirmation{}, fmt.Errorf("%w: failed to decode booking confirmation: %v", domain.ErrBackend, err)
		}
	}
	if conf.SlotID == "" {
		conf.SlotID = req.SlotID
	}
	if conf.RequesterName == "" {
		conf.RequesterName = req.RequesterName
	}
	if conf.Message == "" {
		conf.Message = env.Message
	}
	return conf, nil
}

func setIfNotEmpty(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func (c *client) get(ctx context.Context, action string, params url.Values) (envelope, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return envelope{}, fmt.Errorf("%w: rate limit wait: %v", domain.ErrBackend, err)
	}

	params.Set("action", action)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return envelope{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return envelope{}, fmt.Errorf("%w: %v", domain.ErrBackend, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return envelope{}, fmt.Errorf("%w: apps script returned status: %d", domain.ErrBackend, resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return envelope{}, fmt.Errorf("%w: failed to read response: %v", domain.ErrBackend, err)
	}

	var env envelope
	if err := json.Unmarshal(unwrapJSONP(raw), &env); err != nil {
		return envelope{}, fmt.Errorf("%w: failed to decode response: %v", domain.ErrBackend, err)
	}
	if env.failed() {
		return envelope{}, fmt.Errorf("%w: %s", domain.ErrBackend, env.errorMessage())
	}
	return env, nil
}

// unwrapJSONP strips a JSONP callback wrapper. Plain JSON is returned unchanged.
func unwrapJSONP(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] == '{' || trimmed[0] == '[' {
		return trimmed
	}
	if m := jsonpRe.FindSubmatch(trimmed); m != nil {
		return m[1]
	}
	return trimmed
}
