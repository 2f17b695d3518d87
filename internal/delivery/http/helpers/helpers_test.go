package helpers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookingcalendar/internal/domain"
)

type loginBody struct {
	Email string `json:"email"`
}

func (l loginBody) Validate() []string {
	if l.Email == "" {
		return []string{"email is required"}
	}
	return nil
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantSubstr string
	}{
		{"valid", `{"email":"a@example.com"}`, true, ""},
		{"empty body", ``, false, "request body is empty"},
		{"invalid json", `{nope`, false, "invalid"},
		{"unknown field", `{"email":"a@example.com","x":1}`, false, "unknown field"},
		{"trailing object", `{"email":"a@example.com"}{"email":"b"}`, false, "single JSON object"},
		{"validation", `{"email":""}`, false, "email is required"},
		{"too large", `{"email":"` + strings.Repeat("a", MaxBodyBytes) + `"}`, false, "too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			var dest loginBody
			ok := DecodeAndValidate(rr, req, &dest)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				return
			}
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			var env APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
			require.NotNil(t, env.Error)
			assert.Equal(t, ErrCodeBadRequest, env.Error.Code)
			assert.Contains(t, env.Error.Message, tt.wantSubstr)
		})
	}
}

func TestWriteServiceError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{fmt.Errorf("wrap: %w", domain.ErrInvalidRange), http.StatusBadRequest, ErrCodeBadRequest},
		{domain.ErrInvalidSlotID, http.StatusBadRequest, ErrCodeBadRequest},
		{domain.ErrInvalidLogin, http.StatusUnauthorized, ErrCodeUnauthorized},
		{domain.ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
		{fmt.Errorf("x: %w", domain.ErrSlotUnavailable), http.StatusConflict, ErrCodeConflict},
		{fmt.Errorf("x: %w", domain.ErrBackend), http.StatusBadGateway, ErrCodeBadGateway},
		{fmt.Errorf("db exploded"), http.StatusInternalServerError, ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteServiceError(rr, httptest.NewRequest(http.MethodGet, "/", nil), logger, tt.err)
			assert.Equal(t, tt.wantStatus, rr.Code)
			var env APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.Nil(t, env.Data)
		})
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"", DefaultPage, DefaultPageSize},
		{"page=3&page_size=5", 3, 5},
		{"page=0&page_size=-1", DefaultPage, DefaultPageSize},
		{"page=abc&page_size=1000", DefaultPage, MaxPageSize},
		{"page=2&page_size=200", 2, 200},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		p := ParsePagination(req)
		assert.Equal(t, tt.wantPage, p.Page, tt.query)
		assert.Equal(t, tt.wantPageSize, p.PageSize, tt.query)
	}
}

func TestNewPaginatedResponse(t *testing.T) {
	resp := NewPaginatedResponse([]string{"a"}, domain.PaginationParams{Page: 2, PageSize: 10}, 21)
	assert.Equal(t, PaginationMeta{Page: 2, PageSize: 10, Total: 21, TotalPages: 3, HasNext: true}, resp.Pagination)
	assert.Equal(t, []string{"a"}, resp.Items)

	last := NewPaginationMeta(3, 10, 21)
	assert.False(t, last.HasNext)
	assert.Equal(t, PaginationMeta{Page: 1, Total: 5}, NewPaginationMeta(1, 0, 5))
}
