package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/hero-flashcards/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GetTraceID(context.Background()))

	ctx := SetTraceID(context.Background())
	id := GetTraceID(ctx)
	assert.Len(t, id, TraceIDLength*2)
	assert.NotEqual(t, id, GetTraceID(SetTraceID(context.Background())))
}

func TestSessionID(t *testing.T) {
	t.Parallel()

	_, ok := GetSessionID(context.Background())
	assert.False(t, ok)

	_, ok = GetSessionID(WithSessionID(context.Background(), uuid.Nil))
	assert.False(t, ok)

	id := uuid.New()
	got, ok := GetSessionID(WithSessionID(context.Background(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type body struct {
		Guess string `json:"guess" validate:"required"`
	}

	tests := []struct {
		name    string
		input   string
		want    body
		wantErr bool
	}{
		{name: "valid", input: `{"guess":"peter"}`, want: body{Guess: "peter"}},
		{name: "malformed", input: `{"guess":`, wantErr: true},
		{name: "unknown field", input: `{"guess":"x","answer":"y"}`, wantErr: true},
		{name: "trailing data", input: `{"guess":"x"}{}`, wantErr: true},
		{name: "too large", input: `{"guess":"` + strings.Repeat("a", MaxRequestBodyBytes) + `"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.input))
			var got body
			err := DecodeJSON(httptest.NewRecorder(), r, &got)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidJSON)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	type body struct {
		CharacterID int64 `validate:"required,gt=0"`
	}
	assert.NoError(t, ValidateRequest(body{CharacterID: 3}))
	assert.Error(t, ValidateRequest(body{}))
	assert.Error(t, ValidateRequest(body{CharacterID: -1}))
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	ctx := SetTraceID(context.Background())
	r := httptest.NewRequest(http.MethodGet, "/api/session", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	RespondWithError(w, r, http.StatusNotFound, "Session not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Session not found", resp.Error)
	assert.Equal(t, GetTraceID(ctx), resp.TraceID)
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	log, buf := logger.GetTestLogger(t)
	ctx := logger.WithLogger(SetTraceID(context.Background()), log)
	r := httptest.NewRequest(http.MethodPost, "/api/sessions", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	err := errors.New("dial postgres://admin:hunter22@db:5432/heroes failed")
	RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "An unexpected error occurred", err)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "postgres")
	logger.AssertLogContains(t, buf, "API error response")
	logger.AssertLogContains(t, buf, GetTraceID(ctx))
	logger.AssertLogNotContains(t, buf, "hunter22")
}
