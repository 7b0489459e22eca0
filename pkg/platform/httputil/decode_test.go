package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "whitelabel/pkg/domain-errors"
)

type hostRequest struct {
	Host string `json:"host"`
}

func (r *hostRequest) Normalize() {
	r.Host = strings.ToLower(strings.TrimSpace(r.Host))
}

func (r *hostRequest) Validate() error {
	if r.Host == "" {
		return errors.New("host is required")
	}
	if strings.Contains(r.Host, " ") {
		return dErrors.New(dErrors.CodeInvalidDomainFormat, "host contains spaces")
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDecodeJSON(t *testing.T) {
	ctx := context.Background()

	t.Run("successful decode", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"host":"acme.biz"}`))
		w := httptest.NewRecorder()

		result, ok := DecodeJSON[hostRequest](w, req, discardLogger(), ctx, "req-1")
		assert.True(t, ok)
		require.NotNil(t, result)
		assert.Equal(t, "acme.biz", result.Host)
	})

	t.Run("invalid JSON writes bad_request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{nope`))
		w := httptest.NewRecorder()

		result, ok := DecodeJSON[hostRequest](w, req, discardLogger(), ctx, "req-1")
		assert.False(t, ok)
		assert.Nil(t, result)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "bad_request", body.Error)
	})
}

func TestDecodeAndPrepare(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes before validating", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"host":"  ACME.biz "}`))
		w := httptest.NewRecorder()

		result, ok := DecodeAndPrepare[hostRequest](w, req, discardLogger(), ctx, "req-1")
		require.True(t, ok)
		assert.Equal(t, "acme.biz", result.Host)
	})

	t.Run("plain validation error maps to validation_error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"host":""}`))
		w := httptest.NewRecorder()

		_, ok := DecodeAndPrepare[hostRequest](w, req, discardLogger(), ctx, "req-1")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "validation_error")
	})

	t.Run("domain error code is preserved", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"host":"a b"}`))
		w := httptest.NewRecorder()

		_, ok := DecodeAndPrepare[hostRequest](w, req, discardLogger(), ctx, "req-1")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_domain_format")
	})
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{dErrors.New(dErrors.CodeDomainAlreadyClaimed, "taken"), http.StatusBadRequest, "domain_already_claimed"},
		{dErrors.New(dErrors.CodeNoDomainConfigured, "none"), http.StatusNotFound, "no_domain_configured"},
		{dErrors.New(dErrors.CodeNotFound, "tenant not found"), http.StatusNotFound, "not_found"},
		{dErrors.New(dErrors.CodeConflict, "slug taken"), http.StatusConflict, "conflict"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tc.err)
			assert.Equal(t, tc.status, w.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Error)
		})
	}
}
