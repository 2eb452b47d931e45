package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/model"
	"github.com/vaultpass/passgen/internal/service"
)

func newTestHandler() *GeneratorHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewGeneratorService(crypto.NewGenerator(nil), 10, logger)
	return NewGeneratorHandler(svc)
}

func postGenerate(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newTestHandler().HandleGenerate(rec, req)
	return rec
}

func TestHandleGenerate_OK(t *testing.T) {
	rec := postGenerate(t, `{"length":60,"lowercase":true,"digits":true,"count":2}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp model.GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 60, resp.Length)
	assert.Equal(t, []string{"lowercase", "digits"}, resp.Classes)
	require.Len(t, resp.Passwords, 2)
	for _, p := range resp.Passwords {
		assert.Len(t, p.Password, 60)
		assert.False(t, strings.ContainsAny(p.Password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ!@#$%^&*()"))
	}
}

func TestHandleGenerate_EmptyBody(t *testing.T) {
	rec := postGenerate(t, "")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Length)
	require.Len(t, resp.Passwords, 1)
	assert.Len(t, resp.Passwords[0].Password, 4)
}

func TestHandleGenerate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		msg    string
	}{
		{name: "malformed json", body: `{"length":`, status: http.StatusBadRequest, msg: "invalid request body"},
		{name: "wrong type", body: `{"length":"long"}`, status: http.StatusBadRequest, msg: "invalid request body"},
		{name: "length too long", body: `{"length":300}`, status: http.StatusBadRequest, msg: service.ErrLengthOutOfRange.Error()},
		{name: "count too high", body: `{"count":11}`, status: http.StatusBadRequest, msg: "count is out of range"},
		{name: "body too large", body: `{"length":8,"pad":"` + strings.Repeat("x", 1<<20) + `"}`, status: http.StatusRequestEntityTooLarge, msg: "request body too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postGenerate(t, tt.body)

			assert.Equal(t, tt.status, rec.Code)

			var resp model.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Contains(t, resp.Error, tt.msg)
		})
	}
}

func TestHandleHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
