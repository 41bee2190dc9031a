package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fingervault/internal/common"
	"github.com/dmitrijs2005/fingervault/internal/logging"
	"github.com/dmitrijs2005/fingervault/internal/server/blobstore"
	"github.com/dmitrijs2005/fingervault/internal/server/templates"
)

// ---- fakes ----

type fakeTemplates struct {
	uploadErr error
	uploaded  map[string][]byte

	loadCount int
	loadErr   error

	verifyID  string
	verifyErr error
	verified  []byte

	count int
}

func (f *fakeTemplates) Upload(_ context.Context, id string, data []byte) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	if f.uploaded == nil {
		f.uploaded = map[string][]byte{}
	}
	f.uploaded[id] = data
	return nil
}

func (f *fakeTemplates) Load(context.Context) (int, error) {
	return f.loadCount, f.loadErr
}

func (f *fakeTemplates) Verify(_ context.Context, data []byte) (string, error) {
	f.verified = append([]byte(nil), data...)
	return f.verifyID, f.verifyErr
}

func (f *fakeTemplates) Count() int { return f.count }

// ---- helpers ----

func newServer(ts templateService) *HTTPServer {
	return NewHTTPServer("127.0.0.1:0", logging.Nop{}, ts, Options{ShutdownTimeout: time.Second})
}

func do(t *testing.T, s *HTTPServer, method, path, contentType, body string) (int, map[string]any, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded, string(raw)
}

// ---- tests ----

func TestHome(t *testing.T) {
	s := newServer(&fakeTemplates{})
	code, _, body := do(t, s, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Hello, World!", body)
}

func TestHealth(t *testing.T) {
	s := newServer(&fakeTemplates{count: 7})
	code, body, _ := do(t, s, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 7, body["templates"])
	assert.NotEmpty(t, body["time"])
}

func TestUploadTemplate(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		uploadErr   error
		wantCode    int
		wantKey     string
		wantValue   string
	}{
		{
			name:        "ok",
			contentType: fiberJSON,
			body:        `{"FingerprintID":"user1","FingerprintData":"abc123"}`,
			wantCode:    http.StatusOK,
			wantKey:     "message",
			wantValue:   "Fingerprint template uploaded successfully",
		},
		{
			name:        "malformed json",
			contentType: fiberJSON,
			body:        `{"FingerprintID":`,
			wantCode:    http.StatusBadRequest,
			wantKey:     "error",
			wantValue:   "Invalid JSON payload",
		},
		{
			name:      "not json",
			body:      `FingerprintID=user1`,
			wantCode:  http.StatusBadRequest,
			wantKey:   "error",
			wantValue: "Invalid JSON payload",
		},
		{
			name:        "validation error",
			contentType: fiberJSON,
			body:        `{"FingerprintData":"abc123"}`,
			uploadErr:   common.NewValidationError("FingerprintID missing in payload"),
			wantCode:    http.StatusBadRequest,
			wantKey:     "error",
			wantValue:   "FingerprintID missing in payload",
		},
		{
			name:        "store failure",
			contentType: fiberJSON,
			body:        `{"FingerprintID":"user1","FingerprintData":"abc123"}`,
			uploadErr:   errors.New("put fingerprints/user1.txt: connection refused"),
			wantCode:    http.StatusInternalServerError,
			wantKey:     "error",
			wantValue:   "put fingerprints/user1.txt: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeTemplates{uploadErr: tt.uploadErr}
			s := newServer(f)

			code, body, _ := do(t, s, http.MethodPost, "/upload-template", tt.contentType, tt.body)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantValue, body[tt.wantKey])
		})
	}
}

func TestUploadTemplate_PassesPayload(t *testing.T) {
	f := &fakeTemplates{}
	s := newServer(f)

	code, _, _ := do(t, s, http.MethodPost, "/upload-template", fiberJSON, `{"FingerprintID":"user1","FingerprintData":"abc123"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []byte("abc123"), f.uploaded["user1"])
}

func TestLoadTemplates(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		err       error
		wantCode  int
		wantKey   string
		wantValue any
	}{
		{name: "ok", count: 3, wantCode: http.StatusOK, wantKey: "count", wantValue: float64(3)},
		{name: "empty prefix", err: fmt.Errorf("prefix fingerprints/: %w", common.ErrNoTemplates), wantCode: http.StatusNotFound, wantKey: "message", wantValue: "No fingerprint templates found in the bucket."},
		{name: "store failure", err: errors.New("list fingerprints/: AccessDenied"), wantCode: http.StatusInternalServerError, wantKey: "error", wantValue: "list fingerprints/: AccessDenied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(&fakeTemplates{loadCount: tt.count, loadErr: tt.err})
			code, body, _ := do(t, s, http.MethodPost, "/load-templates", "", "")
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantValue, body[tt.wantKey])
		})
	}
}

func TestVerifyTemplate(t *testing.T) {
	t.Run("match", func(t *testing.T) {
		f := &fakeTemplates{verifyID: "user1"}
		s := newServer(f)
		code, body, _ := do(t, s, http.MethodPost, "/verify-template", "application/octet-stream", "abc123")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Fingerprint verified.", body["message"])
		assert.Equal(t, "user1", body["fingerprint_id"])
		assert.Equal(t, []byte("abc123"), f.verified)
	})

	t.Run("no match", func(t *testing.T) {
		s := newServer(&fakeTemplates{verifyErr: common.ErrNoMatch})
		code, body, _ := do(t, s, http.MethodPost, "/verify-template", "", "zzz")
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "No match found.", body["message"])
	})

	t.Run("empty body", func(t *testing.T) {
		s := newServer(&fakeTemplates{verifyErr: common.NewValidationError("No template data received.")})
		code, body, _ := do(t, s, http.MethodPost, "/verify-template", "", "")
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "No template data received.", body["error"])
	})
}

func TestUnknownRouteIsJSONError(t *testing.T) {
	s := newServer(&fakeTemplates{})
	code, body, _ := do(t, s, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.NotEmpty(t, body["error"])
}

func TestRequestIDHeader(t *testing.T) {
	s := newServer(&fakeTemplates{})
	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Len(t, resp.Header.Get(common.RequestIDHeaderName), 36)
}

func TestScenario_UploadLoadVerify(t *testing.T) {
	svc := templates.NewService(blobstore.NewMemory(), templates.NewRegistry(), "fingerprints/", ".txt", logging.Nop{})
	s := newServer(svc)

	code, _, _ := do(t, s, http.MethodPost, "/load-templates", "", "")
	require.Equal(t, http.StatusNotFound, code, "empty namespace")

	code, body, _ := do(t, s, http.MethodPost, "/upload-template", fiberJSON, `{"FingerprintID":"user1","FingerprintData":"abc123"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Fingerprint template uploaded successfully", body["message"])

	code, body, _ = do(t, s, http.MethodPost, "/load-templates", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.GreaterOrEqual(t, body["count"], float64(1))

	code, body, _ = do(t, s, http.MethodPost, "/verify-template", "", "abc123")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "user1", body["fingerprint_id"])

	code, body, _ = do(t, s, http.MethodPost, "/verify-template", "", "zzz")
	require.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "No match found.", body["message"])

	code, body, _ = do(t, s, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["templates"])
}

const fiberJSON = "application/json"
