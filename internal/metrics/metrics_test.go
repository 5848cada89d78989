package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_IndependentRegistries(t *testing.T) {
	// Two instances must not collide on registration.
	m1 := NewMetrics()
	m2 := NewMetrics()
	require.NotNil(t, m1)
	require.NotNil(t, m2)
}

func TestMetrics_HandlerExposesCounters(t *testing.T) {
	m := NewMetrics()

	m.NoteCreated()
	m.NoteCreated()
	m.AttachmentUploaded()
	m.ObserveRequest("GET", "/api/notes", 200, 15*time.Millisecond)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "notes_created_total 2")
	assert.Contains(t, body, "attachments_uploaded_total 1")
	assert.Contains(t, body, `http_requests_total{method="GET",route="/api/notes",status="200"} 1`)
}
