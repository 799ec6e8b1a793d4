package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/mentorstack/mentorhub/internal/app/features/health"
	"github.com/mentorstack/mentorhub/internal/testutil"
)

func TestServeHealthy(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := health.NewHandler(db.Client(), zap.NewNop())

	rec := httptest.NewRecorder()
	h.Serve(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("code: got %d, body: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["database"] != "connected" {
		t.Errorf("body: %v", body)
	}
}
