package users_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"

	"github.com/mentorstack/mentorhub/internal/app/features/users"
	"github.com/mentorstack/mentorhub/internal/app/lifecycle"
	completedstore "github.com/mentorstack/mentorhub/internal/app/store/completed"
	taskstore "github.com/mentorstack/mentorhub/internal/app/store/tasks"
	userstore "github.com/mentorstack/mentorhub/internal/app/store/users"
	"github.com/mentorstack/mentorhub/internal/app/system/auth"
	"github.com/mentorstack/mentorhub/internal/app/system/indexes"
	"github.com/mentorstack/mentorhub/internal/testutil"
)

// nullBlobs discards uploads; these tests never read files back.
type nullBlobs struct{}

func (nullBlobs) Put(_ context.Context, _ string, r io.Reader, _ *storage.PutOptions) error {
	_, err := io.Copy(io.Discard, r)
	return err
}
func (nullBlobs) Delete(context.Context, string) error { return nil }

func setupHandler(t *testing.T) (*users.Handler, *testutil.Fixtures) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	if err := indexes.EnsureAll(testutil.TestContext(t), db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	if err := auth.InitSessionStore("0123456789abcdef0123456789abcdef", "test-session", "", false, zap.NewNop()); err != nil {
		t.Fatalf("init session store: %v", err)
	}

	us := userstore.New(db)
	lc := lifecycle.New(taskstore.New(db), us, completedstore.New(db), nullBlobs{}, zap.NewNop())
	return users.NewHandler(us, lc, zap.NewNop()), testutil.NewFixtures(t, db)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestSignupAndLogin(t *testing.T) {
	h, _ := setupHandler(t)

	rec := postJSON(t, h.HandleSignup, "/users", map[string]string{
		"id":       "u-1",
		"fullname": "Grace Hopper",
		"domain":   "systems",
		"password": "correct horse",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup code: got %d, body: %s", rec.Code, rec.Body.String())
	}

	t.Run("correct password signs in", func(t *testing.T) {
		rec := postJSON(t, h.HandleLogin, "/users/login", map[string]string{
			"fullname": "Grace Hopper",
			"password": "correct horse",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("login code: got %d, body: %s", rec.Code, rec.Body.String())
		}
		if len(rec.Result().Cookies()) == 0 {
			t.Error("no session cookie set")
		}
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		rec := postJSON(t, h.HandleLogin, "/users/login", map[string]string{
			"fullname": "Grace Hopper",
			"password": "wrong",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("code: got %d, want 401", rec.Code)
		}
	})

	t.Run("unknown user gets the same answer", func(t *testing.T) {
		rec := postJSON(t, h.HandleLogin, "/users/login", map[string]string{
			"fullname": "Nobody",
			"password": "whatever",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("code: got %d, want 401", rec.Code)
		}
	})
}

func TestSignupDuplicateID(t *testing.T) {
	h, _ := setupHandler(t)

	body := map[string]string{"id": "u-1", "fullname": "A", "password": "pw"}
	if rec := postJSON(t, h.HandleSignup, "/users", body); rec.Code != http.StatusCreated {
		t.Fatalf("first signup: %d", rec.Code)
	}
	body["fullname"] = "B"
	if rec := postJSON(t, h.HandleSignup, "/users", body); rec.Code != http.StatusConflict {
		t.Errorf("duplicate signup: got %d, want 409", rec.Code)
	}
}

func TestBulkCreateReportsPerEntry(t *testing.T) {
	h, _ := setupHandler(t)

	rec := postJSON(t, h.HandleBulkCreate, "/users/bulk", []map[string]string{
		{"id": "u-1", "fullname": "A", "password": "pw"},
		{"id": "", "fullname": "B", "password": "pw"}, // invalid: no id
		{"id": "u-3", "fullname": "C", "password": "pw"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("code: got %d, body: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Created []json.RawMessage `json:"created"`
		Failed  []struct {
			ID    string `json:"id"`
			Error string `json:"error"`
		} `json:"failed"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Created) != 2 {
		t.Errorf("created: got %d, want 2", len(body.Created))
	}
	if len(body.Failed) != 1 {
		t.Errorf("failed: got %d, want 1", len(body.Failed))
	}
}

func TestAttendanceEndpoints(t *testing.T) {
	h, fx := setupHandler(t)
	ctx := testutil.TestContext(t)
	fx.CreateUser(ctx, "u-1", "Grace", "m-1")

	mark := func(body any) *httptest.ResponseRecorder {
		b, _ := json.Marshal(body)
		req := httptest.NewRequest("POST", "/users/u-1/attendance", bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		req = testutil.WithChiURLParam(req, "id", "u-1")
		rec := httptest.NewRecorder()
		h.HandleMarkAttendance(rec, req)
		return rec
	}

	if rec := mark(map[string]string{"day": "2026-03-10"}); rec.Code != http.StatusOK {
		t.Fatalf("mark: got %d, body: %s", rec.Code, rec.Body.String())
	}
	if rec := mark(map[string]string{"day": "not-a-day"}); rec.Code != http.StatusBadRequest {
		t.Errorf("bad day: got %d, want 400", rec.Code)
	}
	// Empty day means today and must be accepted.
	if rec := mark(map[string]string{}); rec.Code != http.StatusOK {
		t.Errorf("empty day: got %d, want 200", rec.Code)
	}

	req := httptest.NewRequest("GET", "/users/u-1/attendance", nil)
	req = testutil.WithChiURLParam(req, "id", "u-1")
	rec := httptest.NewRecorder()
	h.HandleGetAttendance(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: got %d", rec.Code)
	}
	var att map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&att); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if att["2026-03-10"] != 1 {
		t.Errorf("attendance: %v", att)
	}

	delReq := httptest.NewRequest("DELETE", "/users/u-1/attendance/2026-03-10", nil)
	delReq = testutil.WithChiURLParam(delReq, "id", "u-1")
	delReq = testutil.WithChiURLParam(delReq, "day", "2026-03-10")
	delRec := httptest.NewRecorder()
	h.HandleUnmarkAttendance(delRec, delReq)
	if delRec.Code != http.StatusOK {
		t.Errorf("unmark: got %d", delRec.Code)
	}
}
