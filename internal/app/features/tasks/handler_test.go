package tasks_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"

	"github.com/mentorstack/mentorhub/internal/app/features/tasks"
	"github.com/mentorstack/mentorhub/internal/app/lifecycle"
	completedstore "github.com/mentorstack/mentorhub/internal/app/store/completed"
	taskstore "github.com/mentorstack/mentorhub/internal/app/store/tasks"
	userstore "github.com/mentorstack/mentorhub/internal/app/store/users"
	"github.com/mentorstack/mentorhub/internal/app/system/auth"
	"github.com/mentorstack/mentorhub/internal/domain/models"
	"github.com/mentorstack/mentorhub/internal/testutil"
)

// memBlobs keeps uploads in memory so tests can assert on stored keys.
type memBlobs struct {
	objects map[string][]byte
}

func (m *memBlobs) Put(_ context.Context, path string, r io.Reader, _ *storage.PutOptions) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[path] = data
	return nil
}

func (m *memBlobs) Delete(_ context.Context, path string) error {
	delete(m.objects, path)
	return nil
}

type env struct {
	handler *tasks.Handler
	tasks   *taskstore.Store
	blobs   *memBlobs
	fx      *testutil.Fixtures
}

func setupEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.SetupTestDB(t)
	if err := auth.InitSessionStore("0123456789abcdef0123456789abcdef", "test-session", "", false, zap.NewNop()); err != nil {
		t.Fatalf("init session store: %v", err)
	}

	ts := taskstore.New(db)
	blobs := &memBlobs{objects: map[string][]byte{}}
	lc := lifecycle.New(ts, userstore.New(db), completedstore.New(db), blobs, zap.NewNop())
	return &env{
		handler: tasks.NewHandler(ts, lc, nil, zap.NewNop()),
		tasks:   ts,
		blobs:   blobs,
		fx:      testutil.NewFixtures(t, db),
	}
}

func multipartBody(t *testing.T, fields map[string]string, fileName string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := io.Copy(fw, strings.NewReader("solution contents")); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func (e *env) submit(t *testing.T, fields map[string]string, fileName string, as *auth.SessionUser) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartBody(t, fields, fileName)
	req := httptest.NewRequest("POST", "/tasks/submit", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	if as == nil {
		e.handler.HandleSubmit(rec, req)
		return rec
	}

	// Establish a session and replay the cookie through the middleware
	// so the handler sees the signed-in user.
	signRec := httptest.NewRecorder()
	if err := auth.SignIn(signRec, httptest.NewRequest("POST", "/login", nil), *as); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	for _, c := range signRec.Result().Cookies() {
		req.AddCookie(c)
	}
	auth.LoadSessionUser(http.HandlerFunc(e.handler.HandleSubmit)).ServeHTTP(rec, req)
	return rec
}

func TestHandleSubmitWithFile(t *testing.T) {
	e := setupEnv(t)
	ctx := testutil.TestContext(t)

	e.fx.CreateUser(ctx, "u-1", "Grace", "m-1")
	task := e.fx.CreateTask(ctx, "u-1", "Build a CLI", models.StatusNotStarted)

	rec := e.submit(t, map[string]string{
		"task_id": task.ID.Hex(),
		"remarks": "first attempt",
	}, "solution.pdf", &auth.SessionUser{ID: "u-1", Role: auth.RoleMentee})

	if rec.Code != http.StatusOK {
		t.Fatalf("code: got %d, body: %s", rec.Code, rec.Body.String())
	}

	var sub models.Submission
	if err := json.NewDecoder(rec.Body).Decode(&sub); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(sub.FileID, "submissions/") {
		t.Errorf("file id: got %q", sub.FileID)
	}
	if _, ok := e.blobs.objects[sub.FileID]; !ok {
		t.Error("file not stored")
	}

	got, err := e.tasks.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Status != models.StatusPending {
		t.Errorf("status: got %q, want pending", got.Status)
	}
}

func TestHandleSubmitForeignTask(t *testing.T) {
	e := setupEnv(t)
	ctx := testutil.TestContext(t)

	e.fx.CreateUser(ctx, "u-1", "Grace", "m-1")
	task := e.fx.CreateTask(ctx, "u-1", "Build a CLI", models.StatusNotStarted)

	rec := e.submit(t, map[string]string{
		"task_id": task.ID.Hex(),
	}, "solution.pdf", &auth.SessionUser{ID: "u-2", Role: auth.RoleMentee})

	if rec.Code != http.StatusForbidden {
		t.Errorf("code: got %d, want 403", rec.Code)
	}
}

func TestHandleSubmitAdminBypassesOwnership(t *testing.T) {
	e := setupEnv(t)
	ctx := testutil.TestContext(t)

	e.fx.CreateUser(ctx, "u-1", "Grace", "m-1")
	task := e.fx.CreateTask(ctx, "u-1", "Build a CLI", models.StatusNotStarted)

	rec := e.submit(t, map[string]string{
		"task_id": task.ID.Hex(),
		"link":    "https://example.com/work",
	}, "solution.pdf", &auth.SessionUser{ID: "a-1", Role: auth.RoleAdmin})

	if rec.Code != http.StatusOK {
		t.Errorf("code: got %d, body: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleSubmitValidation(t *testing.T) {
	e := setupEnv(t)
	ctx := testutil.TestContext(t)

	e.fx.CreateUser(ctx, "u-1", "Grace", "m-1")
	task := e.fx.CreateTask(ctx, "u-1", "Build a CLI", models.StatusNotStarted)

	t.Run("bad task id", func(t *testing.T) {
		rec := e.submit(t, map[string]string{"task_id": "nope"}, "", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code: got %d, want 400", rec.Code)
		}
	})

	t.Run("no file", func(t *testing.T) {
		rec := e.submit(t, map[string]string{"task_id": task.ID.Hex()}, "", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code: got %d, want 400", rec.Code)
		}
	})

	t.Run("link without file", func(t *testing.T) {
		rec := e.submit(t, map[string]string{
			"task_id": task.ID.Hex(),
			"link":    "https://example.com/work",
		}, "", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code: got %d, want 400", rec.Code)
		}
	})
}
