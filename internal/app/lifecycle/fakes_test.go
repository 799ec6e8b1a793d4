package lifecycle_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mentorstack/mentorhub/internal/app/system/apperrors"
	"github.com/mentorstack/mentorhub/internal/domain/models"
)

// fakeTasks is an in-memory task store.
type fakeTasks struct {
	tasks map[primitive.ObjectID]models.Task

	failSetSubmission bool
	failDelete        bool
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{tasks: map[primitive.ObjectID]models.Task{}}
}

func (f *fakeTasks) Create(_ context.Context, t models.Task) (models.Task, error) {
	t.ID = primitive.NewObjectID()
	if t.Status == "" {
		t.Status = models.StatusNotStarted
	}
	f.tasks[t.ID] = t
	return t, nil
}

func (f *fakeTasks) GetByID(_ context.Context, id primitive.ObjectID) (*models.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: task %s", apperrors.ErrNotFound, id.Hex())
	}
	cp := t
	if t.Submission != nil {
		sub := *t.Submission
		cp.Submission = &sub
	}
	return &cp, nil
}

func (f *fakeTasks) List(_ context.Context) ([]models.Task, error) {
	out := make([]models.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (f *fakeTasks) ListByOwner(_ context.Context, ownerID string) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.tasks {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTasks) SetStatus(_ context.Context, id primitive.ObjectID, status models.TaskStatus) error {
	t, ok := f.tasks[id]
	if !ok {
		return fmt.Errorf("%w: task %s", apperrors.ErrNotFound, id.Hex())
	}
	t.Status = status
	f.tasks[id] = t
	return nil
}

func (f *fakeTasks) SetSubmission(_ context.Context, id primitive.ObjectID, sub models.Submission) error {
	if f.failSetSubmission {
		return errors.New("save failed")
	}
	t, ok := f.tasks[id]
	if !ok {
		return fmt.Errorf("%w: task %s", apperrors.ErrNotFound, id.Hex())
	}
	t.Submission = &sub
	t.Status = models.StatusPending
	f.tasks[id] = t
	return nil
}

func (f *fakeTasks) ClearSubmission(_ context.Context, id primitive.ObjectID, status models.TaskStatus) error {
	t, ok := f.tasks[id]
	if !ok {
		return fmt.Errorf("%w: task %s", apperrors.ErrNotFound, id.Hex())
	}
	t.Submission = nil
	t.Status = status
	f.tasks[id] = t
	return nil
}

func (f *fakeTasks) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	if f.failDelete {
		return 0, errors.New("delete failed")
	}
	if _, ok := f.tasks[id]; !ok {
		return 0, nil
	}
	delete(f.tasks, id)
	return 1, nil
}

// fakeUsers is an in-memory user store keyed by business id.
type fakeUsers struct {
	users map[string]models.User

	failPush bool
}

func newFakeUsers(ids ...string) *fakeUsers {
	f := &fakeUsers{users: map[string]models.User{}}
	for _, id := range ids {
		f.users[id] = models.User{
			ID:         primitive.NewObjectID(),
			BusinessID: id,
			FullName:   "User " + id,
		}
	}
	return f
}

func (f *fakeUsers) GetByBusinessID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %q", apperrors.ErrNotFound, id)
	}
	cp := u
	return &cp, nil
}

func (f *fakeUsers) PushAssigned(_ context.Context, userID string, taskID primitive.ObjectID) error {
	if f.failPush {
		return errors.New("push failed")
	}
	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("%w: user %q", apperrors.ErrNotFound, userID)
	}
	u.TaskAssign = append(u.TaskAssign, taskID)
	f.users[userID] = u
	return nil
}

func (f *fakeUsers) MoveAssignedToDone(_ context.Context, userID string, taskID primitive.ObjectID) error {
	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("%w: user %q", apperrors.ErrNotFound, userID)
	}
	u.TaskAssign = removeRef(u.TaskAssign, taskID)
	u.TaskDone = append(u.TaskDone, taskID)
	f.users[userID] = u
	return nil
}

func (f *fakeUsers) PullTaskRefs(_ context.Context, userID string, taskID primitive.ObjectID) (int64, error) {
	u, ok := f.users[userID]
	if !ok {
		return 0, nil
	}
	u.TaskAssign = removeRef(u.TaskAssign, taskID)
	u.TaskDone = removeRef(u.TaskDone, taskID)
	f.users[userID] = u
	return 1, nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return fmt.Errorf("%w: user %q", apperrors.ErrNotFound, id)
	}
	delete(f.users, id)
	return nil
}

func removeRef(refs []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := refs[:0]
	for _, r := range refs {
		if r != id {
			out = append(out, r)
		}
	}
	return out
}

func hasRef(refs []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, r := range refs {
		if r == id {
			return true
		}
	}
	return false
}

// fakeCompleted records journal entries.
type fakeCompleted struct {
	entries []models.CompletedTask
}

func (f *fakeCompleted) Create(_ context.Context, e models.CompletedTask) (models.CompletedTask, error) {
	e.ID = primitive.NewObjectID()
	f.entries = append(f.entries, e)
	return e, nil
}

// fakeBlobs is an in-memory blob store.
type fakeBlobs struct {
	objects map[string][]byte

	failPut    bool
	failDelete bool
	deleted    []string
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: map[string][]byte{}}
}

func (f *fakeBlobs) Put(_ context.Context, path string, r io.Reader, _ *storage.PutOptions) error {
	if f.failPut {
		return errors.New("put failed")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[path] = data
	return nil
}

func (f *fakeBlobs) Delete(_ context.Context, path string) error {
	if f.failDelete {
		return errors.New("delete failed")
	}
	if _, ok := f.objects[path]; !ok {
		return fmt.Errorf("%w: blob %q", apperrors.ErrNotFound, path)
	}
	delete(f.objects, path)
	f.deleted = append(f.deleted, path)
	return nil
}
