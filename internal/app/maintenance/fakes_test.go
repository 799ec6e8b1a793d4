package maintenance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mentorstack/mentorhub/internal/domain/models"
)

type memUsers struct {
	users []models.User

	pushed      map[string][]primitive.ObjectID
	failPushFor string
	listErr     error
}

func newMemUsers(ids ...string) *memUsers {
	m := &memUsers{pushed: map[string][]primitive.ObjectID{}}
	for _, id := range ids {
		m.users = append(m.users, models.User{
			ID:         primitive.NewObjectID(),
			BusinessID: id,
			FullName:   "User " + id,
		})
	}
	return m
}

func (m *memUsers) List(context.Context) ([]models.User, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.users, nil
}

func (m *memUsers) PushAssigned(_ context.Context, userID string, taskID primitive.ObjectID) error {
	if userID == m.failPushFor {
		return errors.New("push failed")
	}
	m.pushed[userID] = append(m.pushed[userID], taskID)
	return nil
}

type memTasks struct {
	tasks map[primitive.ObjectID]models.Task

	createErrFor string // owner id whose creates fail
	listErr      error
}

func newMemTasks() *memTasks {
	return &memTasks{tasks: map[primitive.ObjectID]models.Task{}}
}

func (m *memTasks) add(t models.Task) models.Task {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	m.tasks[t.ID] = t
	return t
}

func (m *memTasks) Create(_ context.Context, t models.Task) (models.Task, error) {
	if t.OwnerID == m.createErrFor {
		return models.Task{}, errors.New("create failed")
	}
	t.ID = primitive.NewObjectID()
	m.tasks[t.ID] = t
	return t, nil
}

func (m *memTasks) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	if _, ok := m.tasks[id]; !ok {
		return 0, nil
	}
	delete(m.tasks, id)
	return 1, nil
}

func (m *memTasks) FindCurriculumTask(_ context.Context, ownerID, title string) (*models.Task, error) {
	for _, t := range m.tasks {
		if t.OwnerID == ownerID && t.Title == title {
			cp := t
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memTasks) ListCompletedCurriculum(_ context.Context, title string) ([]models.Task, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.Task
	for _, t := range m.tasks {
		if t.Status == models.StatusCompleted && t.DSAProblemID > 0 && t.Title == title {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTasks) Advance(_ context.Context, id primitive.ObjectID, problemID int, description string, resources map[string]string) error {
	t, ok := m.tasks[id]
	if !ok || t.Status != models.StatusCompleted {
		return fmt.Errorf("task %s no longer completed", id.Hex())
	}
	t.DSAProblemID = problemID
	t.Description = description
	t.Resources = resources
	t.Status = models.StatusNotStarted
	m.tasks[id] = t
	return nil
}

func (m *memTasks) ListWithSubmissions(_ context.Context, excludeTitle string) ([]models.Task, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.Task
	for _, t := range m.tasks {
		if t.Submission != nil && t.Submission.FileID != "" && t.Title != excludeTitle {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTasks) ResetStale(_ context.Context, id primitive.ObjectID, submittedBefore time.Time) (bool, error) {
	t, ok := m.tasks[id]
	if !ok || t.Status != models.StatusPending || t.Submission == nil {
		return false, nil
	}
	if t.Submission.SubmittedAt.After(submittedBefore) {
		return false, nil
	}
	t.Status = models.StatusNotStarted
	m.tasks[id] = t
	return true, nil
}

func (m *memTasks) ClearExpiredSubmission(_ context.Context, id primitive.ObjectID, fileID string) (bool, error) {
	t, ok := m.tasks[id]
	if !ok || t.Status != models.StatusCompleted || t.Submission == nil || t.Submission.FileID != fileID {
		return false, nil
	}
	t.Submission = nil
	m.tasks[id] = t
	return true, nil
}

type memBlobs struct {
	objects map[string]struct{}
	failFor string
}

func newMemBlobs(keys ...string) *memBlobs {
	m := &memBlobs{objects: map[string]struct{}{}}
	for _, k := range keys {
		m.objects[k] = struct{}{}
	}
	return m
}

func (m *memBlobs) Delete(_ context.Context, path string) error {
	if path == m.failFor {
		return errors.New("delete failed")
	}
	delete(m.objects, path)
	return nil
}
