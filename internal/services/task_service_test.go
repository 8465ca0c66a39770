package services

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/store"
)

// --- fakes ---

type fakeStore struct {
	mu         sync.Mutex
	partitions map[string]map[string][]byte
	calls      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{partitions: make(map[string]map[string][]byte)}
}

func (f *fakeStore) Put(_ context.Context, partition, key string, doc []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.partitions[partition] == nil {
		f.partitions[partition] = make(map[string][]byte)
	}
	f.partitions[partition][key] = doc
	return nil
}

func (f *fakeStore) Get(_ context.Context, partition, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	doc, ok := f.partitions[partition][key]
	if !ok {
		return nil, store.ErrDocNotFound
	}
	return doc, nil
}

func (f *fakeStore) ListAll(_ context.Context, partition string) ([][]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	docs := make([][]byte, 0, len(f.partitions[partition]))
	for _, doc := range f.partitions[partition] {
		docs = append(docs, doc)
	}
	return docs, nil
}

func (f *fakeStore) Update(_ context.Context, partition, key string, doc []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if _, ok := f.partitions[partition][key]; !ok {
		return store.ErrDocNotFound
	}
	f.partitions[partition][key] = doc
	return nil
}

func (f *fakeStore) Delete(_ context.Context, partition, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if _, ok := f.partitions[partition][key]; !ok {
		return store.ErrDocNotFound
	}
	delete(f.partitions[partition], key)
	return nil
}

func strPtr(s string) *string { return &s }

func setString(v string) models.OptionalString {
	return models.OptionalString{Set: true, Valid: true, Value: v}
}

func nullString() models.OptionalString {
	return models.OptionalString{Set: true}
}

// --- tests ---

func TestTaskService_CreateAndGet(t *testing.T) {
	svc := NewTaskService(zerolog.Nop(), newFakeStore())
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "alice", CreateTaskParams{Title: "Buy groceries"})
	require.NoError(t, err)
	require.NotEmpty(t, created.TaskID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := svc.GetTask(ctx, "alice", created.TaskID)
	require.NoError(t, err)
	assert.Equal(t, "Buy groceries", got.Title)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.Status)
	assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))
}

func TestTaskService_GetTasksEmpty(t *testing.T) {
	svc := NewTaskService(zerolog.Nop(), newFakeStore())

	tasks, err := svc.GetTasks(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestTaskService_PartitionIsolation(t *testing.T) {
	svc := NewTaskService(zerolog.Nop(), newFakeStore())
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "alice", CreateTaskParams{Title: "private"})
	require.NoError(t, err)

	_, err = svc.GetTask(ctx, "bob", created.TaskID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	tasks, err := svc.GetTasks(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, tasks)

	_, err = svc.UpdateTask(ctx, "bob", created.TaskID, TaskPatch{})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	err = svc.DeleteTask(ctx, "bob", created.TaskID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	// Alice still sees her task.
	_, err = svc.GetTask(ctx, "alice", created.TaskID)
	require.NoError(t, err)
}

func TestTaskService_EmptyPatchRefreshesUpdatedAt(t *testing.T) {
	svc := NewTaskService(zerolog.Nop(), newFakeStore())
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "alice", CreateTaskParams{
		Title:       "task",
		Description: strPtr("desc"),
		Status:      strPtr("open"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTask(ctx, "alice", created.TaskID, TaskPatch{})
	require.NoError(t, err)

	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.Status, updated.Status)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
}

func TestTaskService_PartialUpdate(t *testing.T) {
	svc := NewTaskService(zerolog.Nop(), newFakeStore())
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "alice", CreateTaskParams{
		Title:       "task",
		Description: strPtr("desc"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTask(ctx, "alice", created.TaskID, TaskPatch{
		Status: setString("done"),
	})
	require.NoError(t, err)

	require.NotNil(t, updated.Status)
	assert.Equal(t, "done", *updated.Status)
	assert.Equal(t, "task", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "desc", *updated.Description)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestTaskService_NullClearsField(t *testing.T) {
	svc := NewTaskService(zerolog.Nop(), newFakeStore())
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "alice", CreateTaskParams{
		Title:       "task",
		Description: strPtr("desc"),
		Status:      strPtr("open"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTask(ctx, "alice", created.TaskID, TaskPatch{
		Description: nullString(),
	})
	require.NoError(t, err)

	assert.Nil(t, updated.Description)
	require.NotNil(t, updated.Status)
	assert.Equal(t, "open", *updated.Status)
}

func TestTaskService_NullTitleRejected(t *testing.T) {
	svc := NewTaskService(zerolog.Nop(), newFakeStore())
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "alice", CreateTaskParams{Title: "task"})
	require.NoError(t, err)

	_, err = svc.UpdateTask(ctx, "alice", created.TaskID, TaskPatch{
		Title: nullString(),
	})
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestTaskService_DeleteThenGet(t *testing.T) {
	svc := NewTaskService(zerolog.Nop(), newFakeStore())
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "alice", CreateTaskParams{Title: "task"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(ctx, "alice", created.TaskID))

	_, err = svc.GetTask(ctx, "alice", created.TaskID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskService_SecondDeleteFails(t *testing.T) {
	svc := NewTaskService(zerolog.Nop(), newFakeStore())
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "alice", CreateTaskParams{Title: "task"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(ctx, "alice", created.TaskID))

	err = svc.DeleteTask(ctx, "alice", created.TaskID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}
