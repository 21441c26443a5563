package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tareas/internal/service"
	"tareas/internal/store"
)

func newTestService(t *testing.T) *service.TaskService {
	t.Helper()
	s, err := store.NewSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return service.NewTaskService(s)
}

func TestTaskService_CreateReturnsStoredRecord(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	milk, err := svc.Create(ctx, "Buy milk")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", milk.Descripcion)
	assert.False(t, milk.Completada)
	assert.NotZero(t, milk.ID)
	assert.False(t, milk.FechaCreacion.IsZero())

	dog, err := svc.Create(ctx, "Walk dog")
	require.NoError(t, err)
	assert.Greater(t, dog.ID, milk.ID)

	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, dog.ID, tasks[0].ID)
	assert.Equal(t, milk.ID, tasks[1].ID)
}

func TestTaskService_CreateRejectsEmpty(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, d := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(ctx, d)
		assert.ErrorIs(t, err, service.ErrInvalidInput, "descripcion %q", d)
	}

	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskService_UpdateStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	milk, err := svc.Create(ctx, "Buy milk")
	require.NoError(t, err)
	dog, err := svc.Create(ctx, "Walk dog")
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, milk.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Completada)
	assert.Equal(t, milk.Descripcion, updated.Descripcion)
	assert.Equal(t, milk.FechaCreacion, updated.FechaCreacion)

	again, err := svc.UpdateStatus(ctx, milk.ID, true)
	require.NoError(t, err)
	assert.Equal(t, updated, again)

	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, dog.ID, tasks[0].ID)
	assert.Equal(t, milk.ID, tasks[1].ID)
	assert.True(t, tasks[1].Completada)
}

func TestTaskService_UpdateStatusUnknownID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Buy milk")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, 999, true)
	assert.ErrorIs(t, err, service.ErrNotFound)

	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.False(t, tasks[0].Completada)
}

func TestTaskService_DeleteAll(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, d := range []string{"one", "two"} {
		_, err := svc.Create(ctx, d)
		require.NoError(t, err)
	}

	require.NoError(t, svc.DeleteAll(ctx))

	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

// brokenStore fails every call.
type brokenStore struct{ err error }

func (b brokenStore) Insert(context.Context, string) (int64, error) { return 0, b.err }
func (b brokenStore) Get(context.Context, int64) (service.Task, error) {
	return service.Task{}, b.err
}
func (b brokenStore) List(context.Context) ([]service.Task, error)     { return nil, b.err }
func (b brokenStore) UpdateCompleted(context.Context, int64, bool) error { return b.err }
func (b brokenStore) DeleteAll(context.Context) error                   { return b.err }
func (b brokenStore) Ping(context.Context) error                        { return b.err }
func (b brokenStore) Close()                                            {}

func TestTaskService_StoreFailuresAreUnavailable(t *testing.T) {
	cause := errors.New("connection refused")
	svc := service.NewTaskService(brokenStore{err: cause})
	ctx := context.Background()

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, service.ErrUnavailable)
	assert.ErrorIs(t, err, cause)

	_, err = svc.Create(ctx, "Buy milk")
	assert.ErrorIs(t, err, service.ErrUnavailable)

	_, err = svc.UpdateStatus(ctx, 1, true)
	assert.ErrorIs(t, err, service.ErrUnavailable)
	assert.NotErrorIs(t, err, service.ErrNotFound)

	err = svc.DeleteAll(ctx)
	assert.ErrorIs(t, err, service.ErrUnavailable)
}
