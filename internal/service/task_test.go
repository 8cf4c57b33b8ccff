package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklist/internal/filter"
	"github.com/BuzzLyutic/tasklist/internal/model"
	"github.com/BuzzLyutic/tasklist/internal/repo"
	"github.com/BuzzLyutic/tasklist/internal/testutil"
)

// MockKV - mock of the persistence adapter
type MockKV struct {
	mock.Mock
}

func (m *MockKV) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockKV) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func newStore(t *testing.T) (*TaskStore, *repo.MemoryKV) {
	t.Helper()
	kv := repo.NewMemoryKV()
	return NewTaskStore(kv, zap.NewNop(), WithIDGenerator(testutil.SequentialIDs())), kv
}

func persisted(t *testing.T, kv repo.KV) []model.Task {
	t.Helper()
	raw, found, err := kv.Get(context.Background(), DefaultTasksKey)
	require.NoError(t, err)
	require.True(t, found, "tasks should be persisted")

	var tasks []model.Task
	require.NoError(t, json.Unmarshal([]byte(raw), &tasks))
	return tasks
}

func TestTaskStore_Load(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*MockKV)
		want      []model.Task
	}{
		{
			name: "absent key",
			setupMock: func(m *MockKV) {
				m.On("Get", mock.Anything, DefaultTasksKey).Return("", false, nil)
			},
			want: []model.Task{},
		},
		{
			name: "malformed json",
			setupMock: func(m *MockKV) {
				m.On("Get", mock.Anything, DefaultTasksKey).Return("{oops", true, nil)
			},
			want: []model.Task{},
		},
		{
			name: "wrong shape",
			setupMock: func(m *MockKV) {
				m.On("Get", mock.Anything, DefaultTasksKey).Return(`{"id":"1"}`, true, nil)
			},
			want: []model.Task{},
		},
		{
			name: "json null",
			setupMock: func(m *MockKV) {
				m.On("Get", mock.Anything, DefaultTasksKey).Return("null", true, nil)
			},
			want: []model.Task{},
		},
		{
			name: "adapter error",
			setupMock: func(m *MockKV) {
				m.On("Get", mock.Anything, DefaultTasksKey).Return("", false, errors.New("disk on fire"))
			},
			want: []model.Task{},
		},
		{
			name: "valid collection",
			setupMock: func(m *MockKV) {
				raw, _ := json.Marshal(testutil.SampleTasks())
				m.On("Get", mock.Anything, DefaultTasksKey).Return(string(raw), true, nil)
			},
			want: testutil.SampleTasks(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockKV := new(MockKV)
			tt.setupMock(mockKV)

			store := NewTaskStore(mockKV, zap.NewNop())
			got := store.Load(context.Background())

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, store.Tasks())
			mockKV.AssertExpectations(t)
		})
	}
}

func TestTaskStore_LoadReplacesState(t *testing.T) {
	store, kv := newStore(t)
	ctx := context.Background()

	_, _, err := store.Create(ctx, "Temporary", model.CategoryOther, model.PriorityLow)
	require.NoError(t, err)

	require.NoError(t, kv.Set(ctx, DefaultTasksKey, "garbage"))
	assert.Empty(t, store.Load(ctx))
	assert.Empty(t, store.Tasks())
}

func TestTaskStore_Create(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		category model.Category
		priority model.Priority
		wantOK   bool
		wantTask model.Task
	}{
		{
			name:     "valid task",
			text:     "Buy milk",
			category: model.CategoryPersonal,
			priority: model.PriorityHigh,
			wantOK:   true,
			wantTask: model.Task{ID: "id-1", Text: "Buy milk", Category: model.CategoryPersonal, Priority: model.PriorityHigh},
		},
		{
			name:     "text is trimmed",
			text:     "  Call Bob \n",
			category: model.CategoryWork,
			priority: model.PriorityLow,
			wantOK:   true,
			wantTask: model.Task{ID: "id-1", Text: "Call Bob", Category: model.CategoryWork, Priority: model.PriorityLow},
		},
		{
			name:     "unknown tags fall back to defaults",
			text:     "Stretch",
			category: "Hobby",
			priority: "Urgent",
			wantOK:   true,
			wantTask: model.Task{ID: "id-1", Text: "Stretch", Category: model.CategoryPersonal, Priority: model.PriorityMedium},
		},
		{
			name:     "empty text",
			text:     "",
			category: model.CategoryWork,
			priority: model.PriorityHigh,
			wantOK:   false,
		},
		{
			name:     "whitespace text",
			text:     " \t ",
			category: model.CategoryWork,
			priority: model.PriorityHigh,
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, kv := newStore(t)

			task, ok, err := store.Create(context.Background(), tt.text, tt.category, tt.priority)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)

			if !tt.wantOK {
				assert.Empty(t, store.Tasks())
				_, found, _ := kv.Get(context.Background(), DefaultTasksKey)
				assert.False(t, found, "rejected create must not write")
				return
			}
			assert.Equal(t, tt.wantTask, task)
			assert.Equal(t, []model.Task{tt.wantTask}, persisted(t, kv))
		})
	}
}

func TestTaskStore_CreateRegeneratesCollidingIDs(t *testing.T) {
	ids := []string{"dup", "dup", "fresh"}
	store := NewTaskStore(repo.NewMemoryKV(), zap.NewNop(), WithIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))
	ctx := context.Background()

	first, _, err := store.Create(ctx, "one", model.CategoryWork, model.PriorityLow)
	require.NoError(t, err)
	second, _, err := store.Create(ctx, "two", model.CategoryWork, model.PriorityLow)
	require.NoError(t, err)

	assert.Equal(t, "dup", first.ID)
	assert.Equal(t, "fresh", second.ID)
}

func TestTaskStore_ScenarioMostRecentFirst(t *testing.T) {
	store, kv := newStore(t)
	ctx := context.Background()

	milk, ok, err := store.Create(ctx, "Buy milk", model.CategoryPersonal, model.PriorityHigh)
	require.NoError(t, err)
	require.True(t, ok)
	bob, ok, err := store.Create(ctx, "Call Bob", model.CategoryWork, model.PriorityLow)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, []model.Task{bob, milk}, store.Tasks())
	assert.Equal(t, []model.Task{bob, milk}, persisted(t, kv))

	t.Run("toggle then active filter", func(t *testing.T) {
		require.NoError(t, store.ToggleCompleted(ctx, milk.ID))

		visible := filter.Visible(store.Tasks(), filter.Criteria{Status: filter.StatusActive, Category: filter.CategoryAll})
		assert.Equal(t, []model.Task{bob}, visible)
	})

	t.Run("clear completed", func(t *testing.T) {
		removed, err := store.ClearCompleted(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		assert.Equal(t, []model.Task{bob}, store.Tasks())
		assert.Equal(t, []model.Task{bob}, persisted(t, kv))
	})
}

func TestTaskStore_ToggleCompleted(t *testing.T) {
	store, kv := newStore(t)
	ctx := context.Background()

	task, _, err := store.Create(ctx, "Toggle me", model.CategoryWork, model.PriorityMedium)
	require.NoError(t, err)

	require.NoError(t, store.ToggleCompleted(ctx, task.ID))
	assert.True(t, store.Tasks()[0].Completed)
	assert.True(t, persisted(t, kv)[0].Completed)

	require.NoError(t, store.ToggleCompleted(ctx, task.ID))
	assert.False(t, store.Tasks()[0].Completed)

	t.Run("unknown id is a no-op", func(t *testing.T) {
		before := store.Tasks()
		require.NoError(t, store.ToggleCompleted(ctx, "nope"))
		assert.Equal(t, before, store.Tasks())
	})
}

func TestTaskStore_UpdateText(t *testing.T) {
	store, kv := newStore(t)
	ctx := context.Background()

	task, _, err := store.Create(ctx, "Original", model.CategoryWork, model.PriorityMedium)
	require.NoError(t, err)

	tests := []struct {
		name     string
		id       string
		text     string
		wantOK   bool
		wantText string
	}{
		{name: "empty text keeps prior", id: task.ID, text: "", wantOK: false, wantText: "Original"},
		{name: "blank text keeps prior", id: task.ID, text: "   ", wantOK: false, wantText: "Original"},
		{name: "unknown id", id: "missing", text: "Ignored", wantOK: false, wantText: "Original"},
		{name: "replaces trimmed text", id: task.ID, text: "  Updated ", wantOK: true, wantText: "Updated"},
		{name: "empty after update still rejected", id: task.ID, text: "", wantOK: false, wantText: "Updated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := store.UpdateText(ctx, tt.id, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantText, store.Tasks()[0].Text)
			assert.Equal(t, tt.wantText, persisted(t, kv)[0].Text)
		})
	}
}

func TestTaskStore_Delete(t *testing.T) {
	store, kv := newStore(t)
	ctx := context.Background()

	a, _, _ := store.Create(ctx, "a", model.CategoryWork, model.PriorityLow)
	b, _, _ := store.Create(ctx, "b", model.CategoryWork, model.PriorityLow)
	c, _, _ := store.Create(ctx, "c", model.CategoryWork, model.PriorityLow)

	require.NoError(t, store.Delete(ctx, b.ID))
	assert.Equal(t, []model.Task{c, a}, store.Tasks())
	assert.Equal(t, []model.Task{c, a}, persisted(t, kv))

	require.NoError(t, store.Delete(ctx, "missing"))
	assert.Equal(t, []model.Task{c, a}, store.Tasks())
}

func TestTaskStore_ClearCompletedNothingToClear(t *testing.T) {
	mockKV := new(MockKV)
	store := NewTaskStore(mockKV, zap.NewNop())

	removed, err := store.ClearCompleted(context.Background())
	require.NoError(t, err)
	assert.Zero(t, removed)
	mockKV.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskStore_SaveError(t *testing.T) {
	mockKV := new(MockKV)
	mockKV.On("Set", mock.Anything, DefaultTasksKey, mock.Anything).Return(errors.New("read-only"))

	store := NewTaskStore(mockKV, zap.NewNop(), WithIDGenerator(testutil.SequentialIDs()))
	task, ok, err := store.Create(context.Background(), "Keep me", model.CategoryWork, model.PriorityLow)

	assert.Error(t, err)
	assert.True(t, ok)
	// the in-memory change survives; the next successful save catches up
	assert.Equal(t, []model.Task{task}, store.Tasks())
	mockKV.AssertExpectations(t)
}

func TestTaskStore_CustomKey(t *testing.T) {
	mockKV := new(MockKV)
	mockKV.On("Set", mock.Anything, "custom", mock.MatchedBy(func(v string) bool {
		return json.Valid([]byte(v))
	})).Return(nil)

	store := NewTaskStore(mockKV, zap.NewNop(), WithStorageKey("custom"))
	_, _, err := store.Create(context.Background(), "x", model.CategoryWork, model.PriorityLow)
	require.NoError(t, err)
	mockKV.AssertExpectations(t)
}

func TestTaskStore_RoundTrip(t *testing.T) {
	kv := repo.NewMemoryKV()
	ctx := context.Background()

	original := testutil.SampleTasks()
	original = append(original, model.Task{ID: "legacy", Text: "Unknown tags survive", Category: "Garden", Priority: "Someday"})

	raw, err := json.Marshal(original)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, DefaultTasksKey, string(raw)))

	store := NewTaskStore(kv, zap.NewNop())
	assert.Equal(t, original, store.Load(ctx))

	// a no-change mutation path still writes the collection back unchanged
	require.NoError(t, store.ToggleCompleted(ctx, "t1"))
	require.NoError(t, store.ToggleCompleted(ctx, "t1"))

	reloaded := NewTaskStore(kv, zap.NewNop())
	assert.Equal(t, original, reloaded.Load(ctx))
}

func TestTaskStore_Stats(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, _, err := store.Create(ctx, fmt.Sprintf("Task %d", i), model.CategoryWork, model.PriorityLow)
		require.NoError(t, err)
	}
	require.NoError(t, store.ToggleCompleted(ctx, store.Tasks()[0].ID))

	assert.Equal(t, Stats{Total: 4, Active: 3, Completed: 1}, store.Stats())
}

func TestTaskStore_TasksReturnsCopy(t *testing.T) {
	store, _ := newStore(t)
	_, _, err := store.Create(context.Background(), "immutable", model.CategoryWork, model.PriorityLow)
	require.NoError(t, err)

	tasks := store.Tasks()
	tasks[0].Text = "mutated"
	assert.Equal(t, "immutable", store.Tasks()[0].Text)
}
