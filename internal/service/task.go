package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklist/internal/model"
	"github.com/BuzzLyutic/tasklist/internal/repo"
)

const DefaultTasksKey = "todo_tasks_v1"

type Stats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// TaskStore хранит упорядоченный список задач (новые сверху) и после каждого
// изменения записывает всю коллекцию обратно в KV.
type TaskStore struct {
	mu     sync.Mutex
	kv     repo.KV
	logger *zap.Logger
	key    string
	newID  func() string
	tasks  []model.Task
}

type Option func(*TaskStore)

func WithIDGenerator(gen func() string) Option {
	return func(s *TaskStore) { s.newID = gen }
}

func WithStorageKey(key string) Option {
	return func(s *TaskStore) {
		if key != "" {
			s.key = key
		}
	}
}

func NewTaskStore(kv repo.KV, logger *zap.Logger, opts ...Option) *TaskStore {
	s := &TaskStore{
		kv:     kv,
		logger: logger,
		key:    DefaultTasksKey,
		newID:  uuid.NewString,
		tasks:  []model.Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load заменяет список в памяти сохраненным. Отсутствующие или битые данные
// дают пустой список.
func (s *TaskStore) Load(ctx context.Context) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = []model.Task{}

	raw, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("failed to read tasks, starting empty", zap.String("key", s.key), zap.Error(err))
		return s.snapshot()
	}
	if !found {
		return s.snapshot()
	}

	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		s.logger.Warn("malformed tasks data, starting empty", zap.String("key", s.key), zap.Error(err))
		return s.snapshot()
	}
	if tasks != nil {
		s.tasks = tasks
	}
	return s.snapshot()
}

func (s *TaskStore) Create(ctx context.Context, text string, category model.Category, priority model.Priority) (model.Task, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" { // Пустой текст молча отклоняем
		return model.Task{}, false, nil
	}
	if !category.Valid() {
		category = model.CategoryPersonal
	}
	if !priority.Valid() {
		priority = model.PriorityMedium
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Создание новой задачи
	t := model.Task{
		ID:       s.uniqueID(),
		Text:     text,
		Category: category,
		Priority: priority,
	}
	s.tasks = append([]model.Task{t}, s.tasks...)

	// Сохранение всей коллекции
	return t, true, s.save(ctx)
}

func (s *TaskStore) ToggleCompleted(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.save(ctx)
}

// UpdateText возвращает false, если ничего не изменилось: пустой текст или неизвестный id.
func (s *TaskStore) UpdateText(ctx context.Context, id, newText string) (bool, error) {
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.tasks[i].Text = newText
	return true, s.save(ctx)
}

func (s *TaskStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	return s.save(ctx)
}

func (s *TaskStore) ClearCompleted(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	s.tasks = kept
	return removed, s.save(ctx)
}

func (s *TaskStore) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *TaskStore) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			st.Completed++
		}
	}
	st.Active = st.Total - st.Completed
	return st
}

func (s *TaskStore) save(ctx context.Context) error {
	raw, err := json.Marshal(s.tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(raw)); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func (s *TaskStore) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) uniqueID() string {
	for {
		id := s.newID()
		if s.indexOf(id) < 0 {
			return id
		}
	}
}

func (s *TaskStore) snapshot() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}
