package db

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/balkashynov/hwk/internal/models"
	"github.com/balkashynov/hwk/internal/parser"
)

// CreateTaskRequest holds the data needed to create a new task
type CreateTaskRequest struct {
	Title       string
	Description string
	Subject     models.Subject  // empty means other
	Priority    models.Priority // empty means medium
	Deadline    time.Time
	Source      models.Source // empty means manual
}

// TaskQueryOptions filters and orders ListTasks
type TaskQueryOptions struct {
	Subject  models.Subject  // empty for all
	Priority models.Priority // empty for all
	Status   string          // all, pending, completed
	SortBy   string          // deadline, priority, subject
}

// Statuses accepted by TaskQueryOptions.Status
const (
	StatusAll       = "all"
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// CreateTask validates the request and stores a new task
func (s *Store) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	task, err := newTask(req)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, err
	}

	s.log.Debug("task created", zap.String("id", task.ID), zap.String("source", string(task.Source)))
	return &task, nil
}

// newTask fills defaults and assigns a fresh ID
func newTask(req CreateTaskRequest) (models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return models.Task{}, fmt.Errorf("title cannot be empty")
	}
	if req.Deadline.IsZero() {
		return models.Task{}, fmt.Errorf("deadline is required")
	}

	task := models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Subject:     req.Subject,
		Priority:    req.Priority,
		Deadline:    parser.DateOnly(req.Deadline),
		Source:      req.Source,
	}
	if task.Subject == "" {
		task.Subject = models.SubjectOther
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Source == "" {
		task.Source = models.SourceManual
	}
	return task, nil
}

// GetTask retrieves a task by its full ID
func (s *Store) GetTask(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	err := s.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("task %s: %w", id, ErrTaskNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// FindTask retrieves a task by ID or by a unique ID prefix
func (s *Store) FindTask(ctx context.Context, idOrPrefix string) (*models.Task, error) {
	idOrPrefix = strings.ToLower(strings.TrimSpace(idOrPrefix))
	if idOrPrefix == "" {
		return nil, fmt.Errorf("task ID cannot be empty")
	}

	var tasks []models.Task
	err := s.db.WithContext(ctx).
		Where("id LIKE ?", escapeLike(idOrPrefix)+"%").
		Limit(2).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	switch len(tasks) {
	case 0:
		return nil, fmt.Errorf("task %s: %w", idOrPrefix, ErrTaskNotFound)
	case 1:
		return &tasks[0], nil
	default:
		return nil, fmt.Errorf("task ID prefix %s is ambiguous, use more characters", idOrPrefix)
	}
}

// escapeLike drops LIKE wildcards from user input; IDs never contain them
func escapeLike(s string) string {
	return strings.NewReplacer("%", "", "_", "").Replace(s)
}

// ListTasks retrieves tasks with optional filters
func (s *Store) ListTasks(ctx context.Context, opts TaskQueryOptions) ([]models.Task, error) {
	query := s.db.WithContext(ctx).Model(&models.Task{})

	if opts.Subject != "" {
		query = query.Where("subject = ?", opts.Subject)
	}
	if opts.Priority != "" {
		query = query.Where("priority = ?", opts.Priority)
	}

	switch opts.Status {
	case "", StatusAll:
	case StatusPending:
		query = query.Where("completed = ?", false)
	case StatusCompleted:
		query = query.Where("completed = ?", true)
	default:
		return nil, fmt.Errorf("invalid status '%s'. Use: all, pending, completed", opts.Status)
	}

	order, err := orderClause(opts.SortBy)
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := query.Order(order).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// orderClause maps a sort key to SQL
func orderClause(sortBy string) (string, error) {
	switch sortBy {
	case "", "deadline":
		return "deadline ASC, created_at ASC", nil
	case "priority":
		return "CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 WHEN 'low' THEN 1 ELSE 0 END DESC, deadline ASC", nil
	case "subject":
		return "subject ASC, deadline ASC", nil
	default:
		return "", fmt.Errorf("invalid sort '%s'. Use: deadline, priority, subject", sortBy)
	}
}

// UpdateTask saves every field of an existing task
func (s *Store) UpdateTask(ctx context.Context, task *models.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return fmt.Errorf("title cannot be empty")
	}
	task.Deadline = parser.DateOnly(task.Deadline)

	result := s.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", task.ID).Updates(map[string]any{
		"title":       task.Title,
		"description": task.Description,
		"subject":     task.Subject,
		"priority":    task.Priority,
		"deadline":    task.Deadline,
		"completed":   task.Completed,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("task %s: %w", task.ID, ErrTaskNotFound)
	}
	return nil
}

// MarkTaskDone marks a task as completed
func (s *Store) MarkTaskDone(ctx context.Context, id string) (*models.Task, error) {
	return s.setCompleted(ctx, id, true)
}

// MarkTaskUndone moves a completed task back to pending
func (s *Store) MarkTaskUndone(ctx context.Context, id string) (*models.Task, error) {
	return s.setCompleted(ctx, id, false)
}

// ToggleTask flips the completion flag
func (s *Store) ToggleTask(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.setCompleted(ctx, id, !task.Completed)
}

func (s *Store) setCompleted(ctx context.Context, id string, completed bool) (*models.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if task.Completed == completed {
		if completed {
			return nil, fmt.Errorf("task %s is already completed", shortID(id))
		}
		return nil, fmt.Errorf("task %s is not completed", shortID(id))
	}

	task.Completed = completed
	if err := s.db.WithContext(ctx).Model(task).Update("completed", completed).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task and its feedback
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Task{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("task %s: %w", id, ErrTaskNotFound)
		}
		return tx.Delete(&models.Feedback{}, "task_id = ?", id).Error
	})
}

// ClearTasks removes every task and its feedback, returning how many tasks
// were deleted
func (s *Store) ClearTasks(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		result := all.Delete(&models.Task{})
		if result.Error != nil {
			return result.Error
		}
		count = result.RowsAffected
		return all.Delete(&models.Feedback{}).Error
	})
	if err != nil {
		return 0, err
	}
	s.log.Debug("tasks cleared", zap.Int64("count", count))
	return count, nil
}

// Load returns the whole task list in creation order
func (s *Store) Load(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Save replaces the whole task list. Last write wins.
func (s *Store) Save(ctx context.Context, tasks []models.Task) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if len(tasks) == 0 {
			return nil
		}

		rows := make([]models.Task, len(tasks))
		seen := make(map[string]bool, len(tasks))
		stamp := time.Now()
		for i, task := range tasks {
			if task.ID == "" {
				task.ID = uuid.NewString()
			}
			// Load orders by creation time, so unsaved tasks keep slice order
			if task.CreatedAt.IsZero() {
				task.CreatedAt = stamp.Add(time.Duration(i) * time.Millisecond)
			}
			if seen[task.ID] {
				return fmt.Errorf("duplicate task ID %s", task.ID)
			}
			seen[task.ID] = true
			task.Deadline = parser.DateOnly(task.Deadline)
			rows[i] = task
		}
		return tx.CreateInBatches(&rows, 100).Error
	})
}

// shortID returns the first 8 characters of an ID for messages
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// SearchTasks finds tasks whose title, description or subject contain query
// (case insensitive), applying the same filters as ListTasks. Results are
// ranked exact > prefix > contains, then by deadline.
func (s *Store) SearchTasks(ctx context.Context, query string, opts TaskQueryOptions) ([]models.Task, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	opts.SortBy = "deadline"
	tasks, err := s.ListTasks(ctx, opts)
	if err != nil {
		return nil, err
	}

	type match struct {
		task models.Task
		rank int
	}
	var matches []match
	for _, task := range tasks {
		if rank := searchRank(task, query); rank > 0 {
			matches = append(matches, match{task: task, rank: rank})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].rank > matches[j].rank
	})

	result := make([]models.Task, 0, len(matches))
	for _, m := range matches {
		result = append(result, m.task)
	}
	return result, nil
}

// searchRank scores how well a task matches; zero means no match
func searchRank(task models.Task, query string) int {
	title := strings.ToLower(task.Title)
	switch {
	case title == query:
		return 4
	case strings.HasPrefix(title, query):
		return 3
	case strings.Contains(title, query):
		return 2
	case strings.Contains(strings.ToLower(task.Description), query),
		string(task.Subject) == query:
		return 1
	default:
		return 0
	}
}
