package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tasklet/core/internal/domain/entities"
	"github.com/tasklet/core/internal/infrastructure/logger"
	"github.com/tasklet/core/internal/ports"
)

// TaskService handles task operations scoped to one authenticated user
type TaskService struct {
	taskRepo ports.TaskRepository
	logger   *logger.Logger
	now      func() time.Time
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// ListTasks returns the user's full task array, never nil
func (s *TaskService) ListTasks(ctx context.Context, userID string) ([]entities.Task, error) {
	tasks, err := s.taskRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask validates the title, fills defaults and appends the task
func (s *TaskService) CreateTask(ctx context.Context, userID string, req ports.CreateTaskRequest) (*entities.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, entities.ErrTitleRequired
	}

	now := s.now()
	task := entities.Task{
		ID:         uuid.NewString(),
		Title:      title,
		SubTasks:   []entities.SubTask{},
		Percentage: 0,
		Date:       req.Date,
		Time:       req.Time,
		Icon:       req.Icon,
	}
	if task.Date == "" {
		task.Date = now.Format("2006-01-02")
	}
	if task.Time == "" {
		task.Time = now.Format("15:04")
	}

	created, err := s.taskRepo.Create(ctx, userID, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("Task created", "task_id", created.ID, "user_id", userID, "title", created.Title)

	return created, nil
}

// UpdateTask merges the request over the stored task. A present
// subTasks array is normalized and the completion percentage is
// recomputed from it; when subTasks is absent the stored percentage is
// left as-is.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID string, req ports.UpdateTaskRequest) (*entities.Task, error) {
	updated, err := s.taskRepo.Update(ctx, userID, taskID, func(task *entities.Task) error {
		if req.Title != nil {
			task.Title = *req.Title
		}
		if req.Date != nil {
			task.Date = *req.Date
		}
		if req.Time != nil {
			task.Time = *req.Time
		}
		if req.Icon != nil {
			task.Icon = *req.Icon
		}
		if req.SubTasks != nil {
			task.SubTasks = normalizeSubTasks(*req.SubTasks)
			task.Percentage = entities.CompletionPercentage(task.SubTasks)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Task updated", "task_id", taskID, "user_id", userID, "percentage", updated.Percentage)

	return updated, nil
}

// DeleteTask removes the task from the user's list
func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	if err := s.taskRepo.Delete(ctx, userID, taskID); err != nil {
		return err
	}

	s.logger.Info("Task deleted", "task_id", taskID, "user_id", userID)

	return nil
}

// normalizeSubTasks coerces client-supplied subtasks into storable
// records: missing ids are generated, title and description are trimmed
// (defaulting to the empty string) and completed is coerced to bool.
func normalizeSubTasks(payload []ports.SubTaskPayload) []entities.SubTask {
	subs := make([]entities.SubTask, 0, len(payload))
	for _, p := range payload {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			id = uuid.NewString()
		}
		subs = append(subs, entities.SubTask{
			ID:          id,
			Title:       strings.TrimSpace(p.Title),
			Description: strings.TrimSpace(p.Description),
			Completed:   bool(p.Completed),
		})
	}
	return subs
}
