package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/segyhp/miniapps-backend/internal/domain"
	"github.com/segyhp/miniapps-backend/internal/repository"
	apperrors "github.com/segyhp/miniapps-backend/pkg/errors"
	"github.com/segyhp/miniapps-backend/pkg/utils"
)

type TaskService struct {
	taskRepo repository.TaskRepository
}

func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// CreateTask validates and persists a new task for the caller.
func (s *TaskService) CreateTask(ctx context.Context, caller *domain.User, request *domain.CreateTaskRequest) (*domain.Task, error) {
	category := request.Category
	if category == "" {
		category = domain.CategoryOthers
	}

	timeOfDay := request.Time
	if timeOfDay == "" {
		timeOfDay = utils.FullDay
	}

	dueDate, err := s.validateSchedule(request.DueDate, timeOfDay)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task := &domain.Task{
		ID:          uuid.New(),
		UserID:      caller.ID,
		Title:       request.Title,
		Description: request.Description,
		DueDate:     dueDate,
		Time:        timeOfDay,
		Category:    category,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return task, nil
}

// ListTasks returns all tasks owned by the caller.
func (s *TaskService) ListTasks(ctx context.Context, caller *domain.User) ([]*domain.Task, error) {
	tasks, err := s.taskRepo.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return tasks, nil
}

// ViewTask returns a single task. Tasks are strictly owner-scoped.
func (s *TaskService) ViewTask(ctx context.Context, caller *domain.User, taskID uuid.UUID) (*domain.Task, error) {
	return s.getOwnedTask(ctx, caller, taskID)
}

// EditTask applies a partial update, re-validating the schedule exactly as
// on creation. Completed tasks are immutable.
func (s *TaskService) EditTask(ctx context.Context, caller *domain.User, taskID uuid.UUID, patch *domain.UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.getOwnedTask(ctx, caller, taskID)
	if err != nil {
		return nil, err
	}

	if task.Completed {
		return nil, apperrors.NewConflict("completed tasks cannot be edited")
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Category != nil {
		task.Category = *patch.Category
	}
	if patch.Time != nil {
		task.Time = *patch.Time
	}

	dueDate := task.DueDate.Format(utils.DueDateLayout)
	if patch.DueDate != nil {
		dueDate = *patch.DueDate
	}

	task.DueDate, err = s.validateSchedule(dueDate, task.Time)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return task, nil
}

// MarkCompleted flips a task to completed. The write is acknowledged before
// the response, and a second completion is a conflict.
func (s *TaskService) MarkCompleted(ctx context.Context, caller *domain.User, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.getOwnedTask(ctx, caller, taskID)
	if err != nil {
		return nil, err
	}

	if task.Completed {
		return nil, apperrors.NewConflict("task is already completed")
	}

	task.Completed = true
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return task, nil
}

// ListByCategory returns the caller's tasks in one category. The category is
// checked against the enum before touching storage.
func (s *TaskService) ListByCategory(ctx context.Context, caller *domain.User, category string) ([]*domain.Task, error) {
	if !domain.IsValidCategory(category) {
		return nil, apperrors.NewValidation("category must be one of WORK, PERSONAL, SHOPPING, OTHERS")
	}

	tasks, err := s.taskRepo.ListByUserAndCategory(ctx, caller.ID, category)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return tasks, nil
}

// DeleteTask permanently removes a task.
func (s *TaskService) DeleteTask(ctx context.Context, caller *domain.User, taskID uuid.UUID) error {
	if _, err := s.getOwnedTask(ctx, caller, taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return apperrors.WrapDatabaseError(err)
	}

	return nil
}

func (s *TaskService) getOwnedTask(ctx context.Context, caller *domain.User, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("task not found", apperrors.ErrTaskNotFound)
		}
		return nil, apperrors.WrapDatabaseError(err)
	}

	if task.UserID != caller.ID {
		return nil, apperrors.NewForbidden("you are not authorised to access this task")
	}

	return task, nil
}

// validateSchedule enforces the due date and time rules shared by create and
// edit: the date is not in the past, the time is FULL_DAY or a valid HH:MM,
// and a task due today cannot carry a time that has already passed.
func (s *TaskService) validateSchedule(dueDate, timeOfDay string) (time.Time, error) {
	date, err := utils.ParseDueDate(dueDate)
	if err != nil {
		return time.Time{}, apperrors.NewValidation(err.Error())
	}

	now := time.Now()
	if utils.IsDatePast(date, now) {
		return time.Time{}, apperrors.NewValidation("due date must not be in the past")
	}

	if err := utils.ValidateTimeOfDay(timeOfDay); err != nil {
		return time.Time{}, apperrors.NewValidation(err.Error())
	}

	if utils.IsTimePastForToday(date, timeOfDay, now) {
		return time.Time{}, apperrors.NewValidation("time must not be in the past for a task due today")
	}

	return date, nil
}
