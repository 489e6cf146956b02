package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/miniapps-backend/internal/auth"
	"github.com/segyhp/miniapps-backend/internal/domain"
	apperrors "github.com/segyhp/miniapps-backend/pkg/errors"
	"github.com/segyhp/miniapps-backend/pkg/response"
	"github.com/segyhp/miniapps-backend/tests/mocks"
)

func testCaller() *domain.User {
	return &domain.User{ID: uuid.New(), Username: "alice", Role: domain.RoleUser}
}

func newAuthedRequest(t *testing.T, caller *domain.User, method, target string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	r := httptest.NewRequest(method, target, &buf)
	return r.WithContext(auth.WithUser(r.Context(), caller))
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) response.Envelope {
	t.Helper()

	var envelope response.Envelope
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	return envelope
}

func TestTaskHandler_CreateTask(t *testing.T) {
	caller := testCaller()

	t.Run("created task is wrapped in a 201 envelope", func(t *testing.T) {
		service := &mocks.MockTaskService{}
		service.On("CreateTask", mock.Anything, caller, mock.Anything).Return(&domain.Task{
			ID: uuid.New(), UserID: caller.ID, Title: "Buy groceries",
		}, nil)

		request := newAuthedRequest(t, caller, http.MethodPost, "/tasks", map[string]string{
			"title":       "Buy groceries",
			"description": "Milk and eggs",
			"dueDate":     "2030-01-01",
		})
		recorder := httptest.NewRecorder()
		NewTaskHandler(service).CreateTask(recorder, request)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.True(t, envelope.Success)
		assert.Equal(t, http.StatusCreated, envelope.StatusCode)
		assert.Equal(t, "Task created successfully", envelope.Message)
	})

	t.Run("short title fails request validation", func(t *testing.T) {
		service := &mocks.MockTaskService{}

		request := newAuthedRequest(t, caller, http.MethodPost, "/tasks", map[string]string{
			"title":       "ab",
			"description": "too short",
			"dueDate":     "2030-01-01",
		})
		recorder := httptest.NewRecorder()
		NewTaskHandler(service).CreateTask(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.False(t, envelope.Success)
		service.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		service := &mocks.MockTaskService{}

		request := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewBufferString("{not json"))
		request = request.WithContext(auth.WithUser(request.Context(), caller))
		recorder := httptest.NewRecorder()
		NewTaskHandler(service).CreateTask(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestTaskHandler_ViewTask(t *testing.T) {
	caller := testCaller()
	taskID := uuid.New()

	t.Run("service errors map through the envelope", func(t *testing.T) {
		service := &mocks.MockTaskService{}
		service.On("ViewTask", mock.Anything, caller, taskID).
			Return(nil, apperrors.NewForbidden("you are not authorised to view this task"))

		request := newAuthedRequest(t, caller, http.MethodGet, "/tasks/"+taskID.String(), nil)
		request = mux.SetURLVars(request, map[string]string{"taskId": taskID.String()})
		recorder := httptest.NewRecorder()
		NewTaskHandler(service).ViewTask(recorder, request)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.False(t, envelope.Success)
		assert.Equal(t, http.StatusForbidden, envelope.StatusCode)
	})

	t.Run("non-uuid path id is a 400", func(t *testing.T) {
		service := &mocks.MockTaskService{}

		request := newAuthedRequest(t, caller, http.MethodGet, "/tasks/abc", nil)
		request = mux.SetURLVars(request, map[string]string{"taskId": "abc"})
		recorder := httptest.NewRecorder()
		NewTaskHandler(service).ViewTask(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		service.AssertNotCalled(t, "ViewTask", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("owner fetch succeeds", func(t *testing.T) {
		service := &mocks.MockTaskService{}
		service.On("ViewTask", mock.Anything, caller, taskID).Return(&domain.Task{
			ID: taskID, UserID: caller.ID, Title: "Mine",
		}, nil)

		request := newAuthedRequest(t, caller, http.MethodGet, "/tasks/"+taskID.String(), nil)
		request = mux.SetURLVars(request, map[string]string{"taskId": taskID.String()})
		recorder := httptest.NewRecorder()
		NewTaskHandler(service).ViewTask(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.True(t, envelope.Success)
	})
}

func TestTaskHandler_MarkCompleted(t *testing.T) {
	caller := testCaller()
	taskID := uuid.New()

	t.Run("completion conflict surfaces as 409", func(t *testing.T) {
		service := &mocks.MockTaskService{}
		service.On("MarkCompleted", mock.Anything, caller, taskID).
			Return(nil, apperrors.NewConflict("task is already completed"))

		request := newAuthedRequest(t, caller, http.MethodPost, "/tasks/"+taskID.String(), nil)
		request = mux.SetURLVars(request, map[string]string{"taskId": taskID.String()})
		recorder := httptest.NewRecorder()
		NewTaskHandler(service).MarkCompleted(recorder, request)

		assert.Equal(t, http.StatusConflict, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.Equal(t, "task is already completed", envelope.Message)
	})
}

func TestTaskHandler_ListByCategory(t *testing.T) {
	caller := testCaller()

	service := &mocks.MockTaskService{}
	service.On("ListByCategory", mock.Anything, caller, domain.CategoryWork).
		Return([]*domain.Task{{ID: uuid.New(), Category: domain.CategoryWork}}, nil)

	request := newAuthedRequest(t, caller, http.MethodGet, "/tasks/category/WORK", nil)
	request = mux.SetURLVars(request, map[string]string{"categoryId": domain.CategoryWork})
	recorder := httptest.NewRecorder()
	NewTaskHandler(service).ListByCategory(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	service.AssertExpectations(t)
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	caller := testCaller()
	taskID := uuid.New()

	service := &mocks.MockTaskService{}
	service.On("DeleteTask", mock.Anything, caller, taskID).Return(nil)

	request := newAuthedRequest(t, caller, http.MethodDelete, "/tasks/"+taskID.String(), nil)
	request = mux.SetURLVars(request, map[string]string{"taskId": taskID.String()})
	recorder := httptest.NewRecorder()
	NewTaskHandler(service).DeleteTask(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	assert.Equal(t, "Task deleted successfully", envelope.Message)
}
