package api

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/go-chi/chi/v5"
)

func (s *HTTPServer) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeRequest(r, &req); err != nil {
		s.badRequest(w, err, msgMissingFields)
		return
	}

	session, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, newAuthResponse(session, msgRegistered))
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, msgMissingFields)
	case errors.Is(err, common.ErrAlreadyExists):
		writeError(w, http.StatusConflict, msgEmailTaken)
	default:
		s.logger.Error(r.Context(), "register failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgRegisterFailed)
	}
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeRequest(r, &req); err != nil {
		s.badRequest(w, err, msgMissingFields)
		return
	}

	session, err := s.users.Login(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, newAuthResponse(session, ""))
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, msgMissingFields)
	case errors.Is(err, common.ErrUserNotFound):
		writeError(w, http.StatusUnauthorized, msgUserNotFound)
	case errors.Is(err, common.ErrInvalidPassword):
		writeError(w, http.StatusUnauthorized, msgWrongPassword)
	default:
		s.logger.Error(r.Context(), "login failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
	}
}

func (s *HTTPServer) listTasks(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	list, err := s.tasks.List(r.Context(), userID)
	if err != nil {
		s.taskError(w, r, err)
		return
	}

	resp := make([]taskResponse, 0, len(list))
	for _, t := range list {
		resp = append(resp, newTaskResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *HTTPServer) createTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req createTaskRequest
	if err := decodeRequest(r, &req); err != nil {
		s.badRequest(w, err, msgEmptyTaskText)
		return
	}

	task, err := s.tasks.Create(r.Context(), userID, req.Text)
	if err != nil {
		s.taskError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTaskResponse(task))
}

func (s *HTTPServer) updateTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req updateTaskRequest
	if err := decodeRequest(r, &req); err != nil {
		s.badRequest(w, err, msgEmptyTaskText)
		return
	}

	task, err := s.tasks.Update(r.Context(), userID, chi.URLParam(r, "id"), req.Patch())
	if err != nil {
		s.taskError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTaskResponse(task))
}

func (s *HTTPServer) toggleTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req toggleTaskRequest
	if err := decodeRequest(r, &req); err != nil {
		s.badRequest(w, err, msgInvalidRequest)
		return
	}

	task, err := s.tasks.SetCompleted(r.Context(), userID, chi.URLParam(r, "id"), *req.Completed)
	if err != nil {
		s.taskError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTaskResponse(task))
}

func (s *HTTPServer) deleteTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	if err := s.tasks.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		s.taskError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// badRequest answers a failed decodeRequest: malformed bodies get the generic
// message, well-formed but incomplete ones get the handler's own message.
func (s *HTTPServer) badRequest(w http.ResponseWriter, err error, validationMsg string) {
	if errors.Is(err, errMalformedBody) {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	writeError(w, http.StatusBadRequest, validationMsg)
}

func (s *HTTPServer) taskError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, msgEmptyTaskText)
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, msgTaskNotFound)
	default:
		s.logger.Error(r.Context(), "task operation failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, msgTaskFailed)
	}
}
