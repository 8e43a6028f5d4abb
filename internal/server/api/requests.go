package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/server/models"
)

const maxBodyBytes = 1 << 20

// Request bodies are decoded into these typed records and validated before
// any service call. Pointer fields distinguish "absent" from zero values.

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r registerRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return common.ErrValidation
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return common.ErrValidation
	}
	return nil
}

type createTaskRequest struct {
	Text string `json:"text"`
}

func (r createTaskRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return common.ErrValidation
	}
	return nil
}

type updateTaskRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

func (r updateTaskRequest) Validate() error {
	if r.Text == nil && r.Completed == nil {
		return common.ErrValidation
	}
	if r.Text != nil && strings.TrimSpace(*r.Text) == "" {
		return common.ErrValidation
	}
	return nil
}

func (r updateTaskRequest) Patch() models.TaskPatch {
	return models.TaskPatch{Text: r.Text, Completed: r.Completed}
}

type toggleTaskRequest struct {
	Completed *bool `json:"completed"`
}

func (r toggleTaskRequest) Validate() error {
	if r.Completed == nil {
		return common.ErrValidation
	}
	return nil
}

type validator interface {
	Validate() error
}

// errMalformedBody marks bodies that are not a single JSON object of the
// expected shape.
var errMalformedBody = errors.New("malformed request body")

// decodeRequest reads one JSON object into dst and validates it.
func decodeRequest(r *http.Request, dst validator) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data", errMalformedBody)
	}
	return dst.Validate()
}
