package services

import (
	"context"
	"errors"
	"time"

	"github.com/taskvault/taskvault/internal/models"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTitleRequired      = errors.New("title must not be null")
)

type TaskService interface {
	// CreateTask generates a task id and writes a fresh record with
	// created_at == updated_at into the caller's partition.
	CreateTask(ctx context.Context, uid string, params CreateTaskParams) (*models.Task, error)

	// GetTasks returns every task in the caller's partition, in no
	// particular order. An empty partition yields an empty slice.
	GetTasks(ctx context.Context, uid string) ([]*models.Task, error)

	// GetTask returns the task or ErrTaskNotFound. Tasks owned by
	// other users are unreachable, not merely denied.
	GetTask(ctx context.Context, uid, taskID string) (*models.Task, error)

	// UpdateTask applies a partial update. Fields absent from the
	// patch are untouched; null clears description/status; a null
	// title yields ErrTitleRequired. updated_at is refreshed even
	// when the patch is empty.
	UpdateTask(ctx context.Context, uid, taskID string, patch TaskPatch) (*models.Task, error)

	// DeleteTask removes the task. A repeated delete returns
	// ErrTaskNotFound rather than succeeding silently.
	DeleteTask(ctx context.Context, uid, taskID string) error
}

type UserService interface {
	// SignUp creates a provider account and the matching user record,
	// trimming surrounding whitespace from email and full name. It
	// returns ErrEmailAlreadyExists on a duplicate email.
	SignUp(ctx context.Context, params SignUpParams) (uid string, err error)

	// LogIn exchanges the credentials for an opaque bearer token,
	// returning ErrInvalidCredentials on any verification failure.
	LogIn(ctx context.Context, email, password string) (token string, err error)

	// Profile reads display attributes from the identity provider.
	// Note that it bypasses the stored user record, so a locally
	// updated full_name is not reflected here.
	Profile(ctx context.Context, uid string) (*Profile, error)

	// UpdateProfile overwrites the stored full_name, trimmed. The
	// provider-side display name is left alone.
	UpdateProfile(ctx context.Context, uid, fullName string) error
}

type CreateTaskParams struct {
	Title       string
	Description *string
	Status      *string
}

type TaskPatch struct {
	Title       models.OptionalString
	Description models.OptionalString
	Status      models.OptionalString
}

type SignUpParams struct {
	Email    string
	Password string
	FullName string
}

type Profile struct {
	UID         string
	Email       string
	DisplayName string
	CreatedAt   time.Time
}
