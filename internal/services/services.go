package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adanyl0v/go-task-tracker/internal/models"
)

var (
	ErrNoToken      = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid token")
	ErrUserNotFound = errors.New("user not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")

	ErrValidationFailed = errors.New("validation failed")
	ErrEmptyTaskName    = fmt.Errorf("%w: name is required", ErrValidationFailed)
	ErrReadFailed       = errors.New("failed to read records")
	ErrWriteFailed      = errors.New("failed to write records")
)

// IsUnauthenticated reports whether err means the request carries no
// usable credential. Callers must not reveal more than err.Error() of the
// matching sentinel.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrNoToken) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrUserNotFound)
}

type TokenService interface {
	// Issue signs a token for the user that expires after the configured
	// lifetime. The user is not re-validated.
	Issue(user *models.User) (*IssuedToken, error)

	// Parse verifies the token signature, issuer and expiry and returns
	// the user ID it was issued for. Any failure, expiry included, is
	// reported as ErrInvalidToken.
	Parse(token string) (string, error)
}

type AuthService interface {
	// Register creates a user with a hashed password.
	//
	// It returns ErrUserAlreadyExists if a user with the same email,
	// compared case-insensitively, already exists.
	Register(ctx context.Context, params RegisterParams) (*models.User, error)

	// Login checks the email and password and issues a token.
	//
	// It returns ErrInvalidCredentials both for an unknown email and
	// for a wrong password.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Authenticate resolves the value of an Authorization header to the
	// user it was issued for. The returned user carries no password hash.
	//
	// It returns ErrNoToken if the header is not "Bearer <token>",
	// ErrInvalidToken if the token is tampered, malformed or expired,
	// and ErrUserNotFound if the user no longer exists. Any other error
	// wraps ErrReadFailed.
	Authenticate(ctx context.Context, authorization string) (*models.User, error)
}

type TaskService interface {
	// ListTasks returns one page of the owner's tasks matching the
	// search term, newest first. Out of range paging parameters are
	// replaced with defaults or clamped, never rejected.
	ListTasks(ctx context.Context, params ListTasksParams) (*models.TaskPage, error)

	// CreateTask stores a task owned by params.UserID.
	//
	// It returns ErrValidationFailed if the name is empty and
	// ErrWriteFailed on any store failure.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}

type LoginResult struct {
	User           *models.User
	AccessToken    string
	TokenExpiresAt time.Time
}

type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// ListTasksParams carries raw paging input. Page and Limit values below 1
// select the defaults.
type ListTasksParams struct {
	UserID string
	Search string
	Page   int
	Limit  int
}

type CreateTaskParams struct {
	UserID      string
	Name        string
	Description string
	Date        string
}
