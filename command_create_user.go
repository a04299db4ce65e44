package users

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type CreateUserMessage struct {
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	OrganizationID string `json:"organization_id"`
	IsAdmin        bool   `json:"is_admin"`
	Password       string `json:"password"`
}

func (e CreateUserMessage) Type() string { return "user.create" }

// CreateUserHandler provisions users out of band, e.g. from a CLI or a
// message queue consumer.
type CreateUserHandler struct {
	service *UserService
}

func NewCreateUserHandler(service *UserService) *CreateUserHandler {
	return &CreateUserHandler{service: service}
}

func (h *CreateUserHandler) Execute(ctx context.Context, event CreateUserMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user creation",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *CreateUserHandler) execute(ctx context.Context, event CreateUserMessage) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	data := NewUser{
		Email:          event.Email,
		FirstName:      event.FirstName,
		LastName:       event.LastName,
		OrganizationID: event.OrganizationID,
		IsAdmin:        event.IsAdmin,
	}

	if _, err := h.service.CreateUser(ctx, data, event.Password); err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "user creation failed")
	}

	return nil
}
