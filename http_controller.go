package users

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// DirectoryControllerRoutes are the mount points for the JSON API.
type DirectoryControllerRoutes struct {
	HealthCheck string
	Login       string
	Users       string
	UserDetail  string
	Profile     string
}

// DirectoryController is the JSON controller over the directory, the user
// service and the login flow.
type DirectoryController struct {
	Logger      Logger
	Routes      *DirectoryControllerRoutes
	Auther      Authenticator
	Directory   *Directory
	Service     *UserService
	Environment string
}

type DirectoryControllerOption func(*DirectoryController) *DirectoryController

func WithControllerLogger(logger Logger) DirectoryControllerOption {
	return func(c *DirectoryController) *DirectoryController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithControllerAuthenticator(auther Authenticator) DirectoryControllerOption {
	return func(c *DirectoryController) *DirectoryController {
		c.Auther = auther
		return c
	}
}

func WithControllerDirectory(directory *Directory) DirectoryControllerOption {
	return func(c *DirectoryController) *DirectoryController {
		c.Directory = directory
		return c
	}
}

func WithControllerService(service *UserService) DirectoryControllerOption {
	return func(c *DirectoryController) *DirectoryController {
		c.Service = service
		return c
	}
}

func WithControllerEnvironment(env string) DirectoryControllerOption {
	return func(c *DirectoryController) *DirectoryController {
		c.Environment = env
		return c
	}
}

func NewDirectoryController(opts ...DirectoryControllerOption) *DirectoryController {
	c := &DirectoryController{
		Logger: defLogger{},
		Routes: &DirectoryControllerRoutes{
			HealthCheck: "/healthcheck",
			Login:       "/login",
			Users:       "/users",
			UserDetail:  "/users/:id",
			Profile:     "/profile",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Authenticator in directory controller...")
	}

	if c.Directory == nil {
		panic("Missing Directory in directory controller...")
	}

	if c.Service == nil {
		panic("Missing UserService in directory controller...")
	}

	return c
}

// RegisterDirectoryRoutes mounts the directory API on app.
func RegisterDirectoryRoutes[T any](app router.Router[T], opts ...DirectoryControllerOption) {
	controller := NewDirectoryController(opts...)

	app.Get(controller.Routes.HealthCheck, controller.HealthCheck).
		SetName("healthcheck.get")

	app.Post(controller.Routes.Login, controller.LoginPost).
		SetName("login.post")

	app.Get(controller.Routes.Users, controller.UsersList).
		SetName("users.list")
	app.Get(controller.Routes.UserDetail, controller.UserShow).
		SetName("users.show")

	app.Get(controller.Routes.Profile, controller.ProfileShow).
		SetName("profile.get")

	app.Post(controller.Routes.Users, controller.UserCreate).
		SetName("users.create")
	app.Patch(controller.Routes.UserDetail, controller.UserUpdate).
		SetName("users.update")
	app.Delete(controller.Routes.UserDetail, controller.UserDelete).
		SetName("users.delete")
}

// HealthCheck reports liveness and the running environment.
func (a *DirectoryController) HealthCheck(ctx router.Context) error {
	return ctx.JSON(router.StatusOK, map[string]string{
		"ping":        "pong",
		"environment": a.Environment,
	})
}

// LoginPayload is the credential pair for LoginPost.
type LoginPayload struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

// LoginPost exchanges credentials for a session token. A failed login is
// always the same 401 regardless of which factor was wrong.
func (a *DirectoryController) LoginPost(ctx router.Context) error {
	payload := new(LoginPayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload: %v", err)
		return RespondError(ctx, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body").
			WithCode(errors.CodeBadRequest), a.Logger)
	}

	if err := payload.Validate(); err != nil {
		return RespondError(ctx, errors.Wrap(err, errors.CategoryValidation, err.Error()).
			WithCode(errors.CodeBadRequest), a.Logger)
	}

	token, err := a.Auther.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		a.Logger.Info("login rejected for %s", payload.Email)
		return RespondError(ctx, err, a.Logger)
	}

	return ctx.JSON(router.StatusOK, map[string]string{
		"token": token,
	})
}

// ProfileShow returns the caller's own identity as carried by the token.
func (a *DirectoryController) ProfileShow(ctx router.Context) error {
	caller := CurrentUser(ctx)
	if caller == nil {
		return RespondError(ctx, ErrAuthentication, a.Logger)
	}

	return ctx.JSON(router.StatusOK, a.Directory.GetProfile(caller))
}

// UsersList returns the records the caller may see. Anonymous callers get
// an empty list, not an error.
func (a *DirectoryController) UsersList(ctx router.Context) error {
	caller := CurrentUser(ctx)

	list, err := a.Directory.ListUsers(ctx.Context(), caller)
	if err != nil {
		a.Logger.Error("users list: %v", err)
		return RespondError(ctx, err, a.Logger)
	}

	return ctx.JSON(router.StatusOK, PublicUsersFrom(list))
}

// UserShow returns one record if the caller may see it. Invisible and
// nonexistent records are the same 404.
func (a *DirectoryController) UserShow(ctx router.Context) error {
	caller := CurrentUser(ctx)
	id := ctx.Param("id")

	user, err := a.Directory.GetUserDetails(ctx.Context(), caller, id)
	if err != nil {
		a.Logger.Error("user show: %v", err)
		return RespondError(ctx, err, a.Logger)
	}

	if user == nil {
		return RespondError(ctx, ErrUserNotFound, a.Logger)
	}

	return ctx.JSON(router.StatusOK, PublicUserFrom(*user))
}

// CreateUserPayload is the admin payload for UserCreate.
type CreateUserPayload struct {
	Email          string `form:"email" json:"email"`
	FirstName      string `form:"first_name" json:"first_name"`
	LastName       string `form:"last_name" json:"last_name"`
	OrganizationID string `form:"organization_id" json:"organization_id"`
	IsAdmin        bool   `form:"is_admin" json:"is_admin"`
	Password       string `form:"password" json:"password"`
}

// Validate will validate the payload
func (r CreateUserPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.OrganizationID, validation.Required),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
	)
}

// UpdateUserPayload is the admin payload for UserUpdate. The password is
// not part of it; directory updates never touch credentials.
type UpdateUserPayload struct {
	Email          string `form:"email" json:"email"`
	FirstName      string `form:"first_name" json:"first_name"`
	LastName       string `form:"last_name" json:"last_name"`
	OrganizationID string `form:"organization_id" json:"organization_id"`
	IsAdmin        bool   `form:"is_admin" json:"is_admin"`
}

// Validate will validate the payload
func (r UpdateUserPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.OrganizationID, validation.Required),
	)
}

// requireAdmin resolves the caller and rejects non-admins. Anonymous is a
// 401, authenticated non-admin a 403.
func (a *DirectoryController) requireAdmin(ctx router.Context) (*SessionUser, error) {
	caller := CurrentUser(ctx)
	if caller == nil {
		return nil, ErrAuthentication
	}

	if !caller.IsAdmin {
		return nil, errors.New("admin privilege required", errors.CategoryAuthz).
			WithCode(errors.CodeForbidden)
	}

	return caller, nil
}

// UserCreate provisions a new record. Admin only.
func (a *DirectoryController) UserCreate(ctx router.Context) error {
	if _, err := a.requireAdmin(ctx); err != nil {
		return RespondError(ctx, err, a.Logger)
	}

	payload := new(CreateUserPayload)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("user create parse payload: %v", err)
		return RespondError(ctx, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body").
			WithCode(errors.CodeBadRequest), a.Logger)
	}

	if err := payload.Validate(); err != nil {
		return RespondError(ctx, errors.Wrap(err, errors.CategoryValidation, err.Error()).
			WithCode(errors.CodeBadRequest), a.Logger)
	}

	user, err := a.Service.CreateUser(ctx.Context(), NewUser{
		Email:          payload.Email,
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		OrganizationID: payload.OrganizationID,
		IsAdmin:        payload.IsAdmin,
	}, payload.Password)
	if err != nil {
		a.Logger.Error("user create: %v", err)
		return RespondError(ctx, err, a.Logger)
	}

	return ctx.JSON(router.StatusCreated, PublicUserFrom(*user))
}

// UserUpdate replaces the directory fields of a record. Admin only.
func (a *DirectoryController) UserUpdate(ctx router.Context) error {
	if _, err := a.requireAdmin(ctx); err != nil {
		return RespondError(ctx, err, a.Logger)
	}

	payload := new(UpdateUserPayload)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("user update parse payload: %v", err)
		return RespondError(ctx, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body").
			WithCode(errors.CodeBadRequest), a.Logger)
	}

	if err := payload.Validate(); err != nil {
		return RespondError(ctx, errors.Wrap(err, errors.CategoryValidation, err.Error()).
			WithCode(errors.CodeBadRequest), a.Logger)
	}

	user, err := a.Service.UpdateUser(ctx.Context(), ctx.Param("id"), NewUser{
		Email:          payload.Email,
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		OrganizationID: payload.OrganizationID,
		IsAdmin:        payload.IsAdmin,
	})
	if err != nil {
		a.Logger.Error("user update: %v", err)
		return RespondError(ctx, err, a.Logger)
	}

	return ctx.JSON(router.StatusOK, PublicUserFrom(*user))
}

// UserDelete removes a record. Admin only.
func (a *DirectoryController) UserDelete(ctx router.Context) error {
	if _, err := a.requireAdmin(ctx); err != nil {
		return RespondError(ctx, err, a.Logger)
	}

	if err := a.Service.DeleteUser(ctx.Context(), ctx.Param("id")); err != nil {
		a.Logger.Error("user delete: %v", err)
		return RespondError(ctx, err, a.Logger)
	}

	return ctx.NoContent(router.StatusNoContent)
}
