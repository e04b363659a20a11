package users

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// Username and password bounds enforced at the route boundary. The schema
// historically disagreed with the routes on the password minimum; 12 is the
// authoritative bound.
const (
	UsernameMinLength = 3
	UsernameMaxLength = 30
	PasswordMinLength = 12
	PasswordMaxLength = 100
)

// AuthController handles the /api/auth endpoints.
type AuthController struct {
	Auther Authenticator
	Logger Logger
}

// NewAuthController creates the login/logout controller.
func NewAuthController(auther Authenticator) *AuthController {
	return &AuthController{
		Auther: auther,
		Logger: defLogger{},
	}
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required, is.Email),
			validation.Field(&r.Password, validation.Required),
		)
	}, "Invalid login request payload")
}

// LogoutRequest payload
type LogoutRequest struct {
	Token string `json:"token"`
}

// Login checks the credentials and responds with the user and a fresh token.
func (a *AuthController) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return writeParseError(c)
	}

	if err := payload.Validate(); err != nil {
		return writeValidationError(c, err)
	}

	user, token, err := a.Auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return writeError(c, a.Logger, err)
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Logout revokes the supplied token string.
func (a *AuthController) Logout(c *fiber.Ctx) error {
	payload := new(LogoutRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("logout parse payload", "error", err)
		return writeParseError(c)
	}

	if err := a.Auther.Logout(payload.Token); err != nil {
		return writeError(c, a.Logger, err)
	}

	return c.JSON(fiber.Map{
		"msg": "Logout successful",
	})
}

// UserController handles the /api/users CRUD endpoints.
type UserController struct {
	Service UserService
	Logger  Logger
}

// NewUserController creates the user CRUD controller.
func NewUserController(service UserService) *UserController {
	return &UserController{
		Service: service,
		Logger:  defLogger{},
	}
}

// CreateUserRequest payload
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r CreateUserRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Username, validation.Required, validation.Length(UsernameMinLength, UsernameMaxLength)),
			validation.Field(&r.Email, validation.Required, is.Email),
			validation.Field(&r.Password, validation.Required, validation.Length(PasswordMinLength, PasswordMaxLength)),
		)
	}, "Invalid create user payload")
}

// UpdateUserRequest payload; absent fields are left unchanged
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Active   *bool   `json:"active"`
}

// Validate will run validation rules; nil fields are skipped
func (r UpdateUserRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Username, validation.Length(UsernameMinLength, UsernameMaxLength)),
			validation.Field(&r.Email, is.Email),
			validation.Field(&r.Password, validation.Length(PasswordMinLength, PasswordMaxLength)),
		)
	}, "Invalid update user payload")
}

// List returns a page of active users plus the total active count.
func (u *UserController) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", DefaultPageSize)
	offset := c.QueryInt("offset", 0)

	records, total, err := u.Service.List(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, u.Logger, err)
	}

	return c.JSON(fiber.Map{
		"total": total,
		"users": records,
	})
}

// Show returns a single user by id, active or not.
func (u *UserController) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return writeInvalidID(c)
	}

	record, err := u.Service.GetByID(c.UserContext(), int64(id))
	if err != nil {
		return writeError(c, u.Logger, err)
	}

	return c.JSON(fiber.Map{
		"user": record,
	})
}

// Create registers a new user.
func (u *UserController) Create(c *fiber.Ctx) error {
	payload := new(CreateUserRequest)

	if err := c.BodyParser(payload); err != nil {
		u.Logger.Error("create user parse payload", "error", err)
		return writeParseError(c)
	}

	if err := payload.Validate(); err != nil {
		return writeValidationError(c, err)
	}

	record, err := u.Service.Create(c.UserContext(), payload.Username, payload.Email, payload.Password)
	if err != nil {
		return writeError(c, u.Logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":  "User created",
		"user": record,
	})
}

// Update applies a partial update to an existing user.
func (u *UserController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return writeInvalidID(c)
	}

	payload := new(UpdateUserRequest)
	if err := c.BodyParser(payload); err != nil {
		u.Logger.Error("update user parse payload", "error", err)
		return writeParseError(c)
	}

	if err := payload.Validate(); err != nil {
		return writeValidationError(c, err)
	}

	change := UserUpdate{
		Username: payload.Username,
		Email:    payload.Email,
		Password: payload.Password,
		Active:   payload.Active,
	}

	record, err := u.Service.Update(c.UserContext(), int64(id), change)
	if err != nil {
		return writeError(c, u.Logger, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "User updated",
		"user": record,
	})
}

// Delete removes a user and echoes the removed record.
func (u *UserController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return writeInvalidID(c)
	}

	record, err := u.Service.Delete(c.UserContext(), int64(id))
	if err != nil {
		return writeError(c, u.Logger, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "User deleted",
		"user": record,
	})
}

// writeError translates business errors into the JSON error envelope.
// Internal faults are logged with full detail and returned opaque.
func writeError(c *fiber.Ctx, logger Logger, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "Internal server error")
	}

	if richErr.Category == errors.CategoryInternal {
		if logger == nil {
			logger = defLogger{}
		}
		logger.Error("request failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"msg": "Internal server error",
		})
	}

	status := richErr.Code
	if status < fiber.StatusBadRequest {
		switch richErr.Category {
		case errors.CategoryNotFound:
			status = fiber.StatusNotFound
		case errors.CategoryAuth, errors.CategoryAuthz:
			status = fiber.StatusUnauthorized
		default:
			status = fiber.StatusBadRequest
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"msg": richErr.Message,
	})
}

func writeValidationError(c *fiber.Ctx, err *errors.Error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"msg":    err.Message,
		"errors": err.ValidationMap(),
	})
}

func writeParseError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"msg": "Error parsing body",
	})
}

func writeInvalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"msg": "ID is not valid",
	})
}
