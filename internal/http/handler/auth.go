package handler

import (
	"github.com/gofiber/fiber/v2"

	"expertbook/internal/service"
)

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"required"`
}

type registerExpertRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Bio        string `json:"bio" validate:"max=2000"`
	CategoryID string `json:"category_id" validate:"required,uuid"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Register godoc
// @Summary  Create a user account
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body registerRequest true "account"
// @Success  201 {object} service.AuthResult
// @Failure  400 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Router   /auth/register [post]
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		res, err := svc.Register(c.UserContext(), service.RegisterInput{
			Email:       req.Email,
			Password:    req.Password,
			DisplayName: req.DisplayName,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// RegisterExpert godoc
// @Summary  Create an expert account with its profile
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body registerExpertRequest true "expert account"
// @Success  201 {object} service.AuthResult
// @Router   /auth/register-expert [post]
func RegisterExpert(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerExpertRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		res, err := svc.RegisterExpert(c.UserContext(), service.RegisterExpertInput{
			Name:       req.Name,
			Email:      req.Email,
			Password:   req.Password,
			Bio:        req.Bio,
			CategoryID: req.CategoryID,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// Login godoc
// @Summary  Exchange credentials for a token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body loginRequest true "credentials"
// @Success  200 {object} service.AuthResult
// @Failure  401 {object} errorPayload
// @Router   /auth/login [post]
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		res, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// ForgotPassword always answers 202 for a well-formed email.
func ForgotPassword(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req forgotPasswordRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		if err := svc.ForgotPassword(c.UserContext(), req.Email); err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "sent"})
	}
}

func Me(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cl, err := claims(c)
		if err != nil {
			return err
		}
		u, err := svc.Me(c.UserContext(), cl.UserID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(u)
	}
}
