package handler

import (
	"github.com/gofiber/fiber/v2"

	"expertbook/internal/model"
	"expertbook/internal/service"
)

type userRequest struct {
	DisplayName string `json:"display_name" validate:"required,max=200"`
	Email       string `json:"email" validate:"required,email"`
	Role        string `json:"role" validate:"omitempty,oneof=user expert admin"`
}

func (r userRequest) input() service.UserInput {
	return service.UserInput{DisplayName: r.DisplayName, Email: r.Email, Role: model.Role(r.Role)}
}

type roleRequest struct {
	Role string `json:"role" validate:"required,oneof=user expert admin"`
}

// ListUsers godoc
// @Summary  List accounts
// @Tags     users
// @Produce  json
// @Param    limit  query int false "page size (1-100)"
// @Param    offset query int false "rows to skip"
// @Success  200 {object} service.UserListResult
// @Security BearerAuth
// @Router   /users [get]
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := queryInt(c, "limit", 0, "INVALID_LIMIT")
		if err != nil {
			return respondError(c, err)
		}
		if limit < 0 || limit > 100 {
			return respondError(c, badRequest("INVALID_LIMIT", "limit must be between 1 and 100"))
		}
		offset, err := queryInt(c, "offset", 0, "INVALID_OFFSET")
		if err != nil {
			return respondError(c, err)
		}
		if offset < 0 {
			return respondError(c, badRequest("INVALID_OFFSET", "offset must be >= 0"))
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

func CreateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req userRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		u, err := svc.Create(c.UserContext(), req.input())
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

func UpdateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respondError(c, err)
		}
		var req userRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		u, err := svc.Update(c.UserContext(), id, req.input())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(u)
	}
}

func UpdateUserRole(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respondError(c, err)
		}
		var req roleRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		u, err := svc.UpdateRole(c.UserContext(), id, model.Role(req.Role))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(u)
	}
}

func ToggleUserRole(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respondError(c, err)
		}
		u, err := svc.ToggleRole(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(u)
	}
}

func DeleteUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respondError(c, err)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
