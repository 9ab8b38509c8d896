package handler

import (
	"github.com/gofiber/fiber/v2"

	"expertbook/internal/service"
)

type categoryRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"required"`
}

func (r categoryRequest) input() service.CategoryInput {
	return service.CategoryInput{Name: r.Name, Description: r.Description}
}

// ListCategories godoc
// @Summary  List categories ordered by name
// @Tags     categories
// @Produce  json
// @Success  200 {array} model.Category
// @Router   /categories [get]
func ListCategories(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(items)
	}
}

func CreateCategory(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req categoryRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		cat, err := svc.Create(c.UserContext(), req.input())
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(cat)
	}
}

func UpdateCategory(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respondError(c, err)
		}
		var req categoryRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		cat, err := svc.Update(c.UserContext(), id, req.input())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(cat)
	}
}

// DeleteCategory answers 409 CATEGORY_IN_USE while experts remain in it.
func DeleteCategory(svc service.CategoryService) fiber.Handler {
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
