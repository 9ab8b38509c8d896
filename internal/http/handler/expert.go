package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"expertbook/internal/service"
	"expertbook/internal/storage"
)

type expertRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Email      string `json:"email" validate:"required,email"`
	Bio        string `json:"bio" validate:"max=2000"`
	CategoryID string `json:"category_id" validate:"required,uuid"`
}

func (r expertRequest) input() service.ExpertInput {
	return service.ExpertInput{Name: r.Name, Email: r.Email, Bio: r.Bio, CategoryID: r.CategoryID}
}

// ListExperts godoc
// @Summary  List experts
// @Tags     experts
// @Produce  json
// @Param    categoryId query string false "category filter"
// @Param    q          query string false "search in name, email and bio"
// @Success  200 {array} model.ExpertView
// @Router   /experts [get]
func ListExperts(svc service.ExpertService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		categoryID := c.Query("categoryId")
		if categoryID != "" {
			if _, err := uuid.Parse(categoryID); err != nil {
				return respondError(c, badRequest("INVALID_CATEGORY_ID", "categoryId must be a valid UUID"))
			}
		}
		items, err := svc.List(c.UserContext(), categoryID, c.Query("q"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(items)
	}
}

func GetExpert(svc service.ExpertService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respondError(c, err)
		}
		e, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(e)
	}
}

func CreateExpert(svc service.ExpertService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req expertRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		e, err := svc.Create(c.UserContext(), req.input())
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(e)
	}
}

func UpdateExpert(svc service.ExpertService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respondError(c, err)
		}
		var req expertRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		e, err := svc.Update(c.UserContext(), id, req.input())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(e)
	}
}

func DeleteExpert(svc service.ExpertService) fiber.Handler {
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

// UploadExpertAvatar godoc
// @Summary  Replace an expert's avatar
// @Tags     experts
// @Accept   multipart/form-data
// @Produce  json
// @Param    id   path     string true "expert id"
// @Param    file formData file   true "image (jpeg, png, webp, gif)"
// @Success  200 {object} model.Expert
// @Failure  400 {object} errorPayload
// @Router   /experts/{id}/avatar [put]
func UploadExpertAvatar(svc service.ExpertService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respondError(c, err)
		}
		fh, err := c.FormFile("file")
		if err != nil {
			return respondError(c, badRequest("FILE_REQUIRED", "multipart field 'file' is required"))
		}
		if fh.Size > storage.MaxAvatarSize {
			return writeError(c, fiber.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "avatar exceeds 5MB")
		}
		f, err := fh.Open()
		if err != nil {
			return respondError(c, err)
		}
		defer f.Close()

		e, err := svc.UploadAvatar(c.UserContext(), id, f, fh.Filename, fh.Header.Get("Content-Type"), fh.Size)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(e)
	}
}

// GetExpertAvatar returns a short-lived link to the avatar image.
func GetExpertAvatar(svc service.ExpertService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respondError(c, err)
		}
		url, err := svc.AvatarURL(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}
