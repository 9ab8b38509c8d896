package handler

import (
	"github.com/gofiber/fiber/v2"

	"expertbook/internal/service"
)

func AdminDashboard(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.Admin(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(st)
	}
}

// ExpertDashboard answers 404 when the caller has no expert profile.
func ExpertDashboard(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cl, err := claims(c)
		if err != nil {
			return err
		}
		d, err := svc.Expert(c.UserContext(), cl.UserID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(d)
	}
}

func UserDashboard(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cl, err := claims(c)
		if err != nil {
			return err
		}
		d, err := svc.User(c.UserContext(), cl.UserID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(d)
	}
}
