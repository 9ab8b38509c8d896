package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"expertbook/internal/service"
)

type createBookingRequest struct {
	ExpertID string `json:"expert_id" validate:"required,uuid"`
	DateTime string `json:"date_time" validate:"required"`
}

type rescheduleRequest struct {
	DateTime string `json:"date_time" validate:"required"`
}

func parseDateTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, badRequest("INVALID_DATE", "date_time must be RFC3339")
	}
	return t, nil
}

// CreateBooking godoc
// @Summary  Book an expert
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Param    body body createBookingRequest true "slot"
// @Success  201 {object} model.Booking
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Security BearerAuth
// @Router   /bookings [post]
func CreateBooking(svc service.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cl, err := claims(c)
		if err != nil {
			return err
		}
		var req createBookingRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		at, err := parseDateTime(req.DateTime)
		if err != nil {
			return respondError(c, err)
		}
		b, err := svc.Create(c.UserContext(), cl.UserID, req.ExpertID, at)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(b)
	}
}

func ListMyBookings(svc service.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cl, err := claims(c)
		if err != nil {
			return err
		}
		items, err := svc.ListByUser(c.UserContext(), cl.UserID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(items)
	}
}

func RescheduleBooking(svc service.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respondError(c, err)
		}
		cl, err := claims(c)
		if err != nil {
			return err
		}
		var req rescheduleRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		at, err := parseDateTime(req.DateTime)
		if err != nil {
			return respondError(c, err)
		}
		b, err := svc.Reschedule(c.UserContext(), cl.UserID, id, at)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(b)
	}
}

func CancelBooking(svc service.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respondError(c, err)
		}
		cl, err := claims(c)
		if err != nil {
			return err
		}
		if err := svc.Cancel(c.UserContext(), cl.UserID, id); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func AcceptBooking(svc service.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respondError(c, err)
		}
		cl, err := claims(c)
		if err != nil {
			return err
		}
		b, err := svc.Accept(c.UserContext(), cl.UserID, id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(b)
	}
}

func DeclineBooking(svc service.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respondError(c, err)
		}
		cl, err := claims(c)
		if err != nil {
			return err
		}
		b, err := svc.Decline(c.UserContext(), cl.UserID, id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(b)
	}
}

// BackfillBookingUsers fills missing user snapshots on existing bookings.
func BackfillBookingUsers(svc service.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.BackfillUsers(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}
