package handler

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"expertbook/internal/auth"
	"expertbook/internal/http/middleware"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names, not Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind parses the JSON body into dst and validates its struct tags.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return badRequest("INVALID_BODY", "request body is not valid JSON")
	}
	if err := validate.Struct(dst); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return badRequest("VALIDATION_ERROR", describe(errs[0]))
		}
		return badRequest("VALIDATION_ERROR", "invalid request")
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s is not a valid email", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// claims returns the caller's token claims. Routes using it sit behind
// middleware.Auth, so a missing value is a wiring bug surfaced as 401.
func claims(c *fiber.Ctx) (*auth.Claims, error) {
	cl := middleware.GetClaims(c)
	if cl == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}
	return cl, nil
}

// paramID returns the :id route parameter once it parses as a UUID.
func paramID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", badRequest("INVALID_ID", "invalid id format")
	}
	return id, nil
}

func queryInt(c *fiber.Ctx, key string, def int, code string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest(code, "invalid "+key)
	}
	return n, nil
}
