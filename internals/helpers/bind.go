// file: internals/helpers/bind.go
package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// BindAndValidate parses the JSON body into dst and runs struct validation.
// Returns a *fiber.Error carrying the right status code.
func BindAndValidate[T any](c *fiber.Ctx, v *validator.Validate, dst *T) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	if v != nil {
		if err := v.Struct(dst); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
	}
	return nil
}
