package validate

import (
	"errors"
	"strconv"

	"restaurant_manager/constants"
	"restaurant_manager/helper"
	"restaurant_manager/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		c.Locals("inputId", valueKey)
		return c.Next()
	}
}

// requireUser resolves the authenticated user and stashes it for the handler.
func requireUser(c *fiber.Ctx) (ok bool, err error) {
	user, uerr := helper.CurrentUser(c)
	if uerr != nil {
		return false, utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_ACTIVE, uerr)
	}
	c.Locals("currentUser", user)
	return true, nil
}

// requireOperation gates the request on the role matrix and stashes both the
// user and the granted capability.
func requireOperation(c *fiber.Ctx, op helper.Operation) (ok bool, err error) {
	user, uerr := helper.CurrentUser(c)
	if uerr != nil {
		return false, utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_ACTIVE, uerr)
	}
	capability, allowed := helper.Allows(user.Role, op)
	if !allowed {
		return false, utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_PERMISSION, errors.New("operation not allowed for role"))
	}
	c.Locals("currentUser", user)
	c.Locals("capability", capability)
	return true, nil
}
