package validate

import (
	"errors"
	"fmt"
	"strconv"

	"restaurant_manager/constants"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func UpdateBill(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.UpdateBillInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("%s: %s", constants.ERROR_INPUT, err.Error()), err)
		}
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if ok, err := requireOperation(c, helper.OpBillUpdate); !ok {
			return err
		}

		c.Locals("inputUpdateBill", input)
		c.Locals("billId", uint(valueKey))
		return c.Next()
	}
}

func DeleteBill(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		if ok, err := requireOperation(c, helper.OpBillDelete); !ok {
			return err
		}

		c.Locals("billId", uint(valueKey))
		return c.Next()
	}
}
