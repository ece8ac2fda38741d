package validate

import (
	"errors"
	"fmt"
	"strconv"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CreateTable() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateTableInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("%s: %s", constants.ERROR_INPUT, err.Error()), err)
		}
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if ok, err := requireOperation(c, helper.OpTableCreate); !ok {
			return err
		}

		var existing model.Table
		if err := database.DB.Where("number = ?", input.Number).First(&existing).Error; err == nil {
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.TABLE_NUMBER_EXISTS, errors.New("table number taken"))
		}

		c.Locals("inputCreateTable", input)
		return c.Next()
	}
}

func UpdateTable(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.UpdateTableInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("%s: %s", constants.ERROR_INPUT, err.Error()), err)
		}
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if ok, err := requireOperation(c, helper.OpTableUpdate); !ok {
			return err
		}
		user := c.Locals("currentUser").(model.User)

		// Per-field gate: the role matrix limits waiters to status and payment
		// method changes.
		if input.Number != nil && !helper.AllowsTableField(user.Role, "number") {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_PERMISSION, errors.New("field number not allowed"))
		}
		if input.Capacity != nil && !helper.AllowsTableField(user.Role, "capacity") {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_PERMISSION, errors.New("field capacity not allowed"))
		}
		if input.Location != nil && !helper.AllowsTableField(user.Role, "location") {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_PERMISSION, errors.New("field location not allowed"))
		}

		var table model.Table
		if err := database.DB.First(&table, valueKey).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TABLE_NOT_FOUND, nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}

		if input.Number != nil && *input.Number != table.Number {
			var existing model.Table
			if err := database.DB.Where("number = ? AND id <> ?", *input.Number, table.ID).First(&existing).Error; err == nil {
				return utils.ErrorResponse(c, fiber.StatusConflict, constants.TABLE_NUMBER_EXISTS, errors.New("table number taken"))
			}
		}

		c.Locals("inputUpdateTable", input)
		c.Locals("tableId", uint(valueKey))
		return c.Next()
	}
}

func DeleteTable(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		if ok, err := requireOperation(c, helper.OpTableDelete); !ok {
			return err
		}

		c.Locals("tableId", uint(valueKey))
		return c.Next()
	}
}
