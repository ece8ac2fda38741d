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
)

func CreateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateCategoryInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("%s: %s", constants.ERROR_INPUT, err.Error()), err)
		}
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if ok, err := requireOperation(c, helper.OpMenuManage); !ok {
			return err
		}

		var existing model.Category
		if err := database.DB.Where("name = ?", input.Name).First(&existing).Error; err == nil {
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.CATEGORY_NAME_EXISTS, errors.New("category name taken"))
		}

		c.Locals("inputCreateCategory", input)
		return c.Next()
	}
}

func UpdateCategory(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.UpdateCategoryInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("%s: %s", constants.ERROR_INPUT, err.Error()), err)
		}
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if ok, err := requireOperation(c, helper.OpMenuManage); !ok {
			return err
		}

		if input.Name != nil {
			var existing model.Category
			if err := database.DB.Where("name = ? AND id <> ?", *input.Name, valueKey).First(&existing).Error; err == nil {
				return utils.ErrorResponse(c, fiber.StatusConflict, constants.CATEGORY_NAME_EXISTS, errors.New("category name taken"))
			}
		}

		c.Locals("inputUpdateCategory", input)
		c.Locals("categoryId", uint(valueKey))
		return c.Next()
	}
}

func DeleteCategory(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		if ok, err := requireOperation(c, helper.OpMenuManage); !ok {
			return err
		}

		c.Locals("categoryId", uint(valueKey))
		return c.Next()
	}
}
