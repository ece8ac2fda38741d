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

func CreateOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateOrderInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("%s: %s", constants.ERROR_INPUT, err.Error()), err)
		}
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}
		if len(input.Items) == 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ORDER_NEEDS_ITEMS, errors.New("empty items"))
		}

		if ok, err := requireOperation(c, helper.OpOrderCreate); !ok {
			return err
		}

		c.Locals("inputCreateOrder", input)
		return c.Next()
	}
}

func UpdateOrder(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.UpdateOrderInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("%s: %s", constants.ERROR_INPUT, err.Error()), err)
		}
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if ok, err := requireOperation(c, helper.OpOrderUpdate); !ok {
			return err
		}
		user := c.Locals("currentUser").(model.User)

		if input.Status != nil && !helper.AllowsOrderState(user.Role, *input.Status) {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.COOK_STATES_ONLY, errors.New("state not allowed for role"))
		}

		c.Locals("inputUpdateOrder", input)
		c.Locals("orderId", uint(valueKey))
		return c.Next()
	}
}

func CreateOrderItem(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.CreateOrderItemInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("%s: %s", constants.ERROR_INPUT, err.Error()), err)
		}
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}
		if input.Quantity <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ORDER_QUANTITY_INVALID, errors.New("quantity must be positive"))
		}

		if ok, err := requireOperation(c, helper.OpOrderItemsManage); !ok {
			return err
		}

		c.Locals("inputCreateOrderItem", input)
		c.Locals("orderId", uint(valueKey))
		return c.Next()
	}
}

func UpdateOrderItem(orderKey, itemKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderID, err := strconv.Atoi(c.Params(orderKey))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}
		itemID, err := strconv.Atoi(c.Params(itemKey))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.UpdateOrderItemInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("%s: %s", constants.ERROR_INPUT, err.Error()), err)
		}
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		// A pure status change only needs the status capability; touching
		// quantity or notes (or sending nothing at all) is line management.
		op := helper.OpOrderItemStatus
		if input.Quantity != nil || input.Notes != nil || input.Status == nil {
			op = helper.OpOrderItemsManage
		}
		if ok, err := requireOperation(c, op); !ok {
			return err
		}
		user := c.Locals("currentUser").(model.User)

		if input.Status != nil && !helper.AllowsOrderItemState(user.Role, *input.Status) {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.COOK_STATES_ONLY, errors.New("state not allowed for role"))
		}

		c.Locals("inputUpdateOrderItem", input)
		c.Locals("orderId", uint(orderID))
		c.Locals("itemId", uint(itemID))
		return c.Next()
	}
}

func DeleteOrderItem(orderKey, itemKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderID, err := strconv.Atoi(c.Params(orderKey))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}
		itemID, err := strconv.Atoi(c.Params(itemKey))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		if ok, err := requireOperation(c, helper.OpOrderItemsManage); !ok {
			return err
		}

		c.Locals("orderId", uint(orderID))
		c.Locals("itemId", uint(itemID))
		return c.Next()
	}
}
