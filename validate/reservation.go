package validate

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateReservation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateReservationInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("%s: %s", constants.ERROR_INPUT, err.Error()), err)
		}
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if input.Date.Before(time.Now()) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.RESERVATION_PAST_DATE, errors.New("date in the past"))
		}
		if input.PartySize <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.RESERVATION_PARTY_INVALID, errors.New("party size must be positive"))
		}
		if input.Duration < 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.RESERVATION_DURATION_INVALID, errors.New("duration must be positive"))
		}
		if input.Duration == 0 {
			input.Duration = constants.RESERVATION_DEFAULT_DURATION
		}

		if ok, err := requireOperation(c, helper.OpReservationCreate); !ok {
			return err
		}

		c.Locals("inputCreateReservation", input)
		return c.Next()
	}
}

func UpdateReservation(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.UpdateReservationInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("%s: %s", constants.ERROR_INPUT, err.Error()), err)
		}
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if input.Date != nil && input.Date.Before(time.Now()) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.RESERVATION_PAST_DATE, errors.New("date in the past"))
		}
		if input.PartySize != nil && *input.PartySize <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.RESERVATION_PARTY_INVALID, errors.New("party size must be positive"))
		}
		if input.Duration != nil && *input.Duration <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.RESERVATION_DURATION_INVALID, errors.New("duration must be positive"))
		}

		if ok, err := requireOperation(c, helper.OpReservationManage); !ok {
			return err
		}

		c.Locals("inputUpdateReservation", input)
		c.Locals("reservationId", uint(valueKey))
		return c.Next()
	}
}

func DeleteReservation(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		if ok, err := requireOperation(c, helper.OpReservationManage); !ok {
			return err
		}

		c.Locals("reservationId", uint(valueKey))
		return c.Next()
	}
}
