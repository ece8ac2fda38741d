package handler

import (
	"errors"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetReservations(c *fiber.Ctx) error {
	var filter model.FilterReservation
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	query := database.DB.Model(&model.Reservation{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}
	if filter.TableId != nil {
		query = query.Where("table_id = ?", *filter.TableId)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var reservations []model.Reservation
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).
		Preload("Table").Order("date").Find(&reservations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       reservations,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

func GetReservationById(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	var reservation model.Reservation
	if err := database.DB.Preload("Table").First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RESERVATION_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, reservation)
}

func CreateReservation(c *fiber.Ctx) error {
	input := c.Locals("inputCreateReservation").(model.CreateReservationInput)

	var table *model.Table
	if input.TableId != nil {
		var t model.Table
		if err := database.DB.First(&t, *input.TableId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TABLE_NOT_FOUND, nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if t.Capacity < input.PartySize {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.RESERVATION_TABLE_SMALL, errors.New("capacity too small"))
		}
		conflict, err := helper.HasConflictingReservation(database.DB, t.ID, 0, input.Date, input.Duration)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if conflict {
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.RESERVATION_CONFLICT, errors.New("overlapping reservation"))
		}
		table = &t
	}

	reservation := model.Reservation{
		CustomerFirstName: input.CustomerFirstName,
		CustomerLastName:  input.CustomerLastName,
		CustomerPhone:     input.CustomerPhone,
		CustomerEmail:     input.CustomerEmail,
		Date:              input.Date,
		Duration:          input.Duration,
		PartySize:         input.PartySize,
		Status:            constants.RESERVATION_PENDING,
		TableId:           input.TableId,
		Notes:             input.Notes,
	}
	if err := database.DB.Create(&reservation).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if table != nil && table.Status == constants.TABLE_FREE {
		if err := database.DB.Model(table).Update("status", constants.TABLE_RESERVED).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	broadcast(constants.CHANNEL_ADMIN, map[string]any{
		"tipo":       constants.EVENT_NEW_RESERVATION,
		"reserva_id": reservation.ID,
		"cliente":    reservation.CustomerName(),
		"fecha":      reservation.Date.Format(time.RFC3339),
	})

	if table != nil {
		utils.SendReservationConfirmationEmail(reservation.CustomerEmail, utils.ReservationConfirmationData{
			CustomerName: reservation.CustomerName(),
			TableNumber:  int(table.Number),
			Date:         reservation.Date.Format("02/01/2006 15:04"),
			PartySize:    reservation.PartySize,
			Duration:     reservation.Duration,
			Notes:        reservation.Notes,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, reservation)
}

func UpdateReservation(c *fiber.Ctx) error {
	input := c.Locals("inputUpdateReservation").(model.UpdateReservationInput)
	reservationId := c.Locals("reservationId").(uint)

	var reservation model.Reservation
	if err := database.DB.First(&reservation, reservationId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RESERVATION_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	targetDate := reservation.Date
	if input.Date != nil {
		targetDate = *input.Date
	}
	targetDuration := reservation.Duration
	if input.Duration != nil {
		targetDuration = *input.Duration
	}
	targetTableId := reservation.TableId
	if input.TableId != nil {
		targetTableId = input.TableId
	}
	targetParty := reservation.PartySize
	if input.PartySize != nil {
		targetParty = *input.PartySize
	}

	// Re-run the capacity and overlap checks whenever the slot moves.
	if targetTableId != nil && (input.Date != nil || input.Duration != nil || input.TableId != nil || input.PartySize != nil) {
		var table model.Table
		if err := database.DB.First(&table, *targetTableId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TABLE_NOT_FOUND, nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if table.Capacity < targetParty {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.RESERVATION_TABLE_SMALL, errors.New("capacity too small"))
		}
		conflict, err := helper.HasConflictingReservation(database.DB, table.ID, reservation.ID, targetDate, targetDuration)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if conflict {
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.RESERVATION_CONFLICT, errors.New("overlapping reservation"))
		}
	}

	previousTableId := reservation.TableId

	updates := map[string]any{}
	if input.CustomerFirstName != nil {
		updates["customer_first_name"] = *input.CustomerFirstName
	}
	if input.CustomerLastName != nil {
		updates["customer_last_name"] = *input.CustomerLastName
	}
	if input.CustomerPhone != nil {
		updates["customer_phone"] = *input.CustomerPhone
	}
	if input.CustomerEmail != nil {
		updates["customer_email"] = *input.CustomerEmail
	}
	if input.Date != nil {
		updates["date"] = *input.Date
	}
	if input.Duration != nil {
		updates["duration"] = *input.Duration
	}
	if input.PartySize != nil {
		updates["party_size"] = *input.PartySize
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.TableId != nil {
		updates["table_id"] = *input.TableId
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&reservation).Updates(updates).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}
	if err := database.DB.First(&reservation, reservation.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// Status transitions drive the table lifecycle: an arrival occupies the
	// table, a cancellation or no-show frees it when nothing else holds it.
	if input.Status != nil && reservation.TableId != nil {
		switch *input.Status {
		case constants.RESERVATION_ARRIVED:
			if err := database.DB.Model(&model.Table{}).
				Where("id = ?", *reservation.TableId).
				Update("status", constants.TABLE_OCCUPIED).Error; err != nil {
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
			}
		case constants.RESERVATION_CANCELED, constants.RESERVATION_COMPLETED, constants.RESERVATION_NO_SHOW:
			if err := helper.ReleaseTableIfIdle(database.DB, *reservation.TableId, reservation.ID); err != nil {
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
			}
		case constants.RESERVATION_PENDING, constants.RESERVATION_CONFIRMED:
			if err := database.DB.Model(&model.Table{}).
				Where("id = ? AND status = ?", *reservation.TableId, constants.TABLE_FREE).
				Update("status", constants.TABLE_RESERVED).Error; err != nil {
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
			}
		}
	}
	// Moving to a different table releases the old one.
	if input.TableId != nil && previousTableId != nil && *previousTableId != *input.TableId {
		if err := helper.ReleaseTableIfIdle(database.DB, *previousTableId, reservation.ID); err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	broadcast(constants.CHANNEL_ADMIN, map[string]any{
		"tipo":       constants.EVENT_RESERVATION_UPDATE,
		"reserva_id": reservation.ID,
		"cliente":    reservation.CustomerName(),
		"estado":     reservation.Status,
		"fecha":      reservation.Date.Format(time.RFC3339),
	})

	return utils.SuccessResponse(c, fiber.StatusOK, reservation)
}

func DeleteReservation(c *fiber.Ctx) error {
	reservationId := c.Locals("reservationId").(uint)

	var reservation model.Reservation
	if err := database.DB.First(&reservation, reservationId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RESERVATION_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := database.DB.Delete(&reservation).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if reservation.TableId != nil {
		if err := helper.ReleaseTableIfIdle(database.DB, *reservation.TableId, reservation.ID); err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	broadcast(constants.CHANNEL_ADMIN, map[string]any{
		"tipo":       constants.EVENT_DELETE_RESERVATION,
		"reserva_id": reservation.ID,
		"cliente":    reservation.CustomerName(),
		"accion":     "eliminada",
	})

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "reservation deleted"})
}
