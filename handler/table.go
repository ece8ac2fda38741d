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

func GetTables(c *fiber.Ctx) error {
	var filter model.FilterTable
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	query := database.DB.Model(&model.Table{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var tables []model.Table
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).Order("number").Find(&tables).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       tables,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

func GetTableById(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	var table model.Table
	if err := database.DB.First(&table, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TABLE_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, table)
}

// tableClosedEvent is the admin-console payload emitted when a close cuts a
// bill.
func tableClosedEvent(tableNumber uint, bill *model.Bill) map[string]any {
	return map[string]any{
		"tipo":      constants.EVENT_TABLE_CLOSED,
		"mesa":      tableNumber,
		"cuenta_id": bill.ID,
		"total":     bill.Total,
	}
}

// GetTableActiveReservation returns the pending/confirmed reservation whose
// slot falls within two hours of now, if any.
func GetTableActiveReservation(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	var table model.Table
	if err := database.DB.First(&table, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TABLE_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	now := time.Now().UTC()
	var reservation model.Reservation
	err := database.DB.
		Where("table_id = ?", table.ID).
		Where("status IN ?", []string{constants.RESERVATION_PENDING, constants.RESERVATION_CONFIRMED}).
		Where("date BETWEEN ? AND ?", now.Add(-2*time.Hour), now.Add(2*time.Hour)).
		Order("date").
		First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SuccessResponse(c, fiber.StatusOK, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, reservation)
}

func CreateTable(c *fiber.Ctx) error {
	input := c.Locals("inputCreateTable").(model.CreateTableInput)

	table := model.Table{
		Number:   input.Number,
		Capacity: input.Capacity,
		Location: input.Location,
		Status:   constants.TABLE_FREE,
	}
	if err := database.DB.Create(&table).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, table)
}

func UpdateTable(c *fiber.Ctx) error {
	input := c.Locals("inputUpdateTable").(model.UpdateTableInput)
	tableId := c.Locals("tableId").(uint)
	user := c.Locals("currentUser").(model.User)

	var table model.Table
	if err := database.DB.First(&table, tableId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TABLE_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// OCCUPIED -> FREE goes through the close orchestration, which settles the
	// open orders and cuts the bill. Any other status change is a plain update.
	if input.Status != nil && *input.Status == constants.TABLE_FREE && table.Status == constants.TABLE_OCCUPIED {
		paymentMethod := ""
		if input.PaymentMethod != nil {
			paymentMethod = *input.PaymentMethod
		}
		orders, bill, err := helper.CloseTable(database.DB, table.ID, user, paymentMethod)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		for _, order := range orders {
			broadcast(constants.CHANNEL_KITCHEN, map[string]any{
				"tipo":      constants.EVENT_ORDER_UPDATE,
				"pedido_id": order.ID,
				"estado":    order.Status,
				"mesa":      table.Number,
			})
		}
		if bill != nil {
			broadcast(constants.CHANNEL_ADMIN, tableClosedEvent(table.Number, bill))
		}
		table.Status = constants.TABLE_FREE
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
			"table": table,
			"bill":  bill,
		})
	}

	updates := map[string]any{}
	if input.Number != nil {
		updates["number"] = *input.Number
	}
	if input.Capacity != nil {
		updates["capacity"] = *input.Capacity
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&table).Updates(updates).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}
	return utils.SuccessResponse(c, fiber.StatusOK, table)
}

// DeleteTable removes a table that has neither open orders nor future
// reservations. Historical orders and bills keep their snapshot columns, so
// the delete never rewrites history.
func DeleteTable(c *fiber.Ctx) error {
	tableId := c.Locals("tableId").(uint)

	var table model.Table
	if err := database.DB.First(&table, tableId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TABLE_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var openOrders int64
	if err := database.DB.Model(&model.Order{}).
		Where("table_id = ? AND status NOT IN ?", table.ID, []string{constants.ORDER_DELIVERED, constants.ORDER_CANCELED}).
		Count(&openOrders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if openOrders > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.TABLE_HAS_ORDERS, errors.New("open orders on table"))
	}

	var futureReservations int64
	if err := database.DB.Model(&model.Reservation{}).
		Where("table_id = ? AND date > ?", table.ID, time.Now().UTC()).
		Where("status IN ?", []string{constants.RESERVATION_PENDING, constants.RESERVATION_CONFIRMED}).
		Count(&futureReservations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if futureReservations > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.TABLE_HAS_RESERVATION, errors.New("future reservations on table"))
	}

	if err := database.DB.Delete(&table).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "table deleted"})
}
