package handler

import (
	"errors"
	"strings"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newPublicCode builds the short code printed on kitchen tickets.
func newPublicCode() string {
	return "PED-" + strings.ToUpper(uuid.NewString()[:8])
}

func orderIsClosed(status string) bool {
	return status == constants.ORDER_DELIVERED || status == constants.ORDER_CANCELED
}

func recomputeOrderTotal(tx *gorm.DB, orderID uint) error {
	var total float64
	if err := tx.Model(&model.OrderItem{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(SUM(subtotal), 0)").
		Scan(&total).Error; err != nil {
		return err
	}
	return tx.Model(&model.Order{}).Where("id = ?", orderID).Update("total", total).Error
}

func GetOrders(c *fiber.Ctx) error {
	user, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_ACTIVE, err)
	}

	var filter model.FilterOrder
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	query := database.DB.Model(&model.Order{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.OnlyOpen != nil && *filter.OnlyOpen {
		query = query.Where("status NOT IN ?", []string{constants.ORDER_DELIVERED, constants.ORDER_CANCELED})
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", *filter.DateTo)
	}
	if filter.TableId != nil {
		query = query.Where("table_id = ?", *filter.TableId)
	}
	if filter.WaiterId != nil {
		query = query.Where("waiter_id = ?", *filter.WaiterId)
	}
	// Waiters only see their own orders; kitchen and admin see the floor.
	if cap, ok := helper.Allows(user.Role, helper.OpOrderUpdate); ok && cap.OwnOnly {
		query = query.Where("waiter_id = ?", user.ID)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var orders []model.Order
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).
		Preload("Items.Product").Preload("Table").Preload("Waiter").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       orders,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

func GetOrderById(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	user, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_ACTIVE, err)
	}

	var order model.Order
	if err := database.DB.Preload("Items.Product").Preload("Table").Preload("Waiter").
		First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if cap, ok := helper.Allows(user.Role, helper.OpOrderUpdate); ok && cap.OwnOnly && order.WaiterId != user.ID {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_PERMISSION, errors.New("order belongs to another waiter"))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// CreateOrder opens an order on a table: the lines are priced from the current
// menu, the table flips to occupied, and the kitchen is notified. The whole
// write is one transaction; an unknown or unavailable product rolls everything
// back.
func CreateOrder(c *fiber.Ctx) error {
	input := c.Locals("inputCreateOrder").(model.CreateOrderInput)
	user := c.Locals("currentUser").(model.User)

	var order model.Order
	var table model.Table

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&table, input.TableId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New(constants.TABLE_NOT_FOUND)
			}
			return err
		}
		if table.Status != constants.TABLE_FREE && table.Status != constants.TABLE_OCCUPIED {
			return errors.New(constants.TABLE_NOT_AVAILABLE)
		}

		order = model.Order{
			PublicCode: newPublicCode(),
			TableId:    &table.ID,
			WaiterId:   user.ID,
			Status:     constants.ORDER_RECEIVED,
			Notes:      input.Notes,
		}

		total := 0.0
		for _, line := range input.Items {
			var product model.Product
			if err := tx.Where("id = ? AND available = ?", line.ProductId, true).First(&product).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errors.New(constants.PRODUCT_NOT_FOUND)
				}
				return err
			}
			subtotal := product.Price * float64(line.Quantity)
			order.Items = append(order.Items, model.OrderItem{
				ProductId: &product.ID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
				Subtotal:  subtotal,
				Status:    constants.ORDER_RECEIVED,
				Notes:     line.Notes,
			})
			total += subtotal
		}
		order.Total = total

		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if table.Status != constants.TABLE_OCCUPIED {
			if err := tx.Model(&table).Update("status", constants.TABLE_OCCUPIED).Error; err != nil {
				return err
			}
			table.Status = constants.TABLE_OCCUPIED
		}
		return nil
	})
	if err != nil {
		switch err.Error() {
		case constants.TABLE_NOT_FOUND:
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TABLE_NOT_FOUND, nil)
		case constants.TABLE_NOT_AVAILABLE:
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.TABLE_NOT_AVAILABLE, nil)
		case constants.PRODUCT_NOT_FOUND:
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.PRODUCT_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	broadcast(constants.CHANNEL_KITCHEN, map[string]any{
		"tipo":      constants.EVENT_NEW_ORDER,
		"pedido_id": order.ID,
		"mesa":      table.Number,
		"camarero":  user.FullName(),
		"hora":      time.Now().UTC().Format(time.RFC3339),
	})

	database.DB.Preload("Items.Product").First(&order, order.ID)
	return utils.SuccessResponse(c, fiber.StatusCreated, order)
}

func UpdateOrder(c *fiber.Ctx) error {
	input := c.Locals("inputUpdateOrder").(model.UpdateOrderInput)
	orderId := c.Locals("orderId").(uint)
	user := c.Locals("currentUser").(model.User)
	capability := c.Locals("capability").(helper.Capability)

	var order model.Order
	if err := database.DB.Preload("Table").First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if capability.OwnOnly && order.WaiterId != user.ID {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_PERMISSION, errors.New("order belongs to another waiter"))
	}
	if orderIsClosed(order.Status) {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.ORDER_ALREADY_CLOSED, errors.New("order closed"))
	}

	updates := map[string]any{}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&order).Updates(updates).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}
	if input.Status != nil {
		order.Status = *input.Status
	}

	var bill *model.Bill
	// When the last open order on an occupied table goes terminal, the table
	// closes through the same orchestration as an explicit status change.
	if input.Status != nil && orderIsClosed(*input.Status) && order.TableId != nil {
		var remaining int64
		if err := database.DB.Model(&model.Order{}).
			Where("table_id = ? AND id <> ?", *order.TableId, order.ID).
			Where("status NOT IN ?", []string{constants.ORDER_DELIVERED, constants.ORDER_CANCELED}).
			Count(&remaining).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if remaining == 0 {
			_, closedBill, err := helper.CloseTable(database.DB, *order.TableId, user, "")
			if err != nil {
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
			}
			bill = closedBill
			if order.Status != constants.ORDER_CANCELED {
				order.Status = constants.ORDER_DELIVERED
				order.TableId = nil
			}
			if bill != nil && order.Table != nil {
				broadcast(constants.CHANNEL_ADMIN, tableClosedEvent(order.Table.Number, bill))
			}
		}
	}

	tableNumber := uint(0)
	if order.Table != nil {
		tableNumber = order.Table.Number
	}
	event := map[string]any{
		"tipo":      constants.EVENT_ORDER_UPDATE,
		"pedido_id": order.ID,
		"estado":    order.Status,
		"mesa":      tableNumber,
	}
	// Kitchen state changes go to the waiters; everything else goes to the
	// kitchen consoles.
	if user.Role == constants.ROLE_COOK {
		broadcast(constants.CHANNEL_WAITERS, event)
	} else {
		broadcast(constants.CHANNEL_KITCHEN, event)
	}

	response := fiber.Map{"order": order}
	if bill != nil {
		response["bill"] = bill
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func AddOrderItem(c *fiber.Ctx) error {
	input := c.Locals("inputCreateOrderItem").(model.CreateOrderItemInput)
	orderId := c.Locals("orderId").(uint)
	user := c.Locals("currentUser").(model.User)
	capability := c.Locals("capability").(helper.Capability)

	var order model.Order
	if err := database.DB.Preload("Table").First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if capability.OwnOnly && order.WaiterId != user.ID {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_PERMISSION, errors.New("order belongs to another waiter"))
	}
	if orderIsClosed(order.Status) {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.ORDER_ALREADY_CLOSED, errors.New("order closed"))
	}

	var item model.OrderItem
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.Where("id = ? AND available = ?", input.ProductId, true).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New(constants.PRODUCT_NOT_FOUND)
			}
			return err
		}
		item = model.OrderItem{
			OrderId:   order.ID,
			ProductId: &product.ID,
			Quantity:  input.Quantity,
			UnitPrice: product.Price,
			Subtotal:  product.Price * float64(input.Quantity),
			Status:    constants.ORDER_RECEIVED,
			Notes:     input.Notes,
		}
		item.Product = &product
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return recomputeOrderTotal(tx, order.ID)
	})
	if err != nil {
		if err.Error() == constants.PRODUCT_NOT_FOUND {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.PRODUCT_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	productName := ""
	if item.Product != nil {
		productName = item.Product.Name
	}
	broadcast(constants.CHANNEL_KITCHEN, map[string]any{
		"tipo":       constants.EVENT_NEW_ITEM,
		"pedido_id":  order.ID,
		"detalle_id": item.ID,
		"producto":   productName,
		"cantidad":   item.Quantity,
	})

	return utils.SuccessResponse(c, fiber.StatusCreated, item)
}

func UpdateOrderItem(c *fiber.Ctx) error {
	input := c.Locals("inputUpdateOrderItem").(model.UpdateOrderItemInput)
	orderId := c.Locals("orderId").(uint)
	itemId := c.Locals("itemId").(uint)
	user := c.Locals("currentUser").(model.User)
	capability := c.Locals("capability").(helper.Capability)

	var order model.Order
	if err := database.DB.First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if capability.OwnOnly && order.WaiterId != user.ID {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_PERMISSION, errors.New("order belongs to another waiter"))
	}
	if orderIsClosed(order.Status) {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.ORDER_ALREADY_CLOSED, errors.New("order closed"))
	}

	var item model.OrderItem
	if err := database.DB.Preload("Product").
		Where("id = ? AND order_id = ?", itemId, order.ID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_ITEM_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{}
		if input.Quantity != nil {
			updates["quantity"] = *input.Quantity
			updates["subtotal"] = item.UnitPrice * float64(*input.Quantity)
		}
		if input.Status != nil {
			updates["status"] = *input.Status
		}
		if input.Notes != nil {
			updates["notes"] = *input.Notes
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&item).Updates(updates).Error; err != nil {
			return err
		}
		if input.Quantity != nil {
			return recomputeOrderTotal(tx, order.ID)
		}
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	productName := ""
	if item.Product != nil {
		productName = item.Product.Name
	}
	event := map[string]any{
		"tipo":       constants.EVENT_ITEM_UPDATE,
		"pedido_id":  order.ID,
		"detalle_id": item.ID,
		"producto":   productName,
		"estado":     item.Status,
	}
	if user.Role == constants.ROLE_COOK {
		broadcast(constants.CHANNEL_WAITERS, event)
	} else {
		broadcast(constants.CHANNEL_KITCHEN, event)
	}

	database.DB.Preload("Product").First(&item, item.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

// DeleteOrderItem removes one line and recomputes the order total. The last
// line cannot be removed; the order must be canceled instead so the close
// path sees a consistent state.
func DeleteOrderItem(c *fiber.Ctx) error {
	orderId := c.Locals("orderId").(uint)
	itemId := c.Locals("itemId").(uint)
	user := c.Locals("currentUser").(model.User)
	capability := c.Locals("capability").(helper.Capability)

	var order model.Order
	if err := database.DB.First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if capability.OwnOnly && order.WaiterId != user.ID {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_PERMISSION, errors.New("order belongs to another waiter"))
	}
	if orderIsClosed(order.Status) {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.ORDER_ALREADY_CLOSED, errors.New("order closed"))
	}

	var item model.OrderItem
	if err := database.DB.Where("id = ? AND order_id = ?", itemId, order.ID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_ITEM_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var lineCount int64
	if err := database.DB.Model(&model.OrderItem{}).Where("order_id = ?", order.ID).Count(&lineCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if lineCount <= 1 {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.ORDER_LAST_ITEM, errors.New("last line on order"))
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&item).Error; err != nil {
			return err
		}
		return recomputeOrderTotal(tx, order.ID)
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	broadcast(constants.CHANNEL_KITCHEN, map[string]any{
		"tipo":       constants.EVENT_DELETE_ITEM,
		"pedido_id":  order.ID,
		"detalle_id": item.ID,
	})

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "item deleted"})
}
