package handler

import (
	"errors"
	"fmt"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func billToResponse(bill model.Bill) model.BillResponse {
	return model.BillResponse{
		Bill:  bill,
		Items: helper.DecodeBillItems(bill.Details),
	}
}

func GetBills(c *fiber.Ctx) error {
	user, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_ACTIVE, err)
	}
	capability, allowed := helper.Allows(user.Role, helper.OpBillView)
	if !allowed {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_PERMISSION, errors.New("bill access not allowed"))
	}

	var filter model.FilterBill
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	query := database.DB.Model(&model.Bill{})
	if filter.DateFrom != nil {
		query = query.Where("charged_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("charged_at <= ?", *filter.DateTo)
	}
	if filter.TableId != nil {
		query = query.Where("table_id = ?", *filter.TableId)
	}
	if filter.WaiterId != nil {
		query = query.Where("waiter_id = ?", *filter.WaiterId)
	}
	if capability.OwnOnly {
		query = query.Where("waiter_id = ?", user.ID)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var bills []model.Bill
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).
		Order("charged_at DESC").Find(&bills).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	responses := make([]model.BillResponse, 0, len(bills))
	for _, bill := range bills {
		responses = append(responses, billToResponse(bill))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       responses,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

func GetBillById(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	user, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_ACTIVE, err)
	}
	capability, allowed := helper.Allows(user.Role, helper.OpBillView)
	if !allowed {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_PERMISSION, errors.New("bill access not allowed"))
	}

	var bill model.Bill
	if err := database.DB.First(&bill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BILL_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if capability.OwnOnly && (bill.WaiterId == nil || *bill.WaiterId != user.ID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_PERMISSION, errors.New("bill belongs to another waiter"))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, billToResponse(bill))
}

// UpdateBill only touches the payment method; the snapshot, total and charge
// time are immutable once the bill exists.
func UpdateBill(c *fiber.Ctx) error {
	input := c.Locals("inputUpdateBill").(model.UpdateBillInput)
	billId := c.Locals("billId").(uint)
	user := c.Locals("currentUser").(model.User)
	capability := c.Locals("capability").(helper.Capability)

	var bill model.Bill
	if err := database.DB.First(&bill, billId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BILL_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if capability.OwnOnly && (bill.WaiterId == nil || *bill.WaiterId != user.ID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_PERMISSION, errors.New("bill belongs to another waiter"))
	}

	if err := database.DB.Model(&bill).Update("payment_method", *input.PaymentMethod).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	bill.PaymentMethod = *input.PaymentMethod

	return utils.SuccessResponse(c, fiber.StatusOK, billToResponse(bill))
}

func DeleteBill(c *fiber.Ctx) error {
	billId := c.Locals("billId").(uint)

	var bill model.Bill
	if err := database.DB.First(&bill, billId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BILL_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := database.DB.Delete(&bill).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "bill deleted"})
}

// GetBillSummary is the admin revenue report over a date range, broken down by
// waiter. The range defaults to the last 30 days.
func GetBillSummary(c *fiber.Ctx) error {
	user, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_ACTIVE, err)
	}
	if _, allowed := helper.Allows(user.Role, helper.OpBillSummary); !allowed {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_PERMISSION, errors.New("summary is admin only"))
	}

	var filter model.FilterBill
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	now := time.Now().UTC()
	dateFrom := now.AddDate(0, 0, -30)
	dateTo := now
	if filter.DateFrom != nil {
		dateFrom = *filter.DateFrom
	}
	if filter.DateTo != nil {
		dateTo = *filter.DateTo
	}

	var bills []model.Bill
	if err := database.DB.
		Where("charged_at >= ? AND charged_at < ?", dateFrom, dateTo).
		Find(&bills).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	summary := model.BillSummary{
		DateFrom: dateFrom,
		DateTo:   dateTo,
		ByWaiter: map[string]model.WaiterBreakdown{},
	}
	for _, bill := range bills {
		summary.TotalRevenue += bill.Total
		summary.TotalBills++

		breakdown := summary.ByWaiter[bill.WaiterName]
		breakdown.Total += bill.Total
		breakdown.Bills++
		summary.ByWaiter[bill.WaiterName] = breakdown
	}
	if summary.TotalBills > 0 {
		summary.AveragePerBill = summary.TotalRevenue / float64(summary.TotalBills)
	}
	for name, breakdown := range summary.ByWaiter {
		breakdown.Average = breakdown.Total / float64(breakdown.Bills)
		summary.ByWaiter[name] = breakdown
	}

	return utils.SuccessResponse(c, fiber.StatusOK, summary)
}

// GetBillQR renders a receipt QR with the bill reference, handed to customers
// for digital copies.
func GetBillQR(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	user, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_ACTIVE, err)
	}
	capability, allowed := helper.Allows(user.Role, helper.OpBillView)
	if !allowed {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_PERMISSION, errors.New("bill access not allowed"))
	}

	var bill model.Bill
	if err := database.DB.First(&bill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BILL_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if capability.OwnOnly && (bill.WaiterId == nil || *bill.WaiterId != user.ID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_PERMISSION, errors.New("bill belongs to another waiter"))
	}

	content := fmt.Sprintf("cuenta:%d|mesa:%d|total:%.2f|fecha:%s",
		bill.ID, bill.TableNumber, bill.Total, bill.ChargedAt.Format(time.RFC3339))
	image, err := utils.GenerateQRCode(content, 256)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Set("Content-Type", "image/png")
	return c.Send(image)
}
