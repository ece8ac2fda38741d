package handler

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

var cld *cloudinary.Cloudinary

// UseCloudinary installs the media client used for product image uploads.
func UseCloudinary(client *cloudinary.Cloudinary) {
	cld = client
}

// menuChanged invalidates the cache and tells the consoles to refetch.
func menuChanged(c *fiber.Ctx, accion string) {
	helper.InvalidateMenu(c.Context())
	event := map[string]any{
		"tipo":   constants.EVENT_MENU_UPDATE,
		"accion": accion,
	}
	broadcast(constants.CHANNEL_KITCHEN, event)
	broadcast(constants.CHANNEL_WAITERS, event)
}

func GetProducts(c *fiber.Ctx) error {
	var filter model.FilterProduct
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	// The plain "available menu" query is the hot path of the waiter consoles;
	// it is served from the cache when possible.
	menuQuery := filter.Available != nil && *filter.Available &&
		filter.CategoryId == nil && filter.Type == nil &&
		filter.Limit == nil && filter.Page == nil
	if menuQuery {
		if products, ok := helper.CachedMenu(c.Context()); ok {
			return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
				Rows:       products,
				TotalCount: int64(len(products)),
			})
		}
	}

	query := database.DB.Model(&model.Product{})
	if filter.CategoryId != nil {
		query = query.Where("category_id = ?", *filter.CategoryId)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Available != nil {
		query = query.Where("available = ?", *filter.Available)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var products []model.Product
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).
		Preload("Category").Order("name").Find(&products).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if menuQuery {
		helper.StoreMenu(c.Context(), products)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       products,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

func GetProductById(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	var product model.Product
	if err := database.DB.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, product)
}

func CreateProduct(c *fiber.Ctx) error {
	input := c.Locals("inputCreateProduct").(model.CreateProductInput)

	product := model.Product{
		Name:        input.Name,
		Slug:        helper.UniqueProductSlug(input.Name, 0),
		Description: input.Description,
		Price:       input.Price,
		CategoryId:  input.CategoryId,
		Type:        input.Type,
		ImageUrl:    input.ImageUrl,
		Available:   true,
	}
	if input.PrepTime > 0 {
		product.PrepTime = input.PrepTime
	}
	if input.Available != nil {
		product.Available = *input.Available
	}

	if err := database.DB.Create(&product).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	menuChanged(c, "crear")
	return utils.SuccessResponse(c, fiber.StatusCreated, product)
}

func UpdateProduct(c *fiber.Ctx) error {
	input := c.Locals("inputUpdateProduct").(model.UpdateProductInput)
	productId := c.Locals("productId").(uint)

	var product model.Product
	if err := database.DB.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := copier.CopyWithOption(&product, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if input.Available != nil {
		product.Available = *input.Available
	}
	if input.Name != nil {
		product.Slug = helper.UniqueProductSlug(*input.Name, product.ID)
	}

	if err := database.DB.Save(&product).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	menuChanged(c, "actualizar")
	return utils.SuccessResponse(c, fiber.StatusOK, product)
}

// DeleteProduct removes a product that is not on any open order. Lines on
// closed orders keep the product name in their annotation so old tickets and
// bills stay readable.
func DeleteProduct(c *fiber.Ctx) error {
	productId := c.Locals("productId").(uint)

	var product model.Product
	if err := database.DB.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var activeLines int64
	if err := database.DB.Model(&model.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.product_id = ?", product.ID).
		Where("orders.status NOT IN ?", []string{constants.ORDER_DELIVERED, constants.ORDER_CANCELED}).
		Count(&activeLines).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if activeLines > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.PRODUCT_IN_ORDERS, errors.New("product on open orders"))
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Snapshot the name into historical lines before the FK goes null.
		if err := tx.Model(&model.OrderItem{}).
			Where("product_id = ? AND (notes IS NULL OR notes = '')", product.ID).
			Update("notes", product.Name).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	menuChanged(c, "eliminar")
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "product deleted"})
}

// UploadProductImage pushes the image to Cloudinary and stores the delivered
// URL on the product.
func UploadProductImage(c *fiber.Ctx) error {
	productId := c.Locals("productId").(uint)

	if cld == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, constants.ERROR_INTERNAL_ERROR, errors.New("media storage not configured"))
	}

	var product model.Product
	if err := database.DB.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	reader, err := file.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	defer reader.Close()

	result, err := cld.Upload.Upload(context.Background(), reader, uploader.UploadParams{
		Folder:       "productos",
		PublicID:     fmt.Sprintf("producto_%d_%d", product.ID, time.Now().Unix()),
		ResourceType: "image",
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := database.DB.Model(&product).Update("image_url", result.SecureURL).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	product.ImageUrl = result.SecureURL

	menuChanged(c, "actualizar")
	return utils.SuccessResponse(c, fiber.StatusOK, product)
}

// GenerateSignature signs direct-to-Cloudinary upload parameters for the
// admin console.
func GenerateSignature(c *fiber.Ctx) error {
	user, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_ACTIVE, err)
	}
	if _, allowed := helper.Allows(user.Role, helper.OpMenuManage); !allowed {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_PERMISSION, nil)
	}

	type SigParams struct {
		Folder   string `json:"folder"`
		PublicID string `json:"public_id"`
	}

	var params SigParams
	if err := c.BodyParser(&params); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	timestamp := time.Now().Unix()

	paramMap := map[string]string{
		"timestamp": fmt.Sprintf("%d", timestamp),
	}
	if params.Folder != "" {
		paramMap["folder"] = params.Folder
	}
	if params.PublicID != "" {
		paramMap["public_id"] = params.PublicID
	}

	keys := make([]string, 0, len(paramMap))
	for k := range paramMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var stringToSign strings.Builder
	for i, k := range keys {
		if i > 0 {
			stringToSign.WriteString("&")
		}
		stringToSign.WriteString(k)
		stringToSign.WriteString("=")
		stringToSign.WriteString(paramMap[k])
	}
	stringToSign.WriteString(os.Getenv("CLOUDINARY_API_SECRET"))

	h := sha1.New()
	h.Write([]byte(stringToSign.String()))
	signature := hex.EncodeToString(h.Sum(nil))

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"apiKey":    os.Getenv("CLOUDINARY_API_KEY"),
		"cloudName": os.Getenv("CLOUDINARY_CLOUD_NAME"),
	})
}
