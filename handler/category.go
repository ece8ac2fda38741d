package handler

import (
	"errors"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetCategories(c *fiber.Ctx) error {
	var categories []model.Category
	if err := database.DB.Preload("Products").Order("name").Find(&categories).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, categories)
}

func GetCategoryById(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	var category model.Category
	if err := database.DB.Preload("Products").First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CATEGORY_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, category)
}

func CreateCategory(c *fiber.Ctx) error {
	input := c.Locals("inputCreateCategory").(model.CreateCategoryInput)

	category := model.Category{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := database.DB.Create(&category).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	menuChanged(c, "crear")
	return utils.SuccessResponse(c, fiber.StatusCreated, category)
}

func UpdateCategory(c *fiber.Ctx) error {
	input := c.Locals("inputUpdateCategory").(model.UpdateCategoryInput)
	categoryId := c.Locals("categoryId").(uint)

	var category model.Category
	if err := database.DB.First(&category, categoryId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CATEGORY_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := copier.CopyWithOption(&category, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := database.DB.Save(&category).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	menuChanged(c, "actualizar")
	return utils.SuccessResponse(c, fiber.StatusOK, category)
}

// DeleteCategory refuses while products still hang off the category.
func DeleteCategory(c *fiber.Ctx) error {
	categoryId := c.Locals("categoryId").(uint)

	var category model.Category
	if err := database.DB.First(&category, categoryId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CATEGORY_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var productCount int64
	if err := database.DB.Model(&model.Product{}).Where("category_id = ?", category.ID).Count(&productCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if productCount > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.CATEGORY_HAS_PRODUCTS, errors.New("category not empty"))
	}

	if err := database.DB.Delete(&category).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	menuChanged(c, "eliminar")
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "category deleted"})
}
