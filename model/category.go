package model

type Category struct {
	DTO
	Name        string `gorm:"uniqueIndex;not null" validate:"required" json:"name"`
	Description string `json:"description"`

	Products []Product `gorm:"foreignKey:CategoryId" json:"products,omitempty"`
}

type CreateCategoryInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type UpdateCategoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
