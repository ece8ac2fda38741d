package model

type Product struct {
	DTO
	Name        string  `gorm:"not null" validate:"required" json:"name"`
	Slug        string  `gorm:"uniqueIndex" json:"slug"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" validate:"required,gt=0" json:"price"`
	PrepTime    int     `gorm:"default:10" json:"prepTime"`
	CategoryId  uint    `gorm:"not null" json:"categoryId"`
	Category    Category `gorm:"foreignKey:CategoryId" json:"category"`
	Type        string  `gorm:"not null" validate:"required,oneof=comida bebida postre entrada complemento" json:"type"`
	ImageUrl    string  `json:"imageUrl"`
	Available   bool    `gorm:"not null;default:true" json:"available"`

	OrderItems []OrderItem `gorm:"foreignKey:ProductId" json:"-"`
}

type CreateProductInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	PrepTime    int     `json:"prepTime" validate:"omitempty,min=1"`
	CategoryId  uint    `json:"categoryId" validate:"required"`
	Type        string  `json:"type" validate:"required,oneof=comida bebida postre entrada complemento"`
	ImageUrl    string  `json:"imageUrl"`
	Available   *bool   `json:"available"`
}

type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	PrepTime    *int     `json:"prepTime" validate:"omitempty,min=1"`
	CategoryId  *uint    `json:"categoryId"`
	Type        *string  `json:"type" validate:"omitempty,oneof=comida bebida postre entrada complemento"`
	ImageUrl    *string  `json:"imageUrl"`
	Available   *bool    `json:"available"`
}

type FilterProduct struct {
	Pagination
	CategoryId *uint   `query:"categoryId"`
	Type       *string `query:"type"`
	Available  *bool   `query:"available"`
}
