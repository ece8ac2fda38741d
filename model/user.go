package model

type User struct {
	DTO
	Username  string `gorm:"uniqueIndex;not null" validate:"required,min=3,max=50" json:"username"`
	Email     string `gorm:"uniqueIndex;not null" validate:"required,email" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	FirstName string `gorm:"not null" json:"firstName"`
	LastName  string `gorm:"not null" json:"lastName"`
	Role      string `gorm:"not null" json:"role"`
	Active    bool   `gorm:"not null;default:true" json:"active"`

	Orders []Order `gorm:"foreignKey:WaiterId" json:"-"`
}

// FullName is the display form snapshotted into bills and event payloads.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type CreateUserInput struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=admin camarero cocinero"`
}

type UpdateUserInput struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin camarero cocinero"`
	Active    *bool   `json:"active"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	RepeatPassword  string `json:"repeatPassword" validate:"required"`
}

type FilterUser struct {
	Pagination
	Role      *string `query:"role"`
	Active    *bool   `query:"active"`
	SearchKey string  `query:"searchKey"`
}
