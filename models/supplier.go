package models

import (
	"github.com/jinzhu/gorm"
)

type Supplier struct {
	gorm.Model
	Name     string    `json:"name" binding:"required" gorm:"not null"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	Address  string    `json:"address"`
	Products []Product `json:"-" gorm:"foreignkey:SupplierID"`
}
