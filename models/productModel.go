package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductCategory struct {
	gorm.Model
	Name     string    `json:"name" binding:"required"`
	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}

type Product struct {
	gorm.Model
	Name          string           `json:"name" binding:"required"`
	CategoryID    *uint            `json:"categoryId"`
	Category      *ProductCategory `json:"category,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Price         decimal.Decimal  `json:"price" gorm:"type:decimal(8,2)"`
	Image         string           `json:"image"`
	SpecialStatus bool             `json:"specialStatus" gorm:"index"`
	Description   string           `json:"description"`
}
