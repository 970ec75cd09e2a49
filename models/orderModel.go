package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	StatusUnprocessed OrderStatus = "NP"
	StatusProcessed   OrderStatus = "P"
	StatusDelivered   OrderStatus = "D"
)

func (s OrderStatus) Display() string {
	switch s {
	case StatusUnprocessed:
		return "не обработан"
	case StatusProcessed:
		return "обработан"
	case StatusDelivered:
		return "доставлен"
	}
	return string(s)
}

type PaymentMethod string

const (
	PaymentInCash       PaymentMethod = "CH"
	PaymentByCard       PaymentMethod = "CD"
	PaymentNotSpecified PaymentMethod = "NS"
)

func (m PaymentMethod) Display() string {
	switch m {
	case PaymentInCash:
		return "Наличностью"
	case PaymentByCard:
		return "Электронно"
	case PaymentNotSpecified:
		return "Не указано"
	}
	return string(m)
}

type Order struct {
	gorm.Model
	Address       string        `json:"address"`
	Firstname     string        `json:"firstname"`
	Lastname      string        `json:"lastname"`
	Phonenumber   string        `json:"phonenumber" gorm:"index"`
	Status        OrderStatus   `json:"status" gorm:"type:varchar(12);default:'NP';index"`
	Comment       string        `json:"comment"`
	PaymentMethod PaymentMethod `json:"paymentMethod" gorm:"type:varchar(12);default:'NS';index"`
	RegisteredAt  time.Time     `json:"registeredAt" gorm:"index"`
	CalledAt      *time.Time    `json:"calledAt" gorm:"index"`
	DeliveredAt   *time.Time    `json:"deliveredAt" gorm:"index"`
	Items         []OrderItem   `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem keeps the line price fixed at order time. Later product price
// changes must not move historical order totals.
type OrderItem struct {
	gorm.Model
	OrderID   uint            `json:"orderId"`
	ProductID uint            `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(8,2)"`
}
