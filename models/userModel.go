package models

import "gorm.io/gorm"

// StaffUser accounts are provisioned out of band; there is no public
// signup flow.
type StaffUser struct {
	gorm.Model
	Username  string `json:"username" gorm:"uniqueIndex"`
	Password  string `json:"-"`
	IsManager bool   `json:"isManager"`
}

type LoginData struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
