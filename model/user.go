// Package model defines database models
package model

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"unique;not null" json:"email"`
	Name         string `gorm:"not null" json:"name"`
	PasswordHash string `gorm:"not null" json:"-"`
	Status       string `gorm:"not null" json:"status"`

	Posts []Post `gorm:"foreignKey:AuthorID" json:"-"`
}
