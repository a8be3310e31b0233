package models

import (
	"time"
)

// Identity providers a user row can originate from.
const (
	ProviderLocal    = "local"
	ProviderLinkedIn = "linkedin"
	ProviderDemo     = "demo"
)

type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Username      string    `gorm:"not null" json:"username"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Password      string    `gorm:"not null" json:"-"` // bcrypt hash
	Avatar        string    `gorm:"default:☕" json:"avatar"` // emoji 아바타
	Bio           string    `gorm:"size:200" json:"bio"`
	IsMentor      bool      `gorm:"default:false" json:"is_mentor"`
	CouponBalance int       `gorm:"default:3" json:"coupon_balance"` // 가입 시 웰컴 커피쿠폰 3장
	Provider      string    `gorm:"size:20;default:'local';not null" json:"provider"` // local, linkedin, demo
	ProviderID    string    `gorm:"index" json:"-"`                                   // LinkedIn member id
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	// No DeletedAt for hard delete
}
