package member

import (
	"errors"
	"time"
)

// MembershipType 表示會員方案名稱，僅供顯示與後台管理。
const (
	MembershipLifetime = "Lifetime Access"
	MembershipMonthly  = "Monthly"
)

// Member 為啟用碼制會員帳號。ActivationCode 欄位存 bcrypt 雜湊，
// 明碼只在管理端建立帳號時經手一次。
type Member struct {
	ID             int64
	UID            string
	Name           string
	Email          string
	ActivationCode string
	IsAdmin        bool
	IsActive       bool
	MembershipType string
	PlanType       string
	JoinDate       time.Time
	ExpiresAt      *time.Time
	LastLogin      *time.Time
	PictureURL     string
}

// Validate 基本必填檢查。
func (m Member) Validate() error {
	if m.UID == "" {
		return errors.New("uid is required")
	}
	if m.Email == "" {
		return errors.New("email is required")
	}
	if m.Name == "" {
		return errors.New("name is required")
	}
	if m.ActivationCode == "" {
		return errors.New("activation code is required")
	}
	return nil
}

// CanLogin 檢查帳號是否可登入：需啟用且未過期。
func (m Member) CanLogin(now time.Time) error {
	if !m.IsActive {
		return ErrInactive
	}
	if m.ExpiresAt != nil && m.ExpiresAt.Before(now) {
		return ErrExpired
	}
	return nil
}

var (
	ErrNotFound = errors.New("member not found")
	ErrInactive = errors.New("member not activated")
	ErrExpired  = errors.New("membership expired")
)
