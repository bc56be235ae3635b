package models

import "time"

// RefreshToken представляет refresh token администратора.
// На одного member хранится не более одной живой записи.
type RefreshToken struct {
	MemberNo    int64     `json:"member_no"`    // номер аккаунта владельца
	MemberEmail string    `json:"member_email"` // email владельца (subject токена)
	Token       string    `json:"token"`        // значение токена
	ExpiresAt   time.Time `json:"expires_at"`   // время истечения
	CreatedAt   time.Time `json:"created_at"`   // время создания
}
