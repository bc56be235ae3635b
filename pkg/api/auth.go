package api

import "github.com/iudanet/board-admin/internal/models"

// LoginRequest представляет запрос на вход администратора
type LoginRequest struct {
	MemberEmail string `json:"memberEmail"` // email администратора
	MemberPw    string `json:"memberPw"`    // пароль в открытом виде
}

// AuthResponse представляет ответ на успешный вход.
// Refresh token в тело не попадает, он уходит httpOnly кукой.
type AuthResponse struct {
	AccessToken string         `json:"accessToken"` // JWT access token
	Member      *models.Member `json:"member"`      // данные вошедшего администратора
}

// RefreshResponse представляет ответ на обновление access token
type RefreshResponse struct {
	AccessToken string `json:"accessToken"` // новый JWT access token
}

// MessageResponse представляет простой текстовый ответ
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
