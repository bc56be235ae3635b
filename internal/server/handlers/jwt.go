package handlers

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTConfig содержит конфигурацию для выпуска и проверки токенов.
// Secret создается один раз при старте процесса и не меняется;
// рестарт процесса инвалидирует все ранее выданные токены.
type JWTConfig struct {
	Secret          []byte
	Issuer          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// GenerateAccessToken создает новый JWT access token с subject = email
func GenerateAccessToken(cfg JWTConfig, memberEmail string) (string, error) {
	token, _, err := generateToken(cfg, memberEmail, cfg.AccessTokenTTL)
	return token, err
}

// GenerateRefreshToken создает новый JWT refresh token с subject = email.
// Возвращает также время истечения для сохранения в БД.
func GenerateRefreshToken(cfg JWTConfig, memberEmail string) (string, time.Time, error) {
	return generateToken(cfg, memberEmail, cfg.RefreshTokenTTL)
}

func generateToken(cfg JWTConfig, memberEmail string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := jwt.RegisteredClaims{
		Subject:   memberEmail,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    cfg.Issuer,
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(cfg.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateToken проверяет подпись и срок действия токена.
// На любой некорректный вход возвращает false, никогда не паникует.
func ValidateToken(cfg JWTConfig, tokenString string) bool {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return cfg.Secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	return err == nil && token.Valid
}

// ExtractSubject извлекает subject (email) из токена без проверки срока действия.
// Подпись проверяется: истекший, но подлинный токен все еще отдает свой subject.
// Используется при logout, когда по только что истекшему refresh token
// нужно найти и удалить запись в БД.
func ExtractSubject(cfg JWTConfig, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return cfg.Secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}

	return claims.Subject, nil
}
