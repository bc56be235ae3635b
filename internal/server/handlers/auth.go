package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/board-admin/internal/models"
	"github.com/iudanet/board-admin/internal/server/storage"
	"github.com/iudanet/board-admin/internal/validation"
	"github.com/iudanet/board-admin/pkg/api"
)

// RefreshCookieName имя httpOnly куки с refresh token
const RefreshCookieName = "refreshToken"

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger        *slog.Logger
	memberStorage storage.MemberStorage
	tokenStorage  storage.TokenStorage
	jwtConfig     JWTConfig
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, memberStorage storage.MemberStorage, tokenStorage storage.TokenStorage, jwtConfig JWTConfig) *AuthHandler {
	return &AuthHandler{
		logger:        logger,
		memberStorage: memberStorage,
		tokenStorage:  tokenStorage,
		jwtConfig:     jwtConfig,
	}
}

// Login обрабатывает POST /auth/login
// Проверяет учетные данные, выпускает access и refresh токены,
// сохраняет refresh token в БД и кладет его в httpOnly куку
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateEmail(req.MemberEmail); err != nil {
		h.logger.WarnContext(ctx, "invalid email", slog.String("email", req.MemberEmail), slog.Any("error", err))
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	// 1. Проверка учетных данных делегируется хранилищу аккаунтов
	member, err := h.memberStorage.Login(ctx, req.MemberEmail, req.MemberPw)
	if err != nil {
		if errors.Is(err, storage.ErrMemberNotFound) {
			h.logger.WarnContext(ctx, "login failed: invalid credentials", slog.String("email", req.MemberEmail))
			sendError(h.logger, w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to verify credentials", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	// 2. Выпуск токенов
	accessToken, err := GenerateAccessToken(h.jwtConfig, member.MemberEmail)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	refreshToken, expiresAt, err := GenerateRefreshToken(h.jwtConfig, member.MemberEmail)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate refresh token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	// 3. Сохранение refresh token в БД: одна живая запись на аккаунт
	token := &models.RefreshToken{
		MemberNo:    member.MemberNo,
		MemberEmail: member.MemberEmail,
		Token:       refreshToken,
		ExpiresAt:   expiresAt,
		CreatedAt:   time.Now(),
	}

	rows, err := h.tokenStorage.SaveRefreshToken(ctx, token)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to save refresh token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}
	if rows <= 0 {
		// Токены выпущены, но refresh половина не сохранилась:
		// отдавать их клиенту нельзя, весь login считается неудачным
		h.logger.ErrorContext(ctx, "refresh token was not persisted", slog.String("email", member.MemberEmail))
		sendError(h.logger, w, "failed to persist refresh token", http.StatusInternalServerError)
		return
	}

	// 4. Refresh token уходит только httpOnly кукой
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(h.jwtConfig.RefreshTokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.InfoContext(ctx, "member logged in",
		slog.String("email", member.MemberEmail),
		slog.Int64("member_no", member.MemberNo))

	resp := api.AuthResponse{
		AccessToken: accessToken,
		Member:      member,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Logout обрабатывает POST /auth/logout
// Logout никогда не фейлится для клиента: любые ошибки удаления токена
// логируются и проглатываются, кука очищается всегда
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cookie, err := r.Cookie(RefreshCookieName); err == nil && cookie.Value != "" {
		// Subject извлекается без проверки срока действия:
		// истекший, но подлинный токен все еще позволяет найти запись
		memberEmail, err := ExtractSubject(h.jwtConfig, cookie.Value)
		if err != nil {
			h.logger.WarnContext(ctx, "logout: failed to extract subject from refresh token", slog.Any("error", err))
		} else if err := h.tokenStorage.DeleteMemberToken(ctx, memberEmail); err != nil {
			h.logger.ErrorContext(ctx, "logout: failed to delete refresh token",
				slog.String("email", memberEmail), slog.Any("error", err))
		} else {
			h.logger.InfoContext(ctx, "member logged out", slog.String("email", memberEmail))
		}
	}

	clearRefreshCookie(w)

	sendJSON(h.logger, w, api.MessageResponse{Message: "logout success"}, http.StatusOK)
}

// Refresh обрабатывает POST /auth/refresh
// Выпускает новый access token по refresh token из куки.
// Новый refresh token при этом не выпускается: исходный действует
// до собственного истечения или явного logout
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil || cookie.Value == "" {
		sendError(h.logger, w, "refresh token is missing", http.StatusBadRequest)
		return
	}

	refreshToken := cookie.Value

	if !ValidateToken(h.jwtConfig, refreshToken) {
		h.logger.WarnContext(ctx, "refresh failed: invalid or expired token")
		sendError(h.logger, w, "refresh token is invalid or expired", http.StatusUnauthorized)
		return
	}

	// Сверяем токен с БД: подписанный токен без живой записи
	// (после logout или замены повторным login) не принимается
	memberEmail, err := h.tokenStorage.MatchRefreshToken(ctx, refreshToken, time.Now())
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			h.logger.WarnContext(ctx, "refresh failed: no matching refresh token")
			sendError(h.logger, w, "no matching refresh token", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to match refresh token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	accessToken, err := GenerateAccessToken(h.jwtConfig, memberEmail)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "access token refreshed", slog.String("email", memberEmail))

	sendJSON(h.logger, w, api.RefreshResponse{AccessToken: accessToken}, http.StatusOK)
}

// clearRefreshCookie немедленно гасит куку refresh token
func clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
