package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/board-admin/internal/models"
	"github.com/iudanet/board-admin/internal/server/storage"
	"github.com/iudanet/board-admin/internal/validation"
	"github.com/iudanet/board-admin/pkg/api"
)

// newMemberDays окно "новых" участников для статистики
const newMemberDays = 30

// AdminHandler обрабатывает административные запросы:
// восстановление аккаунтов и постов, статистика, выпуск админ-аккаунтов
type AdminHandler struct {
	logger        *slog.Logger
	memberStorage storage.MemberStorage
	boardStorage  storage.BoardStorage
}

// NewAdminHandler создает новый handler для административных запросов
func NewAdminHandler(logger *slog.Logger, memberStorage storage.MemberStorage, boardStorage storage.BoardStorage) *AdminHandler {
	return &AdminHandler{
		logger:        logger,
		memberStorage: memberStorage,
		boardStorage:  boardStorage,
	}
}

// WithdrawnMemberList обрабатывает GET /admin/withdrawnMemberList
func (h *AdminHandler) WithdrawnMemberList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	members, err := h.memberStorage.GetWithdrawnMembers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get withdrawn members", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if members == nil {
		members = []*models.Member{}
	}
	sendJSON(h.logger, w, members, http.StatusOK)
}

// RestoreMember обрабатывает PUT /admin/restoreMember
// Снимает флаг удаления с аккаунта
func (h *AdminHandler) RestoreMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RestoreMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	rows, err := h.memberStorage.RestoreMember(ctx, req.MemberNo)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to restore member",
			slog.Int64("member_no", req.MemberNo), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if rows == 0 {
		// Аккаунт не существует или не был удален
		sendError(h.logger, w, fmt.Sprintf("invalid memberNo: %d", req.MemberNo), http.StatusBadRequest)
		return
	}

	h.logger.InfoContext(ctx, "member restored", slog.Int64("member_no", req.MemberNo))
	sendJSON(h.logger, w, api.MessageResponse{
		Message: fmt.Sprintf("member %d restored", req.MemberNo),
	}, http.StatusOK)
}

// DeleteBoardList обрабатывает GET /admin/deleteBoardList
func (h *AdminHandler) DeleteBoardList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	boards, err := h.boardStorage.GetDeletedBoards(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get deleted boards", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if boards == nil {
		boards = []*models.Board{}
	}
	sendJSON(h.logger, w, boards, http.StatusOK)
}

// RestoreBoard обрабатывает PUT /admin/restoreBoard
// Снимает флаг удаления с поста
func (h *AdminHandler) RestoreBoard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RestoreBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	rows, err := h.boardStorage.RestoreBoard(ctx, req.BoardNo)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to restore board",
			slog.Int64("board_no", req.BoardNo), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if rows == 0 {
		sendError(h.logger, w, fmt.Sprintf("invalid boardNo: %d", req.BoardNo), http.StatusBadRequest)
		return
	}

	h.logger.InfoContext(ctx, "board restored", slog.Int64("board_no", req.BoardNo))
	sendJSON(h.logger, w, api.MessageResponse{
		Message: fmt.Sprintf("board %d restored", req.BoardNo),
	}, http.StatusOK)
}

// NewMember обрабатывает GET /admin/newMember
// Возвращает участников, зарегистрированных за последний месяц
func (h *AdminHandler) NewMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	members, err := h.memberStorage.GetNewMembers(ctx, newMemberDays)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get new members", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if members == nil {
		members = []*models.Member{}
	}
	sendJSON(h.logger, w, members, http.StatusOK)
}

// MaxReadCount обрабатывает GET /admin/maxReadCount
func (h *AdminHandler) MaxReadCount(w http.ResponseWriter, r *http.Request) {
	h.maxBoard(w, r, "read", h.boardStorage.GetMaxReadCountBoard)
}

// MaxLikeCount обрабатывает GET /admin/maxLikeCount
func (h *AdminHandler) MaxLikeCount(w http.ResponseWriter, r *http.Request) {
	h.maxBoard(w, r, "like", h.boardStorage.GetMaxLikeCountBoard)
}

// MaxCommentCount обрабатывает GET /admin/maxCommentCount
func (h *AdminHandler) MaxCommentCount(w http.ResponseWriter, r *http.Request) {
	h.maxBoard(w, r, "comment", h.boardStorage.GetMaxCommentCountBoard)
}

func (h *AdminHandler) maxBoard(w http.ResponseWriter, r *http.Request, kind string, get func(ctx context.Context) (*models.Board, error)) {
	ctx := r.Context()

	board, err := get(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrBoardNotFound) {
			sendError(h.logger, w, "no boards found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get max count board",
			slog.String("kind", kind), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, board, http.StatusOK)
}

// CreateAdminAccount обрабатывает POST /admin/createAdminAccount
// Выпускает новый админ-аккаунт со сгенерированным паролем.
// Пароль возвращается в открытом виде ровно один раз
func (h *AdminHandler) CreateAdminAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateEmail(req.MemberEmail); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.MemberNickname == "" {
		sendError(h.logger, w, "memberNickname is required", http.StatusBadRequest)
		return
	}

	password, err := generatePassword()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate password", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	member := &models.Member{
		MemberEmail:    req.MemberEmail,
		MemberNickname: req.MemberNickname,
		MemberTel:      req.MemberTel,
		MemberPw:       string(hash),
		Authority:      models.AuthorityAdmin,
		MemberDelFl:    "N",
		EnrollDate:     time.Now(),
	}

	if err := h.memberStorage.CreateMember(ctx, member); err != nil {
		if errors.Is(err, storage.ErrMemberAlreadyExists) {
			sendError(h.logger, w, "email already taken", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create admin account", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "admin account created",
		slog.String("email", member.MemberEmail),
		slog.Int64("member_no", member.MemberNo))

	sendJSON(h.logger, w, api.CreateAdminResponse{
		MemberEmail: member.MemberEmail,
		Password:    password,
	}, http.StatusCreated)
}

// AdminAccountList обрабатывает GET /admin/adminAccountList
func (h *AdminHandler) AdminAccountList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	admins, err := h.memberStorage.GetAdminAccounts(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get admin accounts", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if admins == nil {
		admins = []*models.Member{}
	}
	sendJSON(h.logger, w, admins, http.StatusOK)
}

// generatePassword генерирует случайный одноразовый пароль
func generatePassword() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
