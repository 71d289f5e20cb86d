package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/challenge/internal/entity"
	"github.com/samandr77/microservices/challenge/internal/service"
	"github.com/samandr77/microservices/challenge/pkg/logger"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=../mocks/api.go -package=mocks

type Service interface {
	SendChallenge(ctx context.Context, phone string) error
	CheckChallenge(ctx context.Context, phone, code string) (entity.User, error)
	ResetFailedLogins(ctx context.Context, userID uuid.UUID) error
}

type Handler struct {
	s          Service
	codeLength int
}

func NewHandler(s Service, codeLength int) *Handler {
	return &Handler{
		s:          s,
		codeLength: codeLength,
	}
}

// @Summary Health check
// @Description Reports that the server is up
// @Tags challenge
// @Produce  plain
// @Success 200 {string} string "OK"
// @Router  /api/health [get]
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("OK\n"))
}

type SendChallengeRequest struct {
	Phone string `json:"phone"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

// @Summary Send a sign-in code
// @Description Issues a one-time code for the user with the given phone and sends it by SMS or email
// @Tags challenge
// @Accept  json
// @Produce  json
// @Param   request body SendChallengeRequest true "Phone of the user"
// @Success 200 {object} OKResponse "Code sent"
// @Failure 400 {object} ResponseError "Malformed request"
// @Failure 404 {object} ResponseError "User not found"
// @Failure 422 {object} ResponseError "Invalid phone"
// @Failure 423 {object} ResponseError "User is blocked"
// @Failure 429 {object} ResponseError "TooManyUnusedCodes or RateLimited"
// @Failure 500 {object} ResponseError "Internal error"
// @Router  /api/challenge/send [post]
func (h *Handler) SendChallenge(w http.ResponseWriter, r *http.Request) {
	ctx := logger.SetLogType(r.Context(), "auth")

	var req SendChallengeRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, kindBadRequest, "Malformed request")
		return
	}

	phone, err := service.NormalizePhone(req.Phone)
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	err = h.s.SendChallenge(ctx, phone)
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	sendJSON(ctx, w, http.StatusOK, OKResponse{OK: true})
}

type CheckChallengeRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type CheckChallengeResponse struct {
	OK     bool      `json:"ok"`
	UserID uuid.UUID `json:"user_id"`
}

// @Summary Check a sign-in code
// @Description Validates the code sent to the user with the given phone
// @Tags challenge
// @Accept  json
// @Produce  json
// @Param   request body CheckChallengeRequest true "Phone and code"
// @Success 200 {object} CheckChallengeResponse "Code accepted"
// @Failure 400 {object} ResponseError "Malformed request"
// @Failure 401 {object} ResponseError "CodeAlreadyUsed or InvalidCode"
// @Failure 404 {object} ResponseError "User not found"
// @Failure 422 {object} ResponseError "Invalid phone or code format"
// @Failure 423 {object} ResponseError "TooManyFailedAttempts"
// @Failure 429 {object} ResponseError "RateLimited"
// @Failure 500 {object} ResponseError "Internal error"
// @Router  /api/challenge/check [post]
func (h *Handler) CheckChallenge(w http.ResponseWriter, r *http.Request) {
	ctx := logger.SetLogType(r.Context(), "auth")

	var req CheckChallengeRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, kindBadRequest, "Malformed request")
		return
	}

	phone, err := service.NormalizePhone(req.Phone)
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	// malformed codes are rejected before they can count as failures
	err = service.ValidateCode(req.Code, h.codeLength)
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	user, err := h.s.CheckChallenge(ctx, phone, req.Code)
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	sendJSON(ctx, w, http.StatusOK, CheckChallengeResponse{OK: true, UserID: user.ID})
}

type UnlockRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

// @Summary Unlock a user
// @Description Clears the failed validation history of a user. Served only on the internal listener
// @Tags internal
// @Accept  json
// @Param   request body UnlockRequest true "User id"
// @Success 204
// @Failure 400 {object} ResponseError "Malformed request"
// @Failure 500 {object} ResponseError "Internal error"
// @Router  /internal/api/challenge/unlock [post]
func (h *Handler) Unlock(w http.ResponseWriter, r *http.Request) {
	ctx := logger.SetLogType(r.Context(), "security")

	var req UnlockRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, kindBadRequest, "Malformed request")
		return
	}

	err = h.s.ResetFailedLogins(ctx, req.UserID)
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
