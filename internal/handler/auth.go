package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/circussync/backend/internal/auth"
	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/utils"
)

const tokenCookieName = "__circussync_token"

type AuthClaims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (h *Handler) issueToken(w http.ResponseWriter, user *domain.User) error {
	expiration := time.Now().Add(time.Duration(h.config.JWT.Expiration) * time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Role:  string(user.Role),
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   user.ID,
		},
	})
	ss, err := token.SignedString([]byte(h.config.JWT.Secret))
	if err != nil {
		return err
	}

	cookie := &http.Cookie{
		Name:     tokenCookieName,
		Value:    ss,
		Expires:  expiration,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
	}

	if h.config.Environment == "production" {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, cookie)
	return nil
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	identity, err := h.provider.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrTooManyAttempts):
			h.errorResponse(w, r, auth.ClassifySignIn(err))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// map the identity onto an application profile, creating one on first login
	user, err := auth.ResolveUser(r.Context(), h.services.Users, *identity)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.issueToken(w, user); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "signed in", user)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:    tokenCookieName,
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
		Path:    "/",
	})

	if err := h.provider.SignOut(r.Context()); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "signed out", nil)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
		Name     string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	identity, err := h.provider.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailInUse),
			errors.Is(err, auth.ErrWeakPassword),
			errors.Is(err, auth.ErrInvalidEmail):
			h.errorResponse(w, r, auth.ClassifyRegister(err))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	user, err := auth.ResolveUser(r.Context(), h.services.Users, *identity)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.publishMail(domain.MailMessage{
		Type: "new_account",
		To:   user.Email,
		Data: domain.NewAccountMailData{
			Name:  user.Name,
			Email: user.Email,
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.issueToken(w, user); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "registered", user)
}

func (h *Handler) publishMail(msg domain.MailMessage) error {
	mailData, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	)
}

func resetOTPKey(email string) string {
	return fmt.Sprintf("otp_%s_reset_password", email)
}

func (h *Handler) RequireResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.services.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if user == nil {
		// claim the mail was sent anyway so the endpoint cannot be used
		// to probe which addresses have accounts
		h.successResponse(w, r, "password reset code sent by mail", nil)
		return
	}

	otp := utils.GenerateRandomOTP()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	if err := h.redisClient.Set(ctx, resetOTPKey(user.Email), otp, time.Duration(h.config.OTP.Expiration)*time.Second).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.publishMail(domain.MailMessage{
		Type: "reset_password",
		To:   user.Email,
		Data: domain.ResetPasswordMailData{
			Name:       user.Name,
			OTP:        otp,
			Expiration: h.config.OTP.Expiration / 60, // shown in minutes, configured in seconds
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "password reset code sent by mail", nil)
}

func (h *Handler) ConfirmResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		OTP      string `json:"otp" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	otp, err := h.redisClient.Get(ctx, resetOTPKey(req.Email)).Result()
	if err != nil {
		h.errorResponse(w, r, "invalid verification code")
		return
	}

	if otp != req.OTP {
		h.errorResponse(w, r, "invalid verification code")
		return
	}

	if err := h.provider.UpdatePassword(r.Context(), req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, auth.ErrWeakPassword):
			h.errorResponse(w, r, auth.MsgWeakPassword)
		case errors.Is(err, auth.ErrNoAccount):
			h.errorResponse(w, r, auth.MsgNoAccount)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.redisClient.Del(ctx, resetOTPKey(req.Email)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "password reset", nil)
}
