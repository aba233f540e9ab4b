package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	mailapp "github.com/medilink-notifier/internal/application/mail"
	"github.com/medilink-notifier/internal/application/recovery"
	"github.com/medilink-notifier/internal/domain"
	"github.com/medilink-notifier/internal/pkg/validate"
)

const (
	msgMailMissingFields = "Veuillez saisir votre adresse e-mail et Sujet de l'email"
	msgMailMissingCode   = "Veuillez saisir un code"
	msgMailSent          = "Un e-mail a été envoyé à %s avec succès"
	msgMailFailed        = "Une erreur s'est produite lors de l'envoi de l'e-mail ! Merci d'essayer plus tard ."

	msgResetMissingFields = "L'email, le nouveau mot de passe et le code de vérification sont requis"
	msgResetUserNotFound  = "Utilisateur non trouvé"
	msgResetInvalidCode   = "Code de vérification invalide"
	msgResetCodeExpired   = "Le code de vérification a expiré"
	msgResetInvalidType   = "Type de code invalide pour la réinitialisation du mot de passe"
	msgResetUpdateFailed  = "Erreur lors de la réinitialisation du mot de passe: %s"
	msgResetUnexpected    = "Une erreur inattendue s'est produite"
	msgResetDone          = "Mot de passe réinitialisé avec succès"
)

// SendMailRequest is the body of POST /users/sendMailService.
type SendMailRequest struct {
	Email   string `json:"email" validate:"omitempty,email"`
	Subject string `json:"subject"`
	Code    string `json:"code"`
}

// ResetPasswordRequest is the body of POST /users/resetPasswordDirect.
type ResetPasswordRequest struct {
	Email            string `json:"email" validate:"omitempty,email"`
	NewPassword      string `json:"newPassword" validate:"omitempty,max=72"`
	VerificationCode string `json:"verificationCode"`
}

// UserHandler serves the account mail and password reset endpoints.
type UserHandler struct {
	mail     mailapp.Service
	recovery recovery.Service
}

func NewUserHandler(mail mailapp.Service, rec recovery.Service) *UserHandler {
	return &UserHandler{mail: mail, recovery: rec}
}

// SendMail godoc
// @Summary  Send a transactional account email
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body body SendMailRequest true "recipient, subject and optional code"
// @Success  201 {object} MessageEnvelope
// @Failure  400 {object} MessageEnvelope
// @Failure  500 {object} MessageEnvelope
// @Router   /api/v1/users/sendMailService [post]
func (h *UserHandler) SendMail(w http.ResponseWriter, r *http.Request) {
	var req SendMailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Subject == "" {
		writeError(w, http.StatusBadRequest, msgMailMissingFields)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	subject := domain.MailSubject(req.Subject)
	if subject.RequiresCode() && req.Code == "" {
		writeError(w, http.StatusBadRequest, msgMailMissingCode)
		return
	}

	err := h.mail.SendTransactional(r.Context(), mailapp.MailInput{
		Recipient: req.Email,
		Subject:   subject,
		Code:      req.Code,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, MessageEnvelope{Status: statusSuccess, Message: fmt.Sprintf(msgMailSent, req.Email)})
	case errors.Is(err, domain.ErrMissingInput):
		writeError(w, http.StatusBadRequest, publicMessage(err))
	default:
		writeError(w, http.StatusInternalServerError, msgMailFailed)
	}
}

// ResetPassword godoc
// @Summary  Reset a password with a verification code
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body body ResetPasswordRequest true "email, new password and code"
// @Success  200 {object} MessageEnvelope
// @Failure  400 {object} MessageEnvelope
// @Failure  404 {object} MessageEnvelope
// @Failure  500 {object} MessageEnvelope
// @Router   /api/v1/users/resetPasswordDirect [post]
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// Lookup lower-cases the address; only the padding must go before validation.
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.NewPassword == "" || req.VerificationCode == "" {
		writeError(w, http.StatusBadRequest, msgResetMissingFields)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.recovery.ResetPassword(r.Context(), recovery.ResetInput{
		Email:       req.Email,
		NewPassword: req.NewPassword,
		Code:        req.VerificationCode,
	})
	if err != nil {
		status, msg := resetFailure(err)
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Status: statusSuccess, Message: msgResetDone})
}

func resetFailure(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMissingInput):
		return http.StatusBadRequest, msgResetMissingFields
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, msgResetUserNotFound
	case errors.Is(err, domain.ErrInvalidCode):
		return http.StatusBadRequest, msgResetInvalidCode
	case errors.Is(err, domain.ErrCodeExpired):
		return http.StatusBadRequest, msgResetCodeExpired
	case errors.Is(err, domain.ErrInvalidCodePurpose):
		return http.StatusBadRequest, msgResetInvalidType
	case errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest, publicMessage(err)
	case errors.Is(err, domain.ErrCredentialUpdateFailed):
		return http.StatusInternalServerError, fmt.Sprintf(msgResetUpdateFailed, detail(err))
	default:
		return http.StatusInternalServerError, msgResetUnexpected
	}
}
