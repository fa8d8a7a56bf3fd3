package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vitern/vitern-api/internal/application/registration"
	"github.com/vitern/vitern-api/internal/domain"
	"github.com/vitern/vitern-api/internal/pkg/validate"
)

// RegistrationHandler handles the OTP signup endpoints.
type RegistrationHandler struct {
	svc registration.Service
}

func NewRegistrationHandler(svc registration.Service) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

type sendOTPResponse struct {
	Message string `json:"message"`
	OTPID   string `json:"otpId"`
}

type verifyOTPResponse struct {
	Message    string          `json:"message"`
	User       *domain.Account `json:"user"`
	Profile    *domain.Profile `json:"profile,omitempty"`
	SignInLink string          `json:"signInLink"`
}

func (h *RegistrationHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req registration.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	otpID, err := h.svc.SendOTP(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sendOTPResponse{
		Message: "OTP sent successfully",
		OTPID:   otpID,
	})
}

func (h *RegistrationHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req registration.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.VerifyOTP(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verifyOTPResponse{
		Message:    "Account created successfully",
		User:       res.Account,
		Profile:    res.Profile,
		SignInLink: res.SignInLink,
	})
}
