package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/camrado/pritok/internal/apperror"
	"github.com/camrado/pritok/internal/ctxkeys"
	"github.com/camrado/pritok/internal/respond"
	"github.com/camrado/pritok/internal/service"
)

type UserHandler struct {
	userService         *service.UserService
	verificationService *service.VerificationService
}

func NewUserHandler(userService *service.UserService, verificationService *service.VerificationService) *UserHandler {
	return &UserHandler{
		userService:         userService,
		verificationService: verificationService,
	}
}

type successResponse struct {
	Success string `json:"success"`
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, ctxkeys.User(r.Context()))
}

func (h *UserHandler) SendVerificationEmail(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.verificationService.RequestCode(user)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, successResponse{Success: "Email has been sent"})
}

func (h *UserHandler) Verify(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	// Clients send the key either as a string or as a bare number
	var body struct {
		VerificationKey json.RawMessage `json:"verificationKey"`
	}
	err := decodeJSON(r, &body)
	if err != nil {
		respond.Error(w, err)
		return
	}

	err = h.verificationService.ConfirmCode(user, rawKeyToString(body.VerificationKey))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, successResponse{Success: "Your account was successfully confirmed!"})
}

func rawKeyToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var asString string
	if json.Unmarshal(raw, &asString) == nil {
		return asString
	}

	var asNumber int64
	if json.Unmarshal(raw, &asNumber) == nil {
		return strconv.FormatInt(asNumber, 10)
	}

	return ""
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var patch service.ProfilePatch
	err := decodeJSON(r, &patch)
	if err != nil {
		respond.Error(w, err)
		return
	}

	err = h.userService.UpdateProfile(user, patch)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var body struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	err := decodeJSON(r, &body)
	if err != nil {
		respond.Error(w, err)
		return
	}

	err = h.userService.UpdatePassword(user, body.CurrentPassword, body.NewPassword)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, successResponse{Success: "Password has been successfully changed!"})
}

func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.userService.DeleteAccount(user.ID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, successResponse{Success: "Account has been successfully deleted!"})
}

// ContactUs relays a message to the support inbox. The response does not
// wait for delivery.
func (h *UserHandler) ContactUs(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Purpose string `json:"purpose"`
		Message string `json:"message"`
	}
	err := decodeJSON(r, &body)
	if err != nil {
		respond.Error(w, err)
		return
	}

	if body.Message == "" {
		respond.Error(w, apperror.InvalidFields("message is required"))
		return
	}

	go h.userService.RelayContactMessage(body.Name, body.Email, body.Purpose, body.Message)

	respond.JSON(w, http.StatusOK, nil)
}
