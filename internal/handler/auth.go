package handler

import (
	"net/http"

	"github.com/camrado/pritok/internal/ctxkeys"
	"github.com/camrado/pritok/internal/model"
	"github.com/camrado/pritok/internal/respond"
	"github.com/camrado/pritok/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type authResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	err := decodeJSON(r, &body)
	if err != nil {
		respond.Error(w, err)
		return
	}

	user, token, err := h.authService.SignUp(body.Name, body.Email, body.Password)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	err := decodeJSON(r, &body)
	if err != nil {
		respond.Error(w, err)
		return
	}

	user, token, err := h.authService.Login(body.Email, body.Password)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

// Logout revokes only the token the request authenticated with.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	token := ctxkeys.Token(r.Context())

	err := h.authService.Logout(user.ID, token)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, nil)
}

// LogoutAll revokes every session of the account.
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.authService.LogoutAll(user.ID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, nil)
}
