package http

import (
	"net/http"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/service"
)

type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

type createUserRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	BranchID        *int32 `json:"branch_id,omitempty"`
	CanAccessMen    bool   `json:"can_access_men"`
	CanAccessWomen  bool   `json:"can_access_women"`
	CanAccessBeauty bool   `json:"can_access_beauty"`
}

func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user := &domain.User{
		FullName:        req.FullName,
		Email:           req.Email,
		BranchID:        req.BranchID,
		CanAccessMen:    req.CanAccessMen,
		CanAccessWomen:  req.CanAccessWomen,
		CanAccessBeauty: req.CanAccessBeauty,
	}
	if err := h.auth.CreateUser(r.Context(), ScopeFrom(r), user, req.Password); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}
