package http

import (
	"net/http"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/repository"
)

// BranchHandler serves the thin administrative surface: branches and the
// shared client book. Clients are shared across branches so a caller from any
// branch can search them; opening a branch is reserved for the general manager.
type BranchHandler struct {
	branches repository.BranchRepository
	clients  repository.ClientRepository
}

func NewBranchHandler(branches repository.BranchRepository, clients repository.ClientRepository) *BranchHandler {
	return &BranchHandler{branches: branches, clients: clients}
}

func (h *BranchHandler) CreateBranch(w http.ResponseWriter, r *http.Request) {
	if !ScopeFrom(r).Unscoped() {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	var branch domain.Branch
	if err := decodeBody(r, &branch); err != nil {
		writeError(w, err)
		return
	}
	if branch.Name == "" {
		writeError(w, domain.NewValidationError("name", "must not be empty"))
		return
	}
	if err := h.branches.Create(r.Context(), &branch); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, branch)
}

func (h *BranchHandler) ListBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.branches.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if branches == nil {
		branches = []domain.Branch{}
	}
	writeJSON(w, http.StatusOK, branches)
}

func (h *BranchHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var client domain.Client
	if err := decodeBody(r, &client); err != nil {
		writeError(w, err)
		return
	}
	if client.Name == "" {
		writeError(w, domain.NewValidationError("name", "must not be empty"))
		return
	}
	if err := h.clients.Create(r.Context(), &client); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

func (h *BranchHandler) SearchClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	if clients == nil {
		clients = []domain.Client{}
	}
	writeJSON(w, http.StatusOK, clients)
}
