//internal/profile/handlers.go

package profile

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/imadgeboyega/nomad-dating/internal/auth"
	"github.com/imadgeboyega/nomad-dating/internal/common/utils"
)

// Handler serves the caller's own profile and read access to others
type Handler struct {
	repo Repository
}

// NewHandler creates a new profile handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ProfileSetupRequest creates a profile for the authenticated user
type ProfileSetupRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	PhotoURL string `json:"photoURL,omitempty" validate:"omitempty,url"`
}

// keys clients may not write through UpdateProfile
var readOnlyKeys = map[string]bool{
	"uid":        true,
	"attributes": true,
	"created_at": true,
	"updated_at": true,
}

// GetMyProfile handles getting current user's profile
func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	h.respondWithProfile(w, r, userID)
}

// GetUserProfile handles getting another user's profile
func (h *Handler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		utils.ErrorResponse(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	h.respondWithProfile(w, r, userID)
}

// SetupProfile handles initial profile setup
func (h *Handler) SetupProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req ProfileSetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	p := &Profile{UID: userID, Name: &req.Name}
	if req.PhotoURL != "" {
		p.PhotoURL = &req.PhotoURL
	}

	if err := h.repo.Create(r.Context(), p); err != nil {
		if errors.Is(err, ErrProfileExists) {
			utils.ErrorResponse(w, "Profile already exists", http.StatusConflict)
			return
		}
		log.Printf("❌ Failed to create profile %s: %v", userID, err)
		utils.ErrorResponse(w, "Failed to create profile", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, p, http.StatusCreated)
}

// UpdateProfile merges the posted fields into the caller's profile. A null
// value clears the field.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(fields) == 0 {
		utils.ErrorResponse(w, "No fields to update", http.StatusBadRequest)
		return
	}
	for key := range fields {
		if readOnlyKeys[key] {
			utils.ErrorResponse(w, key+" cannot be updated", http.StatusBadRequest)
			return
		}
	}

	if err := h.repo.Update(r.Context(), userID, fields); err != nil {
		switch {
		case errors.Is(err, ErrProfileNotFound):
			utils.ErrorResponse(w, "Profile not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidField):
			utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("❌ Failed to update profile %s: %v", userID, err)
			utils.ErrorResponse(w, "Failed to update profile", http.StatusInternalServerError)
		}
		return
	}

	h.respondWithProfile(w, r, userID)
}

func (h *Handler) respondWithProfile(w http.ResponseWriter, r *http.Request, userID string) {
	p, err := h.repo.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.ErrorResponse(w, "Profile not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ Failed to get profile %s: %v", userID, err)
		utils.ErrorResponse(w, "Failed to get profile", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, p, http.StatusOK)
}
