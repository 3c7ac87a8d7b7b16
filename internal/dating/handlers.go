package dating

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/imadgeboyega/nomad-dating/internal/auth"
	"github.com/imadgeboyega/nomad-dating/internal/common/utils"
	"github.com/imadgeboyega/nomad-dating/internal/profile"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	status, err := h.service.GetStatus(r.Context(), userID)
	if err != nil {
		h.respondWithServiceError(w, err, "Failed to get dating status")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, status)
}

func (h *Handler) SetPreference(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var dto SetPreferenceDTO
	if !decodeAndValidate(w, r, &dto) {
		return
	}

	result, err := h.service.SetDatingEnabled(r.Context(), userID, *dto.Enabled)
	if err != nil {
		h.respondWithServiceError(w, err, "Failed to update dating preference")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) GetWizard(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	view, err := h.service.CurrentWizard(r.Context(), userID)
	if err != nil {
		h.respondWithServiceError(w, err, "Failed to get wizard")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, view)
}

func (h *Handler) UpdateInput(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var dto WizardTextDTO
	if !decodeAndValidate(w, r, &dto) {
		return
	}

	view, err := h.service.UpdateInput(r.Context(), userID, dto.Text)
	if err != nil {
		h.respondWithServiceError(w, err, "Failed to update wizard input")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, view)
}

func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var dto WizardTextDTO
	if !decodeAndValidate(w, r, &dto) {
		return
	}

	view, err := h.service.Answer(r.Context(), userID, dto.Text)
	if err != nil {
		h.respondWithServiceError(w, err, "Failed to record answer")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, view)
}

func (h *Handler) FinishWizard(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	result, err := h.service.FinishWizard(r.Context(), userID)
	if err != nil {
		h.respondWithServiceError(w, err, "Failed to save wizard answers")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	matches, err := h.service.FetchMatches(r.Context(), userID)
	if err != nil {
		h.respondWithServiceError(w, err, "Failed to get matches")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, MatchesResponse{Matches: matches})
}

func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, QuestionsResponse{Questions: h.service.Questions()})
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
	}
	return userID, ok
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	if err := utils.ValidateStruct(dst); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (h *Handler) respondWithServiceError(w http.ResponseWriter, err error, fallback string) {
	var incomplete *IncompleteProfileError
	switch {
	case errors.As(err, &incomplete):
		utils.RespondWithDetails(w, http.StatusConflict, ErrProfileIncomplete.Error(), map[string]interface{}{
			"missing_fields": incomplete.Missing,
		})
	case errors.Is(err, profile.ErrProfileNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
	case errors.Is(err, ErrWizardNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrWizardComplete), errors.Is(err, ErrWizardIncomplete):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrDatingDisabled):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, profile.ErrInvalidField):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("❌ %s: %v", fallback, err)
		utils.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}
