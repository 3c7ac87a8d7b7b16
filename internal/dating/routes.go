package dating

import (
	"github.com/gorilla/mux"

	"github.com/imadgeboyega/nomad-dating/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/dating").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Preference
	api.HandleFunc("/status", handler.GetStatus).Methods("GET")
	api.HandleFunc("/preference", handler.SetPreference).Methods("PUT")

	// Wizard
	api.HandleFunc("/wizard", handler.GetWizard).Methods("GET")
	api.HandleFunc("/wizard/input", handler.UpdateInput).Methods("PUT")
	api.HandleFunc("/wizard/answer", handler.Answer).Methods("POST")
	api.HandleFunc("/wizard/finish", handler.FinishWizard).Methods("POST")

	// Matching
	api.HandleFunc("/matches", handler.GetMatches).Methods("GET")
	api.HandleFunc("/questions", handler.GetQuestions).Methods("GET")
}
