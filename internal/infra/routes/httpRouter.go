package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"scribe-api/internal/infra/handlers"
)

type Routes struct {
	Mux         *mux.Router
	Transcripts *handlers.TranscriptHandlers
	Uploads     *handlers.UploadHandlers
	Profile     *handlers.ProfileHandlers
	Auth        mux.MiddlewareFunc
}

func NewRoutes(router *mux.Router, transcripts *handlers.TranscriptHandlers, uploads *handlers.UploadHandlers, profile *handlers.ProfileHandlers, auth mux.MiddlewareFunc) *Routes {
	return &Routes{Mux: router, Transcripts: transcripts, Uploads: uploads, Profile: profile, Auth: auth}
}

func (r *Routes) Init() {
	r.Mux.HandleFunc("/healthCheck", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods(http.MethodGet)

	api := r.Mux.PathPrefix("/api").Subrouter()
	api.Use(r.Auth)

	// OPTIONS is registered alongside each verb so browser preflights
	// match a route; the CORS middleware answers them before auth runs.
	api.HandleFunc("/transcripts", r.Transcripts.List).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/transcripts", r.Transcripts.Create).Methods(http.MethodPost)
	api.HandleFunc("/transcripts/upload", r.Uploads.Upload).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/transcripts/{id}", r.Transcripts.Get).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/transcripts/{id}", r.Transcripts.Update).Methods(http.MethodPatch)
	api.HandleFunc("/transcripts/{id}", r.Transcripts.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/update-profile", r.Profile.UpdateProfile).Methods(http.MethodPatch, http.MethodOptions)
}
