package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	billinghandler "github.com/mindwell-labs/mindwell/backend/internal/handler/billing"
	chathandler "github.com/mindwell-labs/mindwell/backend/internal/handler/chat"
	speechhandler "github.com/mindwell-labs/mindwell/backend/internal/handler/speech"
	middlewarePkg "github.com/mindwell-labs/mindwell/backend/internal/middleware"
	billingmodel "github.com/mindwell-labs/mindwell/backend/internal/model/billing"
	"github.com/mindwell-labs/mindwell/backend/internal/provider"
	aiService "github.com/mindwell-labs/mindwell/backend/internal/service/ai"
	speechService "github.com/mindwell-labs/mindwell/backend/internal/service/speech"
	"github.com/mindwell-labs/mindwell/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services. A nil aiSvc or speechSvc
// degrades the matching routes to 503 instead of failing startup.
func NewRouter(aiSvc *aiService.Service, speechSvc *speechService.Service, ledger *billingmodel.Ledger, whisper string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/", handleIndex)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	billinghandler.New(ledger).RegisterRoutes(r)

	// A nil service means the provider credential was absent at startup.
	// The degraded routes report the same configuration message the live
	// paths produce, so clients see one error shape either way.
	missingCredentials := func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondError(w, http.StatusServiceUnavailable, provider.CredentialsMessage)
	}

	if aiSvc != nil {
		chathandler.New(aiSvc, ledger, whisper).RegisterRoutes(r)
	} else {
		r.Get("/ws/chat", missingCredentials)
	}

	r.Route("/api", func(api chi.Router) {
		if speechSvc != nil {
			speechhandler.New(speechSvc).RegisterRoutes(api)
		} else {
			api.Post("/stt", missingCredentials)
			api.Post("/tts", missingCredentials)
		}
	})

	return r
}
