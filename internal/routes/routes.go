package routes

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/app"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/handler"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler()
	auth := handler.NewAuthHandler(app.SessionService)
	project := handler.NewProjectHandler(app.ProjectService, app.DocumentService)
	document := handler.NewDocumentHandler(app.DocumentService, app.ProjectService)
	promptH := handler.NewPromptHandler(app.PromptGenerator, app.ProjectService)
	assistant := handler.NewAssistantHandler(app.AssistantService)
	automationH := handler.NewAutomationHandler(app.Notifier)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Healthz)

	mux.HandleFunc("POST /auth/login", auth.Login)
	mux.HandleFunc("POST /auth/logout", auth.Logout)
	mux.HandleFunc("GET /auth/session", auth.Session)

	// ============================================================================
	// PROTECTED ROUTES (/api/*)
	// ============================================================================

	requireSession := middleware.RequireSession(app.SessionService)

	// Dossiers
	mux.HandleFunc("GET /api/projects", requireSession(project.List))
	mux.HandleFunc("POST /api/projects", requireSession(project.Create))
	mux.HandleFunc("GET /api/projects/{id}", requireSession(project.Get))
	mux.HandleFunc("PUT /api/projects/{id}", requireSession(project.Update))
	mux.HandleFunc("DELETE /api/projects/{id}", requireSession(project.Delete))
	mux.HandleFunc("POST /api/projects/{id}/select", requireSession(project.Select))

	// Attachments
	mux.HandleFunc("POST /api/projects/{id}/documents", requireSession(document.Upload))
	mux.HandleFunc("DELETE /api/projects/{id}/documents/{docID}", requireSession(document.Remove))

	// Generation
	mux.HandleFunc("GET /api/projects/{id}/prompts/{kind}", requireSession(promptH.Get))
	mux.HandleFunc("POST /api/projects/{id}/summary", requireSession(assistant.Summarize))
	mux.HandleFunc("POST /api/projects/{id}/chat", requireSession(assistant.Chat))

	// Workflow forwarding
	mux.HandleFunc("POST /api/automation", requireSession(automationH.Send))

	// CORS for the SPA frontend
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{app.Cfg.FrontendURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Recover,
		middleware.RequestLogging,
		corsHandler.Handler,
	)
}
