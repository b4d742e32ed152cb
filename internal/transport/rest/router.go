package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/portal-management/internal/auth"
	"github.com/frahmantamala/portal-management/internal/department"
	"github.com/frahmantamala/portal-management/internal/document"
	"github.com/frahmantamala/portal-management/internal/notification"
	"github.com/frahmantamala/portal-management/internal/post"
	"github.com/frahmantamala/portal-management/internal/review"
	"github.com/frahmantamala/portal-management/internal/transport/middleware"
	"github.com/frahmantamala/portal-management/internal/transport/swagger"
	"github.com/frahmantamala/portal-management/internal/user"
	"github.com/go-chi/chi"
)

type Handlers struct {
	Auth         *auth.Handler
	User         *user.Handler
	Department   *department.Handler
	Post         *post.Handler
	Document     *document.Handler
	Review       *review.Handler
	Notification *notification.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", h.Auth.Login)
				sr.Post("/refresh", h.Auth.RefreshToken)
				sr.Post("/logout", h.Auth.Logout)
			})
		}

		if h.Auth == nil {
			return
		}

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			if h.User != nil {
				pr.Get("/users/me", h.User.GetCurrentUser)
				pr.Route("/users", func(ur chi.Router) {
					ur.Get("/{id}", h.User.GetUser)

					ur.Group(func(ar chi.Router) {
						ar.Use(middleware.RequireAdmin)
						ar.Get("/", h.User.ListUsers)
						ar.Post("/", h.User.CreateUser)
						ar.Patch("/{id}", h.User.UpdateUser)
						ar.Delete("/{id}", h.User.DeleteUser)
					})
				})
			}

			if h.Department != nil {
				pr.Route("/departments", func(dr chi.Router) {
					dr.Get("/", h.Department.ListDepartments)
					dr.Get("/{id}", h.Department.GetDepartment)

					dr.Group(func(ar chi.Router) {
						ar.Use(middleware.RequireAdmin)
						ar.Post("/", h.Department.CreateDepartment)
						ar.Patch("/{id}", h.Department.UpdateDepartment)
						ar.Delete("/{id}", h.Department.DeleteDepartment)
					})
				})
			}

			if h.Post != nil {
				pr.Route("/posts", func(por chi.Router) {
					por.Post("/", h.Post.CreatePost)
					por.Get("/", h.Post.ListPosts)
					por.Get("/{id}", h.Post.GetPost)
					por.Patch("/{id}", h.Post.UpdatePost)
					por.Delete("/{id}", h.Post.DeletePost)
					por.Post("/{id}/resubmit", h.Post.ResubmitPost)

					if h.Review != nil {
						por.Get("/{id}/comments", h.Review.ListPostComments)
						por.Post("/{id}/comments", h.Review.AddPostComment)
					}

					por.Group(func(ar chi.Router) {
						ar.Use(middleware.RequireAdmin)
						ar.Patch("/{id}/review", h.Post.ReviewPost)
					})
				})
			}

			if h.Document != nil {
				pr.Route("/documents", func(dor chi.Router) {
					dor.Post("/", h.Document.CreateDocument)
					dor.Get("/", h.Document.ListDocuments)
					dor.Get("/{id}", h.Document.GetDocument)
					dor.Patch("/{id}", h.Document.UpdateDocument)
					dor.Delete("/{id}", h.Document.DeleteDocument)
					dor.Post("/{id}/resubmit", h.Document.ResubmitDocument)

					if h.Review != nil {
						dor.Get("/{id}/comments", h.Review.ListDocumentComments)
						dor.Post("/{id}/comments", h.Review.AddDocumentComment)
					}

					dor.Group(func(ar chi.Router) {
						ar.Use(middleware.RequireAdmin)
						ar.Patch("/{id}/review", h.Document.ReviewDocument)
					})
				})
			}

			if h.Notification != nil {
				pr.Route("/notifications", func(nr chi.Router) {
					nr.Get("/", h.Notification.ListNotifications)
					nr.Patch("/{id}/read", h.Notification.MarkNotificationRead)
					nr.Post("/read-all", h.Notification.MarkAllNotificationsRead)
				})
			}
		})
	})
}
