package app

import (
	"net/http"
	"taskify/internal/handlers"
	mw "taskify/internal/middleware"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type routerDeps struct {
	tasks          handlers.TaskHandler
	topics         handlers.TopicHandler
	users          handlers.UserHandler
	notifications  handlers.NotificationHandler
	tokens         mw.TokenParser
	limiter        mw.Limiter
	allowedOrigins []string
	requestTimeout time.Duration
	maxBodyBytes   int64
}

func newRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.CleanPath)
	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Recover)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", mw.RequestIDHeader},
		ExposedHeaders:   []string{mw.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if d.requestTimeout > 0 {
		r.Use(mw.Timeout(d.requestTimeout))
	}
	if d.maxBodyBytes > 0 {
		r.Use(mw.BodyLimit(d.maxBodyBytes))
	}

	r.Get("/health", d.tasks.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		if d.limiter != nil {
			r.Use(mw.RateLimit(d.limiter))
		}

		r.Post("/users", d.users.Register)    // POST /api/users
		r.Post("/users/login", d.users.Login) // POST /api/users/login

		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate(d.tokens))

			r.Get("/users/me", d.users.Me)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", d.tasks.ListTasks)           // GET /api/tasks
				r.Post("/", d.tasks.PostTask)           // POST /api/tasks
				r.Get("/progress", d.tasks.GetProgress) // GET /api/tasks/progress

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", d.tasks.GetTaskByID)
					r.Put("/", d.tasks.UpdateTask)
					r.Patch("/", d.tasks.UpdateTask)
					r.Delete("/", d.tasks.DeleteTask)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", d.notifications.GetNotifications)
				r.Put("/mark-read", d.notifications.MarkAllRead)
			})

			r.Route("/topics", func(r chi.Router) {
				r.Get("/", d.topics.ListTopics)
				r.Post("/", d.topics.CreateTopic)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", d.topics.GetTopic)
					r.Put("/", d.topics.UpdateTopic)
					r.Patch("/", d.topics.UpdateTopic)
					r.Delete("/", d.topics.DeleteTopic)

					r.Post("/subtopics", d.topics.AddSubtopic)                  // POST /api/topics/{id}/subtopics
					r.Patch("/subtopics/{subtopicId}", d.topics.ToggleSubtopic) // PATCH .../subtopics/{subtopicId}
					r.Post("/subtopics/{subtopicId}/attachment", d.topics.AttachToSubtopic)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"NOT_FOUND","message":"маршрут не найден"}`))
	})

	return r
}
