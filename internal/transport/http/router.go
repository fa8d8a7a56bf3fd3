package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/vitern/vitern-api/internal/application/badge"
	"github.com/vitern/vitern-api/internal/application/chat"
	"github.com/vitern/vitern-api/internal/application/identity"
	"github.com/vitern/vitern-api/internal/application/internship"
	"github.com/vitern/vitern-api/internal/application/leaderboard"
	"github.com/vitern/vitern-api/internal/application/mentorship"
	"github.com/vitern/vitern-api/internal/application/notification"
	"github.com/vitern/vitern-api/internal/application/profile"
	"github.com/vitern/vitern-api/internal/application/registration"
	"github.com/vitern/vitern-api/internal/application/resume"
	"github.com/vitern/vitern-api/internal/application/session"
	"github.com/vitern/vitern-api/internal/config"
	"github.com/vitern/vitern-api/internal/domain"
	"github.com/vitern/vitern-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/vitern/vitern-api/internal/infrastructure/jwt"
	s3infra "github.com/vitern/vitern-api/internal/infrastructure/s3"
	"github.com/vitern/vitern-api/internal/infrastructure/smtp"
	"github.com/vitern/vitern-api/internal/infrastructure/sns"
	"github.com/vitern/vitern-api/internal/transport/http/handler"
	appmiddleware "github.com/vitern/vitern-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	OTPRepo         *dynamo.OTPRepo
	AccountRepo     *dynamo.AccountRepo
	SignInTokenRepo *dynamo.SignInTokenRepo
	SessionRepo     *dynamo.SessionRepo
	StudentRepo     *dynamo.StudentRepo
	RecruiterRepo   *dynamo.RecruiterRepo
	InternshipRepo  *dynamo.InternshipRepo
	ApplicationRepo *dynamo.ApplicationRepo
	ChatRoomRepo    *dynamo.ChatRoomRepo
	ChatMessageRepo *dynamo.ChatMessageRepo
	MentorshipRepo  *dynamo.MentorshipRepo
	BadgeRepo       *dynamo.BadgeRepo
	ResumeRepo      *dynamo.ResumeRepo
	NotifRepo       *dynamo.NotificationRepo
	S3Store         *s3infra.Store
	Mailer          smtp.Mailer
	Events          sns.EventPublisher
	JWTProvider     *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	identityProvider := identity.NewProvider(deps.AccountRepo, deps.SignInTokenRepo,
		cfg.SignInLinkBaseURL, cfg.SignInTokenExpiry)
	notifSvc := notification.NewService(deps.NotifRepo, deps.Events)

	registrationSvc := registration.NewService(registration.ServiceDeps{
		OTPRepo:       deps.OTPRepo,
		StudentRepo:   deps.StudentRepo,
		RecruiterRepo: deps.RecruiterRepo,
		Identity:      identityProvider,
		Mailer:        deps.Mailer,
		Events:        deps.Events,
		StudentDomain: cfg.StudentEmailDomain,
		OTPExpiry:     cfg.OTPExpiry,
	})
	sessionSvc := session.NewService(session.ServiceDeps{
		SessionRepo:     deps.SessionRepo,
		AccountRepo:     deps.AccountRepo,
		SignInTokenRepo: deps.SignInTokenRepo,
		Signer:          deps.JWTProvider,
		RefreshTokenDur: cfg.RefreshTokenDur,
	})
	profileSvc := profile.NewService(deps.AccountRepo, deps.StudentRepo, deps.RecruiterRepo)
	internshipSvc := internship.NewService(internship.ServiceDeps{
		InternshipRepo:  deps.InternshipRepo,
		ApplicationRepo: deps.ApplicationRepo,
		StudentRepo:     deps.StudentRepo,
		RecruiterRepo:   deps.RecruiterRepo,
		Notifier:        notifSvc,
	})
	chatSvc := chat.NewService(deps.ChatRoomRepo, deps.ChatMessageRepo)
	mentorshipSvc := mentorship.NewService(deps.MentorshipRepo, deps.StudentRepo, notifSvc)
	badgeSvc := badge.NewService(deps.BadgeRepo, deps.StudentRepo, notifSvc)
	leaderboardSvc := leaderboard.NewService(deps.StudentRepo, deps.BadgeRepo)
	resumeSvc := resume.NewService(deps.ResumeRepo, deps.StudentRepo, deps.BadgeRepo, deps.S3Store)

	healthH := handler.NewHealthHandler()
	registrationH := handler.NewRegistrationHandler(registrationSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)
	profileH := handler.NewProfileHandler(profileSvc)
	internshipH := handler.NewInternshipHandler(internshipSvc, profileSvc)
	chatH := handler.NewChatHandler(chatSvc, profileSvc)
	mentorshipH := handler.NewMentorshipHandler(mentorshipSvc, profileSvc)
	badgeH := handler.NewBadgeHandler(badgeSvc, profileSvc)
	leaderboardH := handler.NewLeaderboardHandler(leaderboardSvc)
	resumeH := handler.NewResumeHandler(resumeSvc, profileSvc)
	notifH := handler.NewNotificationHandler(notifSvc)

	// Registration endpoints are also served unversioned; the signup page calls
	// them as bare function paths.
	r.With(sensitiveRL.Limit).Post("/send-otp", registrationH.SendOTP)
	r.With(sensitiveRL.Limit).Post("/verify-otp", registrationH.VerifyOTP)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/send-otp", registrationH.SendOTP)
		r.With(sensitiveRL.Limit).Post("/verify-otp", registrationH.VerifyOTP)
		r.With(sensitiveRL.Limit).Post("/sessions/magic", sessionH.Exchange)
		r.With(sensitiveRL.Limit).Post("/sessions/refresh", sessionH.Refresh)
		r.Get("/leaderboard", leaderboardH.Get)
		r.Get("/internships", internshipH.ListOpen)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/sessions", sessionH.GetCurrent)
			r.Post("/sessions/logout", sessionH.Logout)

			// Any authenticated user
			r.Get("/profile", profileH.Get)
			r.Get("/internships/{id}", internshipH.Get)
			r.Get("/chat/rooms", chatH.ListRooms)
			r.Post("/chat/rooms/{id}/messages", chatH.PostMessage)
			r.Get("/chat/rooms/{id}/messages", chatH.ListMessages)
			r.Get("/students/{id}/badges", badgeH.ListForStudent)
			r.Get("/notifications", notifH.ListUnread)
			r.Get("/notifications/{id}", notifH.Get)
			r.Put("/notifications/{id}", notifH.MarkAsRead)

			// Student-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireUserType(domain.UserTypeStudent))

				r.Put("/profile/student", profileH.UpdateStudent)
				r.Post("/internships/{id}/apply", internshipH.Apply)
				r.Get("/applications", internshipH.ListMyApplications)
				r.Post("/chat/rooms", chatH.CreateRoom)
				r.Post("/mentorships", mentorshipH.Request)
				r.Put("/mentorships/{id}/decide", mentorshipH.Decide)
				r.Put("/mentorships/{id}/complete", mentorshipH.Complete)
				r.Get("/mentorships", mentorshipH.List)
				r.Get("/badges", badgeH.ListMine)
				r.Post("/resumes", resumeH.Generate)
				r.Get("/resumes", resumeH.List)
				r.Get("/resumes/{id}", resumeH.Download)
				r.Get("/resumes/{id}/link", resumeH.Link)
				r.Delete("/resumes/{id}", resumeH.Delete)
			})

			// Recruiter-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireUserType(domain.UserTypeRecruiter))

				r.Put("/profile/recruiter", profileH.UpdateRecruiter)
				r.Post("/internships", internshipH.Create)
				r.Put("/internships/{id}", internshipH.Update)
				r.Get("/internships/mine", internshipH.ListMine)
				r.Get("/internships/{id}/applications", internshipH.ListApplications)
				r.Put("/applications/{id}/decide", internshipH.Decide)
				r.Post("/badges", badgeH.Award)
			})
		})
	})

	return r
}
