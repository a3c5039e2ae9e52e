package routes

import (
	"net/http"

	"github.com/camrado/pritok/internal/app"
	"github.com/camrado/pritok/internal/handler"
	"github.com/camrado/pritok/internal/middleware"
)

func SetupRoutes(a *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(a.AuthService)
	user := handler.NewUserHandler(a.UserService, a.VerificationService)
	category := handler.NewCategoryHandler(a.CategoryService)
	purchase := handler.NewPurchaseHandler(a.PurchaseService)

	// Middleware
	authed := middleware.RequireAuth(a.AuthService)
	verified := middleware.RequireVerified
	rateLimited := middleware.RateLimit(a.Cfg.AuthRateLimit, a.Cfg.AuthRateWindow)

	mux := http.NewServeMux()

	// Accounts and sessions
	mux.HandleFunc("POST /users", rateLimited(auth.SignUp))
	mux.HandleFunc("POST /users/login", rateLimited(auth.Login))
	mux.HandleFunc("POST /users/logout", authed(auth.Logout))
	mux.HandleFunc("POST /users/logout/all", authed(auth.LogoutAll))

	// Profile
	mux.HandleFunc("GET /users/me", authed(user.Me))
	mux.HandleFunc("PATCH /users/me/update", authed(user.UpdateProfile))
	mux.HandleFunc("PATCH /users/me/password", authed(user.UpdatePassword))
	mux.HandleFunc("DELETE /users/me", authed(user.DeleteAccount))

	// Verification (rate limited against code guessing)
	mux.HandleFunc("GET /users/me/send-verification-email", rateLimited(authed(user.SendVerificationEmail)))
	mux.HandleFunc("POST /users/me/verify", rateLimited(authed(user.Verify)))

	// Contact
	mux.HandleFunc("POST /users/contact-us", user.ContactUs)

	// Categories (verified accounts only)
	mux.HandleFunc("GET /category", authed(verified(category.List)))
	mux.HandleFunc("GET /category/page-num", authed(verified(category.PageCount)))
	mux.HandleFunc("GET /category/{id}", authed(verified(category.ByID)))
	mux.HandleFunc("POST /category", authed(verified(category.Create)))
	mux.HandleFunc("PUT /category/{id}", authed(verified(category.Update)))
	mux.HandleFunc("DELETE /category/{id}", authed(verified(category.Delete)))

	// Purchases (verified accounts only)
	mux.HandleFunc("GET /purchase", authed(verified(purchase.List)))
	mux.HandleFunc("GET /purchase/page-num", authed(verified(purchase.PageCount)))
	mux.HandleFunc("GET /purchase/{id}", authed(verified(purchase.ByID)))
	mux.HandleFunc("POST /purchase", authed(verified(purchase.Create)))
	mux.HandleFunc("PUT /purchase/{id}", authed(verified(purchase.Update)))
	mux.HandleFunc("DELETE /purchase/{id}", authed(verified(purchase.Delete)))

	return middleware.Chain(mux,
		middleware.RequestLogging,
	)
}
