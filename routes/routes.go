package routes

import (
	"net/http"
	"path/filepath"

	"github.com/Atiqul-Imon/jhatika-safar-sub000/auth"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/bookings"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/contact"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/middleware"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/ratelim"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/stats"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/tours"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/users"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router, uploadDir string) {
	router.ServeFiles("/static/tourpic/*filepath", http.Dir(filepath.Join(uploadDir, "tourpic")))
}

func AddTourRoutes(router *httprouter.Router, h *tours.Handler, authmw *middleware.Auth) {
	// public catalog
	router.GET("/api/tours", h.ListTours)
	router.GET("/api/tours/featured", h.GetFeatured)
	router.GET("/api/tours/categories", h.GetCategories)
	router.GET("/api/tours/slug/:slug", h.GetTourBySlug)

	// back office
	router.POST("/api/admin/tours", authmw.RequireAdmin(h.CreateTour))
	router.GET("/api/admin/tours/:tourid", authmw.RequireAdmin(h.GetTour))
	router.PUT("/api/admin/tours/:tourid", authmw.RequireAdmin(h.UpdateTour))
	router.DELETE("/api/admin/tours/:tourid", authmw.RequireAdmin(h.DeleteTour))
	router.POST("/api/admin/tours/:tourid/images", authmw.RequireAdmin(h.UploadImages))
}

func AddBookingRoutes(router *httprouter.Router, h *bookings.Handler, authmw *middleware.Auth, rl *ratelim.RateLimiter) {
	router.POST("/api/bookings", rl.Limit(h.CreateBooking))

	router.GET("/api/admin/bookings", authmw.RequireAdmin(h.ListBookings))
	router.GET("/api/admin/bookings/:bookingid", authmw.RequireAdmin(h.GetBooking))
	router.PUT("/api/admin/bookings/:bookingid", authmw.RequireAdmin(h.UpdateBooking))
	router.DELETE("/api/admin/bookings/:bookingid", authmw.RequireAdmin(h.DeleteBooking))
	router.GET("/api/admin/bookings/:bookingid/voucher", authmw.RequireAdmin(h.Voucher))
}

func AddContactRoutes(router *httprouter.Router, h *contact.Handler, authmw *middleware.Auth, rl *ratelim.RateLimiter) {
	router.POST("/api/contact", rl.Limit(h.CreateMessage))

	router.GET("/api/admin/messages", authmw.RequireAdmin(h.ListMessages))
	router.GET("/api/admin/messages/:messageid", authmw.RequireAdmin(h.GetMessage))
	router.PUT("/api/admin/messages/:messageid", authmw.RequireAdmin(h.UpdateMessage))
	router.DELETE("/api/admin/messages/:messageid", authmw.RequireAdmin(h.DeleteMessage))
}

func AddAuthRoutes(router *httprouter.Router, h *auth.Handler, authmw *middleware.Auth, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(h.Register))
	router.POST("/api/auth/login", rl.Limit(h.Login))
	router.GET("/api/auth/me", authmw.Authenticate(h.Me))
}

func AddUserRoutes(router *httprouter.Router, h *users.Handler, authmw *middleware.Auth) {
	router.GET("/api/admin/users", authmw.RequireAdmin(h.ListUsers))
	router.PUT("/api/admin/users/:userid", authmw.RequireAdmin(h.UpdateUser))
	router.DELETE("/api/admin/users/:userid", authmw.RequireAdmin(h.DeleteUser))
}

func AddStatsRoutes(router *httprouter.Router, h *stats.Handler, authmw *middleware.Auth) {
	router.GET("/api/admin/stats/dashboard", authmw.RequireAdmin(h.Dashboard))
}
