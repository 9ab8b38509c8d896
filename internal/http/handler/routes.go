package handler

import (
	"github.com/gofiber/fiber/v2"

	"expertbook/internal/http/middleware"
	"expertbook/internal/model"
	"expertbook/internal/service"
)

// Services bundles the use cases the HTTP layer exposes.
type Services struct {
	Auth       service.AuthService
	Categories service.CategoryService
	Experts    service.ExpertService
	Users      service.UserService
	Bookings   service.BookingService
	Dashboards service.DashboardService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. limiter
// guards the public auth endpoints; pass nil to disable it.
func RegisterRoutes(app *fiber.App, db Pinger, tokens middleware.TokenParser, limiter fiber.Handler, svc Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	authed := middleware.Auth(tokens, svc.Auth)
	admin := middleware.RequireRole(model.RoleAdmin)

	authGroup := app.Group("/auth")
	if limiter != nil {
		authGroup.Use(limiter)
	}
	authGroup.Post("/register", Register(svc.Auth))
	authGroup.Post("/register-expert", RegisterExpert(svc.Auth))
	authGroup.Post("/login", Login(svc.Auth))
	authGroup.Post("/forgot-password", ForgotPassword(svc.Auth))

	app.Get("/me", authed, Me(svc.Auth))

	app.Get("/categories", ListCategories(svc.Categories))
	app.Post("/categories", authed, admin, CreateCategory(svc.Categories))
	app.Put("/categories/:id", authed, admin, UpdateCategory(svc.Categories))
	app.Delete("/categories/:id", authed, admin, DeleteCategory(svc.Categories))

	app.Get("/experts", ListExperts(svc.Experts))
	app.Get("/experts/:id", GetExpert(svc.Experts))
	app.Get("/experts/:id/avatar", GetExpertAvatar(svc.Experts))
	app.Post("/experts", authed, admin, CreateExpert(svc.Experts))
	app.Put("/experts/:id", authed, admin, UpdateExpert(svc.Experts))
	app.Delete("/experts/:id", authed, admin, DeleteExpert(svc.Experts))
	app.Put("/experts/:id/avatar", authed, admin, UploadExpertAvatar(svc.Experts))

	users := app.Group("/users", authed, admin)
	users.Get("/", ListUsers(svc.Users))
	users.Post("/", CreateUser(svc.Users))
	users.Put("/:id", UpdateUser(svc.Users))
	users.Delete("/:id", DeleteUser(svc.Users))
	users.Put("/:id/role", UpdateUserRole(svc.Users))
	users.Post("/:id/toggle-role", ToggleUserRole(svc.Users))

	bookings := app.Group("/bookings", authed)
	bookings.Post("/", middleware.RequireRole(model.RoleUser), CreateBooking(svc.Bookings))
	bookings.Get("/mine", ListMyBookings(svc.Bookings))
	bookings.Post("/backfill-users", admin, BackfillBookingUsers(svc.Bookings))
	bookings.Put("/:id", RescheduleBooking(svc.Bookings))
	bookings.Delete("/:id", CancelBooking(svc.Bookings))
	bookings.Post("/:id/accept", middleware.RequireRole(model.RoleExpert), AcceptBooking(svc.Bookings))
	bookings.Post("/:id/decline", middleware.RequireRole(model.RoleExpert), DeclineBooking(svc.Bookings))

	dash := app.Group("/dashboard", authed)
	dash.Get("/admin", admin, AdminDashboard(svc.Dashboards))
	dash.Get("/expert", middleware.RequireRole(model.RoleExpert), ExpertDashboard(svc.Dashboards))
	dash.Get("/user", middleware.RequireRole(model.RoleUser), UserDashboard(svc.Dashboards))
}
