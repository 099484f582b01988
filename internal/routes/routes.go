package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/doffers/internal/config"
	"github.com/example/doffers/internal/handlers"
	"github.com/example/doffers/internal/middleware"
	"github.com/example/doffers/internal/models"
	"github.com/example/doffers/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	otpService := services.NewOTPService(db, cfg)
	pincodeService := services.NewPincodeService(cfg.PincodeAPIBaseURL)

	var sms services.SMSSender = services.NoopSender{}
	if cfg.SendOTPViaSMS {
		sms = services.NewTwilioSender(cfg.SMSAccountSID, cfg.SMSAuthToken, cfg.SMSFromNumber)
	}

	authService := services.NewAuthService(db, cfg, otpService, pincodeService, sms)
	adminService := services.NewAdminService(db)

	authHandler := handlers.NewAuthHandler(db, cfg, authService, otpService)
	adminHandler := handlers.NewAdminHandler(adminService)
	offerHandler := handlers.NewOfferHandler(db)
	customerHandler := handlers.NewCustomerHandler(db)
	profileHandler := handlers.NewProfileHandler(db)
	metaHandler := handlers.NewMetaHandler(pincodeService)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/send-otp", authHandler.SendOtp)
	auth.Post("/verify-otp", authHandler.VerifyOtp)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)
	auth.Put("/me", middleware.AuthMiddleware(cfg), authHandler.UpdateMe)
	if cfg.IsDev() {
		auth.Get("/dev/last-otp", authHandler.DevLastOtp)
	}

	// Meta routes
	meta := api.Group("/meta")
	meta.Get("/pincode/:pincode", metaHandler.PincodeLookup)

	// Admin routes
	admin := api.Group("/admin",
		middleware.AuthMiddleware(cfg),
		middleware.RequireRole(models.RoleAdmin))
	admin.Get("/shopkeepers", adminHandler.ListShopkeepers)
	admin.Patch("/shopkeepers/:id/approve", adminHandler.Approve)
	admin.Patch("/shopkeepers/:id/reject", adminHandler.Reject)

	// Shopkeeper routes
	shopkeeper := api.Group("/shopkeeper",
		middleware.AuthMiddleware(cfg),
		middleware.RequireRole(models.RoleShopkeeper, models.RoleAdmin))
	shopkeeper.Get("/profile", profileHandler.GetProfile)
	shopkeeper.Put("/profile", profileHandler.UpsertProfile)
	shopkeeper.Post("/offers", offerHandler.Create)
	shopkeeper.Get("/offers", offerHandler.List)
	shopkeeper.Get("/offers/:id", offerHandler.Get)
	shopkeeper.Put("/offers/:id", offerHandler.Update)
	shopkeeper.Delete("/offers/:id", offerHandler.Delete)

	// Customer routes
	customer := api.Group("/customer",
		middleware.AuthMiddleware(cfg),
		middleware.RequireRole(models.RoleCustomer, models.RoleAdmin))
	customer.Get("/offers", customerHandler.ListOffers)
	customer.Post("/offers/:id/like", customerHandler.LikeOffer)
	customer.Delete("/offers/:id/like", customerHandler.UnlikeOffer)
}
