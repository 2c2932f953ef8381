package router

import (
	"net/http"

	"github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/application/checkout"
	paysvc "github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/application/payments"
	propsvc "github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/application/property"
	rentsvc "github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/application/rental"
	usersvc "github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/application/user"
	"github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/config"
	"github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/infrastructure/database"
	healthhandler "github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/interfaces/handlers/health"
	payhandler "github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/interfaces/handlers/payments"
	prophandler "github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/interfaces/handlers/properties"
	renthandler "github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/interfaces/handlers/rentals"
	userhandler "github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/interfaces/handlers/users"
	"github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with every route mounted at its original
// Express path. Redis is optional; without it the role cache is skipped and
// health reports it disconnected.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(cfg.FrontendOrigin))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	db, err := database.Open(cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, nil, err
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, errRedis := redis.ParseURL(cfg.RedisURL)
		if errRedis != nil {
			return nil, nil, nil, errRedis
		}
		rdb = redis.NewClient(opt)
	}

	hh := &healthhandler.Handlers{DB: db, Rdb: rdb}
	app.Get("/health/json", hh.JSON)

	us := &usersvc.Service{DB: db, Rdb: rdb}
	uh := &userhandler.Handlers{Service: us}
	app.Post("/api/users/register", uh.Register)
	app.Post("/api/users/check-user", uh.CheckUser)
	app.Get("/api/profile", uh.ProfileByEmail)
	app.Get("/api/getProfile", uh.Profile)
	app.Patch("/api/editProfile", uh.EditProfile)
	app.Get("/api/getUserRole", uh.Role)
	app.Get("/api/getAllUsers", uh.ListAll)
	app.Patch("/api/handleUserStatus", uh.HandleStatus)

	ps := &propsvc.Service{DB: db}
	ph := &prophandler.Handlers{Service: ps}
	app.Post("/api/addPropertyListing", ph.AddListing)
	app.Patch("/api/updatePropertyListing/:propertyId", ph.UpdateListing)
	app.Get("/api/getUserProperties", ph.UserProperties)
	app.Get("/api/getSearchResults", ph.SearchResults)
	app.Get("/api/getPropertyDetails", ph.Details)
	app.Get("/api/getPropStatus", ph.Status)
	app.Post("/api/updatePropStatus", ph.UpdateStatus)
	app.Post("/api/savePropertyImage", ph.SaveImage)

	rs := &rentsvc.Service{DB: db}
	rh := &renthandler.Handlers{Service: rs}
	app.Post("/api/registerRentalDetails", rh.Register)
	app.Get("/api/GetRentalDetails", rh.Details)
	app.Get("/api/getRentalList", rh.List)
	app.Patch("/api/editRentalDetails", rh.Edit)

	pays := &paysvc.Service{DB: db}
	payh := &payhandler.Handlers{
		Service:        pays,
		Checkout:       &checkout.StripeClient{SecretKey: cfg.StripeSecretKey},
		FrontendOrigin: cfg.FrontendOrigin,
	}
	app.Get("/api/getPayouts", payh.Payouts)
	app.Get("/api/getDetailedPayouts", payh.DetailedPayouts)
	app.Get("/api/getEarnings", payh.Earnings)
	app.Get("/api/getEarnings/details", payh.EarningsDetails)
	app.Get("/api/getAllEarningsReport", payh.AllEarnings)
	app.Get("/api/getAllMonthlyReport", payh.MonthlyReport)
	app.Get("/api/moderatorReport/summary", payh.ModeratorSummary)
	app.Get("/api/moderatorReport/details", payh.ModeratorDetails)
	app.Post("/api/create-checkout-session", payh.CreateCheckoutSession)

	return app, db, rdb, nil
}

// Handler adapts the app for net/http based hosts.
func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
