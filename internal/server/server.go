package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"aimaster-store/internal/handler"
	"aimaster-store/internal/middleware"
	"aimaster-store/internal/service"
)

type Server struct {
	echo           *echo.Echo
	authHandler    *handler.AuthHandler
	storeHandler   *handler.StoreHandler
	adminHandler   *handler.AdminHandler
	paymentHandler *handler.PaymentHandler
	authService    service.AuthService
}

func NewServer(
	authService service.AuthService,
	storeService service.StoreService,
	paymentService service.PaymentService,
	settingsService service.SettingsService,
	log zerolog.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(requestLogger(log))
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:           e,
		authHandler:    handler.NewAuthHandler(authService),
		storeHandler:   handler.NewStoreHandler(storeService, paymentService, settingsService),
		adminHandler:   handler.NewAdminHandler(storeService, settingsService),
		paymentHandler: handler.NewPaymentHandler(paymentService),
		authService:    authService,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- auth --------
	api.POST("/auth/signup", s.authHandler.SignUp)
	api.POST("/auth/signin", s.authHandler.SignIn)

	// -------- storefront (anonymous allowed) --------
	public := api.Group("", middleware.OptionalSession(s.authService))
	public.GET("/products", s.storeHandler.ListProducts)
	public.GET("/products/:id", s.storeHandler.GetProduct)
	public.GET("/banners", s.storeHandler.ListBanners)
	public.GET("/settings", s.storeHandler.GetSettings)

	// -------- signed-in storefront --------
	authed := api.Group("", middleware.Session(s.authService))
	authed.GET("/auth/session", s.authHandler.Session)
	authed.POST("/auth/signout", s.authHandler.SignOut)
	authed.GET("/purchases", s.storeHandler.MyPurchases)
	authed.POST("/payment/session", s.storeHandler.CreatePaymentSession)
	authed.POST("/orders", s.storeHandler.RecordOrder)

	// -------- back office --------
	admin := api.Group("/admin", middleware.Session(s.authService), middleware.RequireAdmin())
	admin.GET("/products", s.adminHandler.ListProducts)
	admin.POST("/products", s.adminHandler.CreateProduct)
	admin.PUT("/products/:id", s.adminHandler.UpdateProduct)
	admin.DELETE("/products/:id", s.adminHandler.DeleteProduct)
	admin.GET("/banners", s.adminHandler.ListBanners)
	admin.POST("/banners", s.adminHandler.CreateBanner)
	admin.PATCH("/banners/:id/active", s.adminHandler.SetBannerActive)
	admin.DELETE("/banners/:id", s.adminHandler.DeleteBanner)
	admin.GET("/orders", s.adminHandler.ListOrders)
	admin.PUT("/settings", s.adminHandler.UpdateSettings)

	// -------- hosted payment function --------
	s.echo.POST("/functions/create-payment-order", s.paymentHandler.CreatePaymentOrder)
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Msg("request")
			return nil
		},
	})
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
