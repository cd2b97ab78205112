package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"rooneyform-backend/internal/handler"
	"rooneyform-backend/internal/middleware"
	"rooneyform-backend/internal/repository"
	"rooneyform-backend/internal/service"
)

type Server struct {
	echo           *echo.Echo
	catalogHandler *handler.CatalogHandler
	userHandler    *handler.UserHandler
	orderHandler   *handler.OrderHandler
	botHandler     *handler.BotHandler
	authHandler    *handler.AuthHandler
	uploadHandler  *handler.UploadHandler

	userRepo    repository.UserRepository
	authService service.AuthService
	staticDir   string
}

func NewServer(
	catalogService service.CatalogService,
	cartService service.CartService,
	orderService service.OrderService,
	botService service.BotService,
	authService service.AuthService,
	userRepo repository.UserRepository,
	staticDir string,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	// Wide open on purpose: the storefront runs inside the Telegram WebApp.
	e.Use(echomw.CORS())

	s := &Server{
		echo:           e,
		catalogHandler: handler.NewCatalogHandler(catalogService),
		userHandler:    handler.NewUserHandler(cartService, orderService),
		orderHandler:   handler.NewOrderHandler(orderService),
		botHandler:     handler.NewBotHandler(botService),
		authHandler:    handler.NewAuthHandler(authService),
		uploadHandler:  handler.NewUploadHandler(staticDir),
		userRepo:       userRepo,
		authService:    authService,
		staticDir:      staticDir,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.Static("/static", s.staticDir)

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- public storefront --------
	api.GET("/products", s.catalogHandler.GetProducts)
	api.GET("/products/:id", s.catalogHandler.GetProduct)
	api.GET("/categories", s.catalogHandler.GetCategories)
	api.POST("/auth/login", s.authHandler.Login)
	api.POST("/telegram/webhook", s.botHandler.Webhook)

	// -------- telegram-identified user --------
	user := api.Group("", middleware.TelegramAuth(s.userRepo))
	user.GET("/cart", s.userHandler.GetCart)
	user.POST("/cart", s.userHandler.AddToCart)
	user.DELETE("/cart/:id", s.userHandler.RemoveFromCart)
	user.GET("/favorites", s.userHandler.GetFavorites)
	user.POST("/favorites", s.userHandler.AddFavorite)
	user.DELETE("/favorites/:product_id", s.userHandler.RemoveFavorite)
	user.POST("/orders", s.userHandler.PlaceOrder)

	// -------- admin console --------
	admin := api.Group("", middleware.AdminAuth(s.authService))
	admin.POST("/products", s.catalogHandler.CreateProduct)
	admin.PUT("/products/:id", s.catalogHandler.UpdateProduct)
	admin.DELETE("/products/:id", s.catalogHandler.DeleteProduct)
	admin.POST("/uploads", s.uploadHandler.UploadImages)
	admin.GET("/orders", s.orderHandler.ListOrders)
	admin.PATCH("/orders/:id", s.orderHandler.UpdateOrderStatus)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
