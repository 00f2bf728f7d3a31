package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/sumafit/medstore/internal/handlers"
	"github.com/sumafit/medstore/internal/middleware/auth"
	"github.com/sumafit/medstore/internal/middleware/ratelimit"
)

type Deps struct {
	Tokens             *auth.TokenService
	AuthHandler        *handlers.AuthHandler
	ProductHandler     *handlers.ProductHandler
	ServiceHandler     *handlers.ServiceHandler
	NewsHandler        *handlers.NewsHandler
	FavoriteHandler    *handlers.FavoriteHandler
	OrderHandler       *handlers.OrderHandler
	AppointmentHandler *handlers.AppointmentHandler
	ReviewHandler      *handlers.ReviewHandler
	SettingsHandler    *handlers.SettingsHandler
	OfficeHandler      *handlers.OfficeHandler
	LocationHandler    *handlers.LocationHandler
	NewsletterHandler  *handlers.NewsletterHandler
	EmailChangeHandler *handlers.EmailChangeHandler
	UserAdminHandler   *handlers.UserAdminHandler
	UploadHandler      *handlers.UploadHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api", d.Tokens.Authenticate)

	// Session cookie and bearer token both authenticate; many reads stay
	// public. Credential endpoints are rate limited per IP.
	credentials := ratelimit.PerIP(5, 10)
	api.POST("/auth/register", d.AuthHandler.Register, credentials)
	api.POST("/auth/login", d.AuthHandler.Login, credentials)
	api.POST("/register", d.AuthHandler.Register, credentials)
	api.POST("/login", d.AuthHandler.Login, credentials)
	api.POST("/logout", d.AuthHandler.Logout)

	api.GET("/user", d.AuthHandler.Profile)
	api.GET("/users/profile", d.AuthHandler.Profile, auth.RequireAuth)
	api.PUT("/users/profile", d.AuthHandler.UpdateProfile, auth.RequireAuth)
	api.POST("/users/avatar", d.UploadHandler.UploadAvatar, auth.RequireAuth)

	api.GET("/users", d.UserAdminHandler.GetUsers, auth.RequireAdmin)
	api.PUT("/users/:id/role", d.UserAdminHandler.ChangeRole, auth.RequireSuperAdmin)
	api.DELETE("/users/:id", d.UserAdminHandler.DeleteUser, auth.RequireSuperAdmin)

	api.GET("/products", d.ProductHandler.GetProducts)
	api.GET("/products/:id", d.ProductHandler.GetProduct)
	api.POST("/products", d.ProductHandler.CreateProduct, auth.RequireAdmin)
	api.PATCH("/products/:id", d.ProductHandler.UpdateProduct, auth.RequireAdmin)
	api.PUT("/products/:id", d.ProductHandler.UpdateProduct, auth.RequireAdmin)
	api.DELETE("/products/:id", d.ProductHandler.DeleteProduct, auth.RequireAdmin)

	api.GET("/services", d.ServiceHandler.GetServices)
	api.GET("/services/:id", d.ServiceHandler.GetService)
	api.POST("/services", d.ServiceHandler.CreateService, auth.RequireAdmin)
	api.PATCH("/services/:id", d.ServiceHandler.UpdateService, auth.RequireAdmin)
	api.PUT("/services/:id", d.ServiceHandler.UpdateService, auth.RequireAdmin)
	api.DELETE("/services/:id", d.ServiceHandler.DeleteService, auth.RequireAdmin)

	api.GET("/news", d.NewsHandler.GetNews)
	api.GET("/news/:id", d.NewsHandler.GetNewsItem)
	api.POST("/news", d.NewsHandler.CreateNews, auth.RequireAdmin)
	api.PATCH("/news/:id", d.NewsHandler.UpdateNews, auth.RequireAdmin)
	api.DELETE("/news/:id", d.NewsHandler.DeleteNews, auth.RequireAdmin)

	api.GET("/favorites", d.FavoriteHandler.GetFavorites, auth.RequireAuth)
	api.POST("/favorites", d.FavoriteHandler.AddFavorite, auth.RequireAuth)
	api.DELETE("/favorites/:id", d.FavoriteHandler.RemoveFavorite, auth.RequireAuth)

	api.POST("/orders", d.OrderHandler.CreateOrder)
	api.GET("/orders", d.OrderHandler.GetOrders)

	api.POST("/appointments", d.AppointmentHandler.CreateAppointment)
	api.GET("/appointments", d.AppointmentHandler.GetAppointments)

	api.POST("/reviews", d.ReviewHandler.CreateReview, auth.RequireAuth)
	api.GET("/products/:productId/reviews", d.ReviewHandler.GetReviews)

	api.GET("/settings", d.SettingsHandler.GetSettings)
	api.PUT("/settings", d.SettingsHandler.UpsertSettings, auth.RequireAdmin)

	api.GET("/service-offices", d.OfficeHandler.GetOffices)
	api.POST("/service-offices", d.OfficeHandler.CreateOffice, auth.RequireAdmin)
	api.PATCH("/service-offices/:id", d.OfficeHandler.UpdateOffice, auth.RequireAdmin)
	api.DELETE("/service-offices/:id", d.OfficeHandler.DeleteOffice, auth.RequireAdmin)

	api.GET("/locations/counties", d.LocationHandler.GetCounties)
	api.GET("/locations/counties/:countyId/sub-counties", d.LocationHandler.GetSubCounties)
	api.GET("/locations/sub-counties/:subCountyId/areas", d.LocationHandler.GetAreas)

	api.POST("/newsletter/subscribe", d.NewsletterHandler.Subscribe)

	api.POST("/email-change", d.EmailChangeHandler.CreateRequest, auth.RequireAuth)
	api.GET("/email-change", d.EmailChangeHandler.ListRequests, auth.RequireAdmin)
	api.POST("/email-change/:id/review", d.EmailChangeHandler.ReviewRequest, auth.RequireAdmin)

	api.POST("/upload", d.UploadHandler.UploadImage, auth.RequireAdmin)
}
