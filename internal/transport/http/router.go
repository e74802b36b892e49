package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storeapi/internal/handlers"
	authmw "storeapi/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *handlers.AuthHandler
	StoreHandler   *handlers.StoreHandler
	ProductHandler *handlers.ProductHandler
	SearchHandler  *handlers.SearchHandler
	AuthMW         *authmw.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)
	e.POST("/refresh", d.AuthHandler.Refresh)
	e.POST("/logout", d.AuthHandler.Logout, d.AuthMW.RequireAuth)

	e.GET("/store", d.StoreHandler.GetStores, d.AuthMW.RequireAuth)
	e.POST("/store", d.StoreHandler.CreateStore, d.AuthMW.RequireFresh)
	e.GET("/store/:id", d.StoreHandler.GetStore, d.AuthMW.RequireAuth)
	e.PUT("/store/:id", d.StoreHandler.UpdateStore, d.AuthMW.RequireFresh)
	e.DELETE("/store/:id", d.StoreHandler.DeleteStore, d.AuthMW.RequireFresh)

	e.GET("/product", d.ProductHandler.GetProducts, d.AuthMW.RequireAuth)
	e.POST("/product", d.ProductHandler.CreateProduct, d.AuthMW.RequireFresh)
	e.GET("/product/:id", d.ProductHandler.GetProduct, d.AuthMW.RequireAuth)
	e.PUT("/product/:id", d.ProductHandler.UpdateProduct, d.AuthMW.RequireFresh)
	e.DELETE("/product/:id", d.ProductHandler.DeleteProduct, d.AuthMW.RequireFresh)

	if d.SearchHandler != nil {
		e.GET("/search", d.SearchHandler.SearchProducts, d.AuthMW.RequireAuth)
	}
}
