package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avkuzmin/shop-backend/internal/middleware/auth"
)

type Deps struct {
	CatalogHandler  *CatalogHTTP
	OrderHandler    *OrderHTTP
	AuthHandler     *AuthHTTP
	CustomerHandler *CustomerHTTP
	SearchHandler   *SearchHTTP
	JWTSecret       []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	mw := auth.New(d.JWTSecret)

	a := e.Group("/auth")
	a.POST("/register", d.AuthHandler.Register)
	a.POST("/login", d.AuthHandler.Login)
	a.POST("/refresh", d.AuthHandler.Refresh)
	a.POST("/logout", d.AuthHandler.LogOut)

	customer := e.Group("/customer", mw.RequireAuth)
	customer.GET("/me/", d.CustomerHandler.Me)
	customer.POST("/confirm-email/", d.CustomerHandler.ConfirmEmail)
	customer.PUT("/address/", d.CustomerHandler.UpsertAddress)

	category := e.Group("/category")
	category.GET("/all/", d.CatalogHandler.ListCategories)
	categoryStaff := category.Group("", mw.RequireStaff)
	categoryStaff.POST("/create/", d.CatalogHandler.CreateCategory)
	categoryStaff.PUT("/disable/", d.CatalogHandler.DisableCategory)
	categoryStaff.PUT("/enable/", d.CatalogHandler.EnableCategory)
	categoryStaff.PUT("/subcategories/activate/", d.CatalogHandler.ActivateSubCategories)

	subcategory := e.Group("/subcategory", mw.RequireStaff)
	subcategory.POST("/create/", d.CatalogHandler.CreateSubCategory)
	subcategory.PUT("/disable/", d.CatalogHandler.DisableSubCategory)
	subcategory.PUT("/enable/", d.CatalogHandler.EnableSubCategory)

	product := e.Group("/product")
	product.GET("/detail/", d.CatalogHandler.GetProduct)
	product.GET("/all/", d.CatalogHandler.ListProducts)
	if d.SearchHandler != nil {
		product.GET("/search", d.SearchHandler.SearchProducts)
	}
	productStaff := product.Group("", mw.RequireStaff)
	productStaff.POST("/create/", d.CatalogHandler.CreateProduct)
	productStaff.PUT("/update/", d.CatalogHandler.UpdateProduct)
	productStaff.PUT("/is_active/", d.CatalogHandler.SetProductActive)

	order := e.Group("/order", mw.RequireAuth)
	order.POST("/create/", d.OrderHandler.CreateOrder)
	order.GET("/all/", d.OrderHandler.ListOrders)
	order.GET("/details/", d.OrderHandler.GetOrder)
	order.PATCH("/update-status/", d.OrderHandler.UpdateStatus, mw.RequireStaff)
}
