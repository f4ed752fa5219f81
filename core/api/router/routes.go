// Package router đăng ký toàn bộ route HTTP của sổ cái dưới /api/v1.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/quylang88/tini-store/core/api/handler"
	"github.com/quylang88/tini-store/core/api/services"
)

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// Router gom các handler của sổ cái để đăng ký route
type Router struct {
	app    *fiber.App
	ledger *services.Ledger
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App, ledger *services.Ledger) *Router {
	return &Router{app: app, ledger: ledger}
}

// registerSystemRoutes đăng ký route health check
func registerSystemRoutes(router fiber.Router) error {
	systemHandler := handler.NewSystemHandler()
	router.Get("/system/health", systemHandler.HandleHealth)
	return nil
}

// registerProductRoutes đăng ký các route catalog sản phẩm
func (r *Router) registerProductRoutes(router fiber.Router) error {
	h := handler.NewProductHandler(r.ledger)

	products := router.Group("/products")
	products.Post("/", h.Create)
	products.Get("/", h.FindAll)
	products.Get("/:id", h.FindByID)
	products.Put("/:id", h.Update)
	products.Delete("/:id", h.Delete)

	return nil
}

// registerLotRoutes đăng ký các route lô hàng, tồn kho và danh sách kho
func (r *Router) registerLotRoutes(router fiber.Router) error {
	h := handler.NewLotHandler(r.ledger)

	lots := router.Group("/lots")
	lots.Post("/", h.Create)
	lots.Get("/", h.FindByProduct)

	router.Get("/stock", h.Stock)
	router.Get("/warehouses", h.Warehouses)

	return nil
}

// registerOrderRoutes đăng ký các route của sổ cái đơn hàng
func (r *Router) registerOrderRoutes(router fiber.Router) error {
	h := handler.NewOrderHandler(r.ledger)

	orders := router.Group("/orders")
	orders.Post("/", h.Create)
	orders.Get("/", h.FindAll)
	orders.Get("/:id", h.FindByID)
	orders.Put("/:id", h.Update)
	orders.Post("/:id/status", h.Transition)
	orders.Post("/:id/cancel", h.Cancel)

	return nil
}

// registerSettingsRoutes đăng ký các route cấu hình cửa hàng
func (r *Router) registerSettingsRoutes(router fiber.Router) error {
	h := handler.NewSettingsHandler(r.ledger)

	router.Get("/settings", h.Get)
	router.Put("/settings", h.Save)

	return nil
}

// registerBackupRoutes đăng ký các route export/import sổ cái
func (r *Router) registerBackupRoutes(router fiber.Router) error {
	h := handler.NewBackupHandler(r.ledger)

	router.Get("/backup", h.Export)
	router.Post("/backup", h.Import)

	return nil
}

// SetupRoutes đăng ký toàn bộ route của ứng dụng
func SetupRoutes(app *fiber.App) error {
	ledger, err := services.NewLedger()
	if err != nil {
		return fmt.Errorf("failed to create ledger: %v", err)
	}

	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)

	router := NewRouter(app, ledger)

	// 1. System Routes
	if err := registerSystemRoutes(v1); err != nil {
		return fmt.Errorf("failed to register system routes: %v", err)
	}

	// 2. Product Routes
	if err := router.registerProductRoutes(v1); err != nil {
		return fmt.Errorf("failed to register product routes: %v", err)
	}

	// 3. Lot & Stock Routes
	if err := router.registerLotRoutes(v1); err != nil {
		return fmt.Errorf("failed to register lot routes: %v", err)
	}

	// 4. Order Routes
	if err := router.registerOrderRoutes(v1); err != nil {
		return fmt.Errorf("failed to register order routes: %v", err)
	}

	// 5. Settings Routes
	if err := router.registerSettingsRoutes(v1); err != nil {
		return fmt.Errorf("failed to register settings routes: %v", err)
	}

	// 6. Backup Routes
	if err := router.registerBackupRoutes(v1); err != nil {
		return fmt.Errorf("failed to register backup routes: %v", err)
	}

	return nil
}
