package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/quylang88/tini-store/core/api/dto"
	"github.com/quylang88/tini-store/core/api/models"
	"github.com/quylang88/tini-store/core/api/services"
)

// LotHandler xử lý các request nhập lô và tra cứu lô/tồn kho
type LotHandler struct {
	*BaseHandler
}

// NewLotHandler tạo LotHandler trên một Ledger đã dựng sẵn
func NewLotHandler(ledger *services.Ledger) *LotHandler {
	return &LotHandler{BaseHandler: NewBaseHandler(ledger)}
}

// Create - POST /lots
func (h *LotHandler) Create(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.CreateLotRequest
		if err := h.ParseAndValidate(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		lot, err := h.Ledger.Lots.CreateLot(c.Context(), services.CreateLotInput{
			ProductID:   input.ProductID,
			Warehouse:   input.Warehouse,
			Quantity:    input.Quantity,
			BaseCostVnd: input.BaseCostVnd,
			Shipping:    input.Shipping,
			CreatedAt:   input.CreatedAt,
			ExpiryDate:  input.ExpiryDate,
		})
		h.HandleResponse(c, lot, err)
		return nil
	})
}

// FindByProduct - GET /lots?productId=...&warehouse=...
// Trả về các lô theo thứ tự FIFO; warehouse rỗng = tất cả kho
func (h *LotHandler) FindByProduct(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := dto.LotQueryRequest{
			ProductID: c.Query("productId"),
			Warehouse: c.Query("warehouse"),
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var (
			lots []models.PurchaseLot
			err  error
		)
		if input.Warehouse != "" {
			lots, err = h.Ledger.Lots.GetLotsByWarehouse(c.Context(), input.ProductID, input.Warehouse)
		} else {
			lots, err = h.Ledger.Lots.GetLots(c.Context(), input.ProductID)
		}
		h.HandleResponse(c, lots, err)
		return nil
	})
}

// Stock - GET /stock?productId=...&warehouse=...
// Tồn kho của sản phẩm: một kho nếu có warehouse, tất cả kho nếu không
func (h *LotHandler) Stock(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := dto.StockQueryRequest{
			ProductID: c.Query("productId"),
			Warehouse: c.Query("warehouse"),
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		if input.Warehouse != "" {
			qty, err := h.Ledger.Stock.AvailableQuantity(c.Context(), input.ProductID, input.Warehouse)
			h.HandleResponse(c, fiber.Map{"available": qty}, err)
			return nil
		}

		byWarehouse, err := h.Ledger.Stock.AvailableByWarehouse(c.Context(), input.ProductID)
		h.HandleResponse(c, byWarehouse, err)
		return nil
	})
}

// Warehouses - GET /warehouses
// Danh sách kho đang hoạt động (key, label, kho mặc định)
func (h *LotHandler) Warehouses(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		h.HandleResponse(c, models.Warehouses, nil)
		return nil
	})
}
