package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/quylang88/tini-store/core/api/dto"
	"github.com/quylang88/tini-store/core/api/services"
)

// ProductHandler xử lý các request CRUD catalog sản phẩm
type ProductHandler struct {
	*BaseHandler
}

// NewProductHandler tạo ProductHandler trên một Ledger đã dựng sẵn
func NewProductHandler(ledger *services.Ledger) *ProductHandler {
	return &ProductHandler{BaseHandler: NewBaseHandler(ledger)}
}

// Create - POST /products
func (h *ProductHandler) Create(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.CreateProductRequest
		if err := h.ParseAndValidate(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		product, err := h.Ledger.Products.CreateProduct(c.Context(), services.CreateProductInput{
			Name:     input.Name,
			Price:    input.Price,
			Category: input.Category,
		})
		h.HandleResponse(c, product, err)
		return nil
	})
}

// Update - PUT /products/:id
func (h *ProductHandler) Update(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.UpdateProductRequest
		if err := h.ParseAndValidate(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		product, err := h.Ledger.Products.UpdateProduct(c.Context(), c.Params("id"), services.UpdateProductInput{
			Name:     input.Name,
			Price:    input.Price,
			Category: input.Category,
			IsActive: input.IsActive,
		})
		h.HandleResponse(c, product, err)
		return nil
	})
}

// FindByID - GET /products/:id
func (h *ProductHandler) FindByID(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		product, err := h.Ledger.Products.FindByID(c.Context(), c.Params("id"))
		h.HandleResponse(c, product, err)
		return nil
	})
}

// FindAll - GET /products
func (h *ProductHandler) FindAll(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		products, err := h.Ledger.Products.FindAll(c.Context())
		h.HandleResponse(c, products, err)
		return nil
	})
}

// Delete - DELETE /products/:id?disposeLots=true
// Sản phẩm còn tồn kho chỉ xóa được khi disposeLots=true (remaining
// các lô được đưa về 0 một cách tường minh)
func (h *ProductHandler) Delete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		disposeLots, _ := strconv.ParseBool(c.Query("disposeLots"))
		err := h.Ledger.DeleteProduct(c.Context(), c.Params("id"), disposeLots)
		h.HandleResponse(c, nil, err)
		return nil
	})
}
