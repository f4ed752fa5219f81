package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/quylang88/tini-store/core/api/dto"
	"github.com/quylang88/tini-store/core/api/services"
)

// OrderHandler xử lý các request của sổ cái đơn hàng
type OrderHandler struct {
	*BaseHandler
}

// NewOrderHandler tạo OrderHandler trên một Ledger đã dựng sẵn
func NewOrderHandler(ledger *services.Ledger) *OrderHandler {
	return &OrderHandler{BaseHandler: NewBaseHandler(ledger)}
}

// Create - POST /orders
// Tạo đơn all-or-nothing: thiếu tồn ở bất kỳ dòng nào thì không đơn nào được ghi
func (h *OrderHandler) Create(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.CreateOrderRequest
		if err := h.ParseAndValidate(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		items := make([]services.OrderItemInput, 0, len(input.Items))
		for _, item := range input.Items {
			items = append(items, services.OrderItemInput{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}

		order, err := h.Ledger.Orders.CreateOrder(c.Context(), services.CreateOrderInput{
			OrderType:       input.OrderType,
			Warehouse:       input.Warehouse,
			CustomerName:    input.CustomerName,
			CustomerAddress: input.CustomerAddress,
			ShippingFee:     input.ShippingFee,
			Comment:         input.Comment,
			Items:           items,
		})
		h.HandleResponse(c, order, err)
		return nil
	})
}

// FindByID - GET /orders/:id
func (h *OrderHandler) FindByID(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		order, err := h.Ledger.Orders.GetOrder(c.Context(), c.Params("id"))
		h.HandleResponse(c, order, err)
		return nil
	})
}

// FindAll - GET /orders?status=...
func (h *OrderHandler) FindAll(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := dto.OrderQueryRequest{Status: c.Query("status")}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		if input.Status != "" {
			orders, err := h.Ledger.Orders.ListOrdersByStatus(c.Context(), input.Status)
			h.HandleResponse(c, orders, err)
			return nil
		}

		orders, err := h.Ledger.Orders.ListOrders(c.Context())
		h.HandleResponse(c, orders, err)
		return nil
	})
}

// Update - PUT /orders/:id
func (h *OrderHandler) Update(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.UpdateOrderRequest
		if err := h.ParseAndValidate(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		update := services.UpdateOrderInput{
			CustomerName:    input.CustomerName,
			CustomerAddress: input.CustomerAddress,
			ShippingFee:     input.ShippingFee,
			Comment:         input.Comment,
		}
		if input.Items != nil {
			update.Items = make([]services.OrderItemInput, 0, len(input.Items))
			for _, item := range input.Items {
				update.Items = append(update.Items, services.OrderItemInput{
					ProductID: item.ProductID,
					Quantity:  item.Quantity,
				})
			}
		}

		order, err := h.Ledger.Orders.UpdateOrder(c.Context(), c.Params("id"), update)
		h.HandleResponse(c, order, err)
		return nil
	})
}

// Transition - POST /orders/:id/status
// Chuyển trạng thái theo state machine; sang cancelled sẽ hoàn kho
func (h *OrderHandler) Transition(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.TransitionOrderRequest
		if err := h.ParseAndValidate(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		order, err := h.Ledger.Orders.Transition(c.Context(), c.Params("id"), input.Status)
		h.HandleResponse(c, order, err)
		return nil
	})
}

// Cancel - POST /orders/:id/cancel
func (h *OrderHandler) Cancel(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		order, err := h.Ledger.Orders.CancelOrder(c.Context(), c.Params("id"))
		h.HandleResponse(c, order, err)
		return nil
	})
}
