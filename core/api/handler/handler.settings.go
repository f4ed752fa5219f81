package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/quylang88/tini-store/core/api/services"
	"github.com/quylang88/tini-store/core/common"
	"github.com/quylang88/tini-store/core/persistence"
)

// SettingsHandler xử lý đọc/ghi cấu hình cửa hàng
type SettingsHandler struct {
	*BaseHandler
}

// NewSettingsHandler tạo SettingsHandler trên một Ledger đã dựng sẵn
func NewSettingsHandler(ledger *services.Ledger) *SettingsHandler {
	return &SettingsHandler{BaseHandler: NewBaseHandler(ledger)}
}

// Get - GET /settings
func (h *SettingsHandler) Get(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		settings, err := h.Ledger.Settings.GetSettings(c.Context())
		h.HandleResponse(c, settings, err)
		return nil
	})
}

// Save - PUT /settings
// Ghi đè toàn bộ cấu hình; cấu trúc document do client tự định nghĩa
func (h *SettingsHandler) Save(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var doc persistence.Document
		if err := h.ParseRequestBody(c, &doc); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if doc == nil {
			h.HandleResponse(c, nil, common.ErrInvalidInput)
			return nil
		}

		if err := h.Ledger.Settings.SaveSettings(c.Context(), doc); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, doc, nil)
		return nil
	})
}
