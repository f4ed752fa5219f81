package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/quylang88/tini-store/core/api/services"
	"github.com/quylang88/tini-store/core/common"
)

// BackupHandler xử lý export/import toàn bộ sổ cái
type BackupHandler struct {
	*BaseHandler
}

// NewBackupHandler tạo BackupHandler trên một Ledger đã dựng sẵn
func NewBackupHandler(ledger *services.Ledger) *BackupHandler {
	return &BackupHandler{BaseHandler: NewBaseHandler(ledger)}
}

// Export - GET /backup
// Trả về snapshot JSON thô của toàn bộ store (không bọc envelope để
// file tải về dùng lại được cho import)
func (h *BackupHandler) Export(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		blob, err := h.Ledger.Backup.Export(c.Context())
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		c.Set("Content-Type", "application/json; charset=utf-8")
		c.Set("Content-Disposition", `attachment; filename="tini-store-backup.json"`)
		return c.Status(common.StatusOK).Send(blob)
	})
}

// Import - POST /backup
// Khôi phục store từ snapshot, thay thế toàn bộ dữ liệu hiện có
func (h *BackupHandler) Import(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		err := h.Ledger.ImportBackup(c.Context(), c.Body())
		h.HandleResponse(c, nil, err)
		return nil
	})
}
