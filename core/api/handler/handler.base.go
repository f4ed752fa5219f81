// Package handler chứa các handler xử lý request HTTP của sổ cái.
// Mọi response đi qua envelope thống nhất {code, message, data, status}.
package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"

	"github.com/quylang88/tini-store/core/api/services"
	"github.com/quylang88/tini-store/core/common"
	"github.com/quylang88/tini-store/core/global"
	"github.com/quylang88/tini-store/core/logger"
)

// BaseHandler cung cấp các tiện ích chung cho mọi handler của sổ cái
type BaseHandler struct {
	Ledger *services.Ledger
}

// NewBaseHandler tạo BaseHandler trên một Ledger đã dựng sẵn
func NewBaseHandler(ledger *services.Ledger) *BaseHandler {
	return &BaseHandler{Ledger: ledger}
}

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
// để tên sản phẩm/khách hàng tiếng Việt hiển thị đúng
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// SafeHandler bọc handler với recover để bắt panic và xử lý lỗi an toàn.
// Server luôn trả về response cho client, kể cả khi có panic xảy ra.
func (h *BaseHandler) SafeHandler(c fiber.Ctx, fn func() error) error {
	defer func() {
		if r := recover(); r != nil {
			logger.GetErrorLogger().WithField("stack", string(debug.Stack())).
				Errorf("Panic trong handler: %v", r)

			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return fn()
}

// HandleResponse chuẩn hóa response trả về cho client.
// Lỗi common.Error giữ nguyên status code và mã lỗi của nó; lỗi khác
// được coi là lỗi hệ thống.
func (h *BaseHandler) HandleResponse(c fiber.Ctx, data interface{}, err error) {
	if err != nil {
		var customErr *common.Error
		if errors.As(err, &customErr) {
			JSONResponse(c, customErr.StatusCode, fiber.Map{
				"code":    customErr.Code.Code,
				"message": customErr.Message,
				"details": customErr.Details,
				"status":  "error",
			})
			return
		}
		JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":    common.ErrCodeInternalServer.Code,
			"message": err.Error(),
			"status":  "error",
		})
		return
	}

	JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}

// ParseRequestBody parse request body thành struct.
// Dùng json.Decoder với UseNumber() để số lớn không mất chính xác.
func (h *BaseHandler) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
			common.StatusBadRequest,
			err,
		)
	}
	return nil
}

// ParseAndValidate parse request body rồi validate bằng struct tag
func (h *BaseHandler) ParseAndValidate(c fiber.Ctx, input interface{}) error {
	if err := h.ParseRequestBody(c, input); err != nil {
		return err
	}
	return h.ValidateInput(input)
}

// ValidateInput validate dữ liệu đầu vào bằng validator từ global
func (h *BaseHandler) ValidateInput(input interface{}) error {
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}
