package global

import (
	"github.com/go-playground/validator/v10"

	"github.com/quylang88/tini-store/core/api/models"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	// Khởi tạo validator
	Validate = validator.New()

	// Đăng ký các custom validator
	_ = Validate.RegisterValidation("warehouse", validateWarehouse)
	_ = Validate.RegisterValidation("order_type", validateOrderType)
	_ = Validate.RegisterValidation("order_status", validateOrderStatus)
}

// validateWarehouse kiểm tra key kho hợp lệ (chấp nhận cả legacy key)
func validateWarehouse(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Rỗng = dùng kho mặc định, các tầng dưới tự resolve
	}
	return models.IsValidWarehouse(value)
}

// validateOrderType kiểm tra loại đơn hàng
func validateOrderType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == models.OrderTypeDelivery || value == models.OrderTypeWarehouse
}

// validateOrderStatus kiểm tra status thuộc bảng trạng thái đơn hàng
func validateOrderStatus(fl validator.FieldLevel) bool {
	return models.IsValidOrderStatus(fl.Field().String())
}
