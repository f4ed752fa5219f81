package common

import (
	"errors"
	"fmt"
)

// HTTP Status Code Constants
const (
	// Success Codes (2xx)
	StatusOK        = 200 // Thành công
	StatusCreated   = 201 // Tạo mới thành công
	StatusNoContent = 204 // Thành công nhưng không có nội dung trả về

	// Client Error Codes (4xx)
	StatusBadRequest      = 400 // Yêu cầu không hợp lệ
	StatusNotFound        = 404 // Không tìm thấy tài nguyên
	StatusConflict        = 409 // Xung đột dữ liệu / trạng thái
	StatusTooManyRequests = 429 // Quá nhiều yêu cầu

	// Server Error Codes (5xx)
	StatusInternalServerError = 500 // Lỗi server
	StatusServiceUnavailable  = 503 // Dịch vụ không khả dụng
)

// Response Messages
const (
	MsgSuccess = "Thao tác thành công"
	MsgCreated = "Tạo mới thành công"

	MsgBadRequest      = "Yêu cầu không hợp lệ"
	MsgNotFound        = "Không tìm thấy tài nguyên"
	MsgConflict        = "Xung đột dữ liệu"
	MsgTooManyRequests = "Quá nhiều yêu cầu"
	MsgInternalError   = "Lỗi hệ thống"

	MsgValidationError = "Dữ liệu không hợp lệ"
	MsgDatabaseError   = "Lỗi tương tác với cơ sở dữ liệu"
	MsgInvalidFormat   = "Định dạng dữ liệu không hợp lệ"
)

// ErrorCode định nghĩa mã lỗi chi tiết
type ErrorCode struct {
	Code        string // Mã lỗi (ví dụ: STOCK_001)
	Category    string // Phân loại lỗi (ví dụ: Stock)
	SubCategory string // Phân loại con (ví dụ: Depletion)
	Description string // Mô tả chi tiết
}

// Định nghĩa các mã lỗi theo hệ thống phân cấp
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Lỗi hệ thống không xác định",
	}

	// Validation Errors (VAL_xxx)
	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Dữ liệu đầu vào không hợp lệ",
	}
	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Định dạng dữ liệu không hợp lệ",
	}

	// Database / Persistence Errors (DB_xxx)
	ErrCodeDatabase = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "General",
		Description: "Lỗi tương tác với persistence gateway",
	}
	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Lỗi truy vấn dữ liệu",
	}
	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_003",
		Category:    "Database",
		SubCategory: "Connection",
		Description: "Lỗi kết nối cơ sở dữ liệu",
	}
	ErrCodeDatabaseNotFound = ErrorCode{
		Code:        "DB_004",
		Category:    "Database",
		SubCategory: "NotFound",
		Description: "Không tìm thấy dữ liệu theo key/id",
	}
	ErrCodeDatabaseDuplicate = ErrorCode{
		Code:        "DB_005",
		Category:    "Database",
		SubCategory: "Duplicate",
		Description: "Dữ liệu đã tồn tại",
	}

	// Stock / Ledger Errors (STOCK_xxx)
	ErrCodeStockQuantity = ErrorCode{
		Code:        "STOCK_001",
		Category:    "Stock",
		SubCategory: "Quantity",
		Description: "Số lượng không hợp lệ (phải lớn hơn 0)",
	}
	ErrCodeStockInsufficient = ErrorCode{
		Code:        "STOCK_002",
		Category:    "Stock",
		SubCategory: "Depletion",
		Description: "Tồn kho không đủ cho yêu cầu xuất",
	}
	ErrCodeStockOverfill = ErrorCode{
		Code:        "STOCK_003",
		Category:    "Stock",
		SubCategory: "Restoration",
		Description: "Hoàn kho vượt quá số lượng gốc của lô (lỗi logic thượng nguồn)",
	}
	ErrCodeStockDisposition = ErrorCode{
		Code:        "STOCK_004",
		Category:    "Stock",
		SubCategory: "Disposition",
		Description: "Sản phẩm còn tồn kho, cần disposition tường minh trước khi xóa",
	}

	// Order Errors (ORDER_xxx)
	ErrCodeOrderTransition = ErrorCode{
		Code:        "ORDER_001",
		Category:    "Order",
		SubCategory: "State",
		Description: "Chuyển trạng thái đơn hàng không hợp lệ",
	}
)

// Error là custom error của ứng dụng, mang theo mã lỗi và HTTP status
type Error struct {
	Code       ErrorCode // Mã lỗi chi tiết
	Message    string    // Thông báo lỗi
	StatusCode int       // HTTP status code
	Details    any       // Thông tin chi tiết thêm về lỗi
}

// Error trả về message của lỗi (implement error interface)
func (e *Error) Error() string {
	return e.Message
}

// Is so sánh hai lỗi theo mã lỗi, cho phép dùng errors.Is với các Err* định nghĩa sẵn
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code.Code == t.Code.Code
}

// NewError tạo một Error mới
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// WrapError bọc một lỗi gốc vào Error với mã lỗi cho trước, giữ message gốc trong Details
func WrapError(code ErrorCode, message string, statusCode int, cause error) error {
	var details any
	if cause != nil {
		details = cause.Error()
	}
	return &Error{
		Code:       code,
		Message:    fmt.Sprintf("%s: %v", message, cause),
		StatusCode: statusCode,
		Details:    details,
	}
}

// IsNotFound kiểm tra lỗi có phải ErrNotFound không
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Các lỗi định nghĩa sẵn của ledger
var (
	// Lỗi chung
	ErrInvalidInput  = NewError(ErrCodeValidationInput, "Dữ liệu đầu vào không hợp lệ", StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, "Định dạng dữ liệu không hợp lệ", StatusBadRequest, nil)
	ErrNotFound      = NewError(ErrCodeDatabaseNotFound, "Không tìm thấy dữ liệu", StatusNotFound, nil)
	ErrDuplicate     = NewError(ErrCodeDatabaseDuplicate, "Dữ liệu đã tồn tại", StatusConflict, nil)

	// Lỗi nghiệp vụ tồn kho và đơn hàng
	ErrInvalidQuantity   = NewError(ErrCodeStockQuantity, "Số lượng phải lớn hơn 0", StatusBadRequest, nil)
	ErrInsufficientStock = NewError(ErrCodeStockInsufficient, "Tồn kho không đủ", StatusConflict, nil)
	ErrExceedsOriginal   = NewError(ErrCodeStockOverfill, "Hoàn kho vượt quá số lượng gốc của lô", StatusInternalServerError, nil)
	ErrInvalidTransition = NewError(ErrCodeOrderTransition, "Chuyển trạng thái đơn hàng không hợp lệ", StatusConflict, nil)
	ErrProductHasStock   = NewError(ErrCodeStockDisposition, "Sản phẩm vẫn còn tồn kho, truyền disposeLots để thanh lý trước khi xóa", StatusConflict, nil)
)
