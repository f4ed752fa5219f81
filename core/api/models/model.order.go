package models

import "github.com/shopspring/decimal"

// Trạng thái đơn hàng
const (
	OrderStatusPending   = "pending"   // Mới tạo, chưa thanh toán
	OrderStatusPaid      = "paid"      // Đã thanh toán
	OrderStatusCompleted = "completed" // Hoàn tất (terminal)
	OrderStatusCancelled = "cancelled" // Đã hủy, tồn kho đã hoàn (terminal)
)

// Loại đơn hàng
const (
	OrderTypeDelivery  = "delivery"  // Gửi khách
	OrderTypeWarehouse = "warehouse" // Bán tại kho
)

// orderTransitions là bảng state machine của đơn hàng.
// pending -> paid | cancelled; paid -> completed | cancelled;
// completed và cancelled là terminal.
var orderTransitions = map[string][]string{
	OrderStatusPending:   {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:      {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// CanTransition kiểm tra việc chuyển trạng thái from -> to có hợp lệ không
func CanTransition(from, to string) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsValidOrderStatus kiểm tra status có thuộc bảng trạng thái không
func IsValidOrderStatus(status string) bool {
	_, ok := orderTransitions[status]
	return ok
}

// LotAllocation ghi lại một phần xuất kho từ một lô cụ thể.
// Đây là dấu vết để truy nguyên giá vốn và để hoàn kho chính xác khi hủy đơn.
type LotAllocation struct {
	LotID    string `json:"lotId"`
	Quantity int64  `json:"quantity"`
	UnitCost int64  `json:"unitCost"` // Giá vốn của lô tại thời điểm xuất (VND)
}

// OrderItem - Một dòng hàng trong đơn. Tên/giá bán/giá vốn là SNAPSHOT
// tại thời điểm tạo đơn: sửa hay xóa product sau đó không làm thay đổi
// đơn lịch sử.
type OrderItem struct {
	ProductID      string          `json:"productId"`
	ProductName    string          `json:"productName"` // Snapshot tên sản phẩm
	Warehouse      string          `json:"warehouse"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      int64           `json:"unitPrice"` // Snapshot giá bán (VND)
	UnitCost       decimal.Decimal `json:"unitCost"`  // Giá vốn bình quân gia quyền của các lô đã xuất
	LotAllocations []LotAllocation `json:"lotAllocations"`
}

// Order - Đơn hàng, bản ghi bất biến trừ trạng thái.
// TotalPrice = tổng (unitPrice × quantity) các dòng hàng; phí ship là
// metadata riêng, không nằm trong total.
type Order struct {
	ID              string      `json:"id"`
	OrderNumber     string      `json:"orderNumber"` // Số đơn 4 chữ số, chỉ để hiển thị
	OrderType       string      `json:"orderType"`   // delivery | warehouse
	Warehouse       string      `json:"warehouse"`   // Kho xuất hàng
	CustomerName    string      `json:"customerName,omitempty"`
	CustomerAddress string      `json:"customerAddress,omitempty"`
	ShippingFee     int64       `json:"shippingFee,omitempty"` // Chỉ với đơn gửi khách
	Comment         string      `json:"comment,omitempty"`
	Items           []OrderItem `json:"items"`
	TotalPrice      int64       `json:"totalPrice"`
	Status          string      `json:"status"`
	StockRestored   bool        `json:"stockRestored"` // Chặn hoàn kho hai lần khi hủy
	CreatedAt       Millis      `json:"createdAt"`
	UpdatedAt       Millis      `json:"updatedAt"`
}
