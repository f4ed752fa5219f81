package dto

// OrderItemRequest - Một dòng hàng trong request tạo/sửa đơn
type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest - Request tạo đơn hàng mới
type CreateOrderRequest struct {
	OrderType       string             `json:"orderType" validate:"required,order_type"`
	Warehouse       string             `json:"warehouse" validate:"warehouse"`
	CustomerName    string             `json:"customerName"`
	CustomerAddress string             `json:"customerAddress"`
	ShippingFee     int64              `json:"shippingFee" validate:"gte=0"`
	Comment         string             `json:"comment"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderRequest - Request sửa đơn, field nil = giữ nguyên.
// Items khác nil sẽ hoàn kho cũ và xuất kho lại theo dòng hàng mới.
type UpdateOrderRequest struct {
	CustomerName    *string            `json:"customerName"`
	CustomerAddress *string            `json:"customerAddress"`
	ShippingFee     *int64             `json:"shippingFee" validate:"omitempty,gte=0"`
	Comment         *string            `json:"comment"`
	Items           []OrderItemRequest `json:"items" validate:"omitempty,min=1,dive"`
}

// TransitionOrderRequest - Request chuyển trạng thái đơn
type TransitionOrderRequest struct {
	Status string `json:"status" validate:"required,order_status"`
}

// OrderQueryRequest - Query liệt kê đơn, tùy chọn lọc theo trạng thái
type OrderQueryRequest struct {
	Status string `json:"status" query:"status" validate:"omitempty,order_status"`
}
