package models

// Product - Sản phẩm trong catalog của cửa hàng.
// Tồn kho KHÔNG lưu trên product: luôn được suy ra từ các purchase lot
// (xem PurchaseLot). Đơn hàng giữ snapshot tên/giá nên sửa hay xóa product
// không ảnh hưởng đơn lịch sử.
type Product struct {
	ID        string `json:"id"`                 // UUID
	Name      string `json:"name"`               // Tên sản phẩm
	Price     int64  `json:"price"`              // Giá bán một đơn vị (VND)
	Category  string `json:"category,omitempty"` // Danh mục
	IsActive  bool   `json:"isActive"`           // false = đã ngừng bán (vẫn giữ cho lịch sử)
	CreatedAt Millis `json:"createdAt"`
	UpdatedAt Millis `json:"updatedAt"`
}
