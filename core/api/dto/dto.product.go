package dto

// CreateProductRequest - Request tạo sản phẩm mới
type CreateProductRequest struct {
	Name     string `json:"name" validate:"required"`
	Price    int64  `json:"price" validate:"gte=0"`
	Category string `json:"category"`
}

// UpdateProductRequest - Request cập nhật sản phẩm, field nil = giữ nguyên
type UpdateProductRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Price    *int64  `json:"price" validate:"omitempty,gte=0"`
	Category *string `json:"category"`
	IsActive *bool   `json:"isActive"`
}
