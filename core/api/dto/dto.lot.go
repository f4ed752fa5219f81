package dto

import "github.com/quylang88/tini-store/core/api/models"

// CreateLotRequest - Request nhập một lô hàng mới
type CreateLotRequest struct {
	ProductID   string               `json:"productId" validate:"required"`
	Warehouse   string               `json:"warehouse" validate:"warehouse"`
	Quantity    int64                `json:"quantity" validate:"required,gt=0"`
	BaseCostVnd int64                `json:"baseCostVnd" validate:"gte=0"`
	Shipping    *models.ShippingMeta `json:"shipping"`
	CreatedAt   models.Millis        `json:"createdAt"`  // 0 = thời điểm hiện tại
	ExpiryDate  models.Millis        `json:"expiryDate"` // 0 = không có hạn sử dụng
}

// LotQueryRequest - Query liệt kê lô theo sản phẩm, tùy chọn lọc theo kho
type LotQueryRequest struct {
	ProductID string `json:"productId" query:"productId" validate:"required"`
	Warehouse string `json:"warehouse" query:"warehouse" validate:"warehouse"`
}

// StockQueryRequest - Query tồn kho của sản phẩm trong một kho
type StockQueryRequest struct {
	ProductID string `json:"productId" query:"productId" validate:"required"`
	Warehouse string `json:"warehouse" query:"warehouse" validate:"warehouse"`
}
