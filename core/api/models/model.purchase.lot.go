package models

import "github.com/shopspring/decimal"

// ShippingMeta là thông tin vận chuyển của một lô nhập.
// Chỉ dùng để tính unit cost tại thời điểm tạo lô; sau đó giữ nguyên
// để tra cứu, không bao giờ tính lại.
type ShippingMeta struct {
	Method       string          `json:"method,omitempty"`       // Phương thức vận chuyển (air, sea, ...)
	FeeVnd       int64           `json:"feeVnd,omitempty"`       // Phí ship phân bổ trên mỗi đơn vị (VND)
	CostJpy      decimal.Decimal `json:"costJpy,omitempty"`      // Giá gốc JPY (nếu nhập hàng Nhật)
	ExchangeRate decimal.Decimal `json:"exchangeRate,omitempty"` // Tỷ giá JPY -> VND tại thời điểm nhập
}

// PurchaseLot - Một lô hàng nhập kho.
// OriginalQuantity và UnitCost bất biến sau khi tạo. RemainingQuantity chỉ
// giảm khi xuất kho và chỉ tăng lại khi hoàn kho từ đơn bị hủy. Lô đã bán
// hết (remaining = 0) KHÔNG bị xóa - giữ lại cho audit/lịch sử giá vốn.
type PurchaseLot struct {
	ID                string        `json:"id"`
	ProductID         string        `json:"productId"`
	Warehouse         string        `json:"warehouse"` // Key kho (đã resolve về key hiện hành)
	OriginalQuantity  int64         `json:"originalQuantity"`
	RemainingQuantity int64         `json:"remainingQuantity"`
	UnitCost          int64         `json:"unitCost"`                  // Giá vốn 1 đơn vị (VND), đã gồm phân bổ phí ship
	PriceAtPurchase   int64         `json:"priceAtPurchase,omitempty"` // Giá bán của sản phẩm tại thời điểm nhập (snapshot)
	Seq               int64         `json:"seq"`                       // Thứ tự nhập, phá hòa createdAt trùng millisecond khi FIFO
	CreatedAt         Millis        `json:"createdAt"`
	ExpiryDate        Millis        `json:"expiryDate,omitempty"` // Hạn sử dụng (0 = không có)
	Shipping          *ShippingMeta `json:"shipping,omitempty"`
}

// IsSoldOut cho biết lô đã bán hết chưa (trạng thái terminal nhưng vẫn giữ lại)
func (l *PurchaseLot) IsSoldOut() bool {
	return l.RemainingQuantity == 0
}

// ComputeUnitCost tính giá vốn một đơn vị từ giá gốc và thông tin vận chuyển.
// Nếu lô nhập bằng JPY (costJpy > 0 và có tỷ giá) thì giá gốc VND được quy
// đổi từ JPY; ngược lại dùng baseCostVnd. Phí ship tính theo đơn vị (feeVnd).
func ComputeUnitCost(baseCostVnd int64, shipping *ShippingMeta) int64 {
	cost := baseCostVnd
	if shipping != nil {
		if shipping.CostJpy.IsPositive() && shipping.ExchangeRate.IsPositive() {
			cost = shipping.CostJpy.Mul(shipping.ExchangeRate).Round(0).IntPart()
		}
		cost += shipping.FeeVnd
	}
	return cost
}
