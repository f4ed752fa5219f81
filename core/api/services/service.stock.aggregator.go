package services

import (
	"context"
	"fmt"

	"github.com/quylang88/tini-store/core/api/models"
	"github.com/quylang88/tini-store/core/common"
)

// StockService tổng hợp tồn kho từ các lô. Tồn kho không được lưu riêng
// mà luôn tính từ remaining quantity của lô - single source of truth.
type StockService struct {
	lots *LotService

	// locks chia sẻ với DepletionService để đọc tồn kho nhất quán
	// với các phiên xuất kho đang chạy
	locks *KeyedRWMutex
}

// NewStockService tạo StockService dùng chung bộ khóa với depletion
func NewStockService(lots *LotService, locks *KeyedRWMutex) *StockService {
	return &StockService{lots: lots, locks: locks}
}

// stockKey là khóa tuần tự hóa theo cặp (sản phẩm, kho)
func stockKey(productID, warehouse string) string {
	return fmt.Sprintf("%s/%s", productID, warehouse)
}

// AvailableQuantity trả về tổng remaining của các lô sản phẩm trong kho
func (s *StockService) AvailableQuantity(ctx context.Context, productID, warehouse string) (int64, error) {
	resolved := models.ResolveWarehouseKey(warehouse)
	if resolved == "" {
		return 0, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Kho không hợp lệ: %s", warehouse), common.StatusBadRequest, nil)
	}

	key := stockKey(productID, resolved)
	s.locks.RLock(key)
	defer s.locks.RUnlock(key)

	lots, err := s.lots.GetLotsByWarehouse(ctx, productID, resolved)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, lot := range lots {
		total += lot.RemainingQuantity
	}
	return total, nil
}

// AvailableByWarehouse trả về tồn kho của sản phẩm theo từng kho
func (s *StockService) AvailableByWarehouse(ctx context.Context, productID string) (map[string]int64, error) {
	result := make(map[string]int64)
	for _, key := range models.AllWarehouseKeys() {
		qty, err := s.AvailableQuantity(ctx, productID, key)
		if err != nil {
			return nil, err
		}
		result[key] = qty
	}
	return result, nil
}
