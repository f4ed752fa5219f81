package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/quylang88/tini-store/core/api/models"
	"github.com/quylang88/tini-store/core/common"
	"github.com/quylang88/tini-store/core/logger"
)

// DepletionResult là kết quả một phiên xuất kho FIFO
type DepletionResult struct {
	// Allocations ghi lại lô nào bị trừ bao nhiêu, theo thứ tự tiêu thụ
	Allocations []models.LotAllocation
	// WeightedUnitCost là giá vốn bình quân gia quyền của 1 đơn vị
	WeightedUnitCost decimal.Decimal
	// TotalCost là tổng giá vốn (VND) của toàn bộ lượng xuất
	TotalCost int64
}

// DepletionService xuất kho theo FIFO và hoàn kho theo allocation.
// Mỗi cặp (sản phẩm, kho) được tuần tự hóa bằng write lock riêng nên
// hai phiên xuất song song không bao giờ trừ trùng một đơn vị tồn.
type DepletionService struct {
	lots  *LotService
	locks *KeyedRWMutex
}

// NewDepletionService tạo DepletionService dùng chung bộ khóa với StockService
func NewDepletionService(lots *LotService, locks *KeyedRWMutex) *DepletionService {
	return &DepletionService{lots: lots, locks: locks}
}

// Deplete trừ quantity đơn vị khỏi các lô của sản phẩm trong kho theo FIFO.
// All-or-nothing: nếu tổng tồn không đủ thì trả về ErrInsufficientStock
// và không lô nào bị thay đổi.
func (s *DepletionService) Deplete(ctx context.Context, productID, warehouse string, quantity int64) (DepletionResult, error) {
	var zero DepletionResult

	if quantity <= 0 {
		return zero, common.ErrInvalidQuantity
	}
	resolved := models.ResolveWarehouseKey(warehouse)
	if resolved == "" {
		return zero, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Kho không hợp lệ: %s", warehouse), common.StatusBadRequest, nil)
	}

	key := stockKey(productID, resolved)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	// Tồn kho tính ngay trong critical section, không qua StockService
	// (khóa không reentrant)
	lots, err := s.lots.GetLotsByWarehouse(ctx, productID, resolved)
	if err != nil {
		return zero, err
	}

	var available int64
	for _, lot := range lots {
		available += lot.RemainingQuantity
	}
	if available < quantity {
		return zero, common.ErrInsufficientStock
	}

	var (
		allocations []models.LotAllocation
		totalCost   int64
		remaining   = quantity
	)
	for _, lot := range lots {
		if remaining == 0 {
			break
		}
		if lot.RemainingQuantity == 0 {
			continue
		}

		take := lot.RemainingQuantity
		if take > remaining {
			take = remaining
		}

		if err := s.lots.AdjustRemaining(ctx, lot.ID, -take); err != nil {
			// Hoàn lại các lô đã trừ trước khi báo lỗi
			s.rollback(ctx, allocations)
			return zero, err
		}

		allocations = append(allocations, models.LotAllocation{
			LotID:    lot.ID,
			Quantity: take,
			UnitCost: lot.UnitCost,
		})
		totalCost += take * lot.UnitCost
		remaining -= take
	}

	// Tổng giá vốn cộng dồn bằng int64, chỉ chia một lần duy nhất
	weighted := decimal.NewFromInt(totalCost).Div(decimal.NewFromInt(quantity))

	return DepletionResult{
		Allocations:      allocations,
		WeightedUnitCost: weighted,
		TotalCost:        totalCost,
	}, nil
}

// Restore hoàn kho theo allocation của một phiên xuất trước đó.
// Trả về ErrExceedsOriginal nếu hoàn vượt quá original quantity của lô.
func (s *DepletionService) Restore(ctx context.Context, productID, warehouse string, allocations []models.LotAllocation) error {
	resolved := models.ResolveWarehouseKey(warehouse)
	if resolved == "" {
		return common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Kho không hợp lệ: %s", warehouse), common.StatusBadRequest, nil)
	}

	key := stockKey(productID, resolved)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	for _, alloc := range allocations {
		if err := s.lots.AdjustRemaining(ctx, alloc.LotID, alloc.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// rollback hoàn lại các allocation đã trừ trong một phiên Deplete thất bại.
// Best-effort: lỗi hoàn kho chỉ được log vì lỗi gốc mới là lỗi trả về.
func (s *DepletionService) rollback(ctx context.Context, allocations []models.LotAllocation) {
	log := logger.GetAppLogger()
	for _, alloc := range allocations {
		if err := s.lots.AdjustRemaining(ctx, alloc.LotID, alloc.Quantity); err != nil {
			log.WithError(err).WithField("lot_id", alloc.LotID).
				Error("Không thể hoàn kho khi rollback phiên xuất")
		}
	}
}
