package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/quylang88/tini-store/core/api/models"
	"github.com/quylang88/tini-store/core/common"
)

func TestDeplete_FIFOWeightedCost(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger()
	product := mustCreateProduct(t, ledger, "Trà sữa", 50000)

	// Lô 1: 10 đơn vị giá 100; Lô 2: 5 đơn vị giá 120
	l1 := mustCreateLot(t, ledger, product.ID, "vinhPhuc", 10, 100, 1000)
	l2 := mustCreateLot(t, ledger, product.ID, "vinhPhuc", 5, 120, 2000)

	result, err := ledger.Depletion.Deplete(ctx, product.ID, "vinhPhuc", 12)
	if err != nil {
		t.Fatalf("Deplete trả về lỗi: %v", err)
	}

	// Ăn hết lô 1 (10@100) rồi sang lô 2 (2@120): tổng 1240
	if result.TotalCost != 1240 {
		t.Errorf("TotalCost = %d, muốn 1240", result.TotalCost)
	}
	wantWeighted := decimal.NewFromInt(1240).Div(decimal.NewFromInt(12))
	if !result.WeightedUnitCost.Equal(wantWeighted) {
		t.Errorf("WeightedUnitCost = %s, muốn %s", result.WeightedUnitCost, wantWeighted)
	}

	if len(result.Allocations) != 2 {
		t.Fatalf("Allocations có %d phần, muốn 2", len(result.Allocations))
	}
	if result.Allocations[0].LotID != l1.ID || result.Allocations[0].Quantity != 10 {
		t.Errorf("Allocation đầu phải là 10 đơn vị từ lô cũ nhất, nhận được %+v", result.Allocations[0])
	}
	if result.Allocations[1].LotID != l2.ID || result.Allocations[1].Quantity != 2 {
		t.Errorf("Allocation sau phải là 2 đơn vị từ lô kế, nhận được %+v", result.Allocations[1])
	}

	// Remaining sau depletion: lô 1 hết, lô 2 còn 3
	got1, _ := ledger.Lots.FindByID(ctx, l1.ID)
	got2, _ := ledger.Lots.FindByID(ctx, l2.ID)
	if got1.RemainingQuantity != 0 {
		t.Errorf("Lô 1 còn %d, muốn 0", got1.RemainingQuantity)
	}
	if got2.RemainingQuantity != 3 {
		t.Errorf("Lô 2 còn %d, muốn 3", got2.RemainingQuantity)
	}
	// Lô bán hết vẫn tồn tại
	if !got1.IsSoldOut() {
		t.Error("Lô 1 phải ở trạng thái sold out")
	}
}

func TestDeplete_InsufficientStock_NoMutation(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger()
	product := mustCreateProduct(t, ledger, "Trà sữa", 50000)
	lot := mustCreateLot(t, ledger, product.ID, "vinhPhuc", 5, 100, 1000)

	_, err := ledger.Depletion.Deplete(ctx, product.ID, "vinhPhuc", 6)
	if !errors.Is(err, common.ErrInsufficientStock) {
		t.Fatalf("Deplete quá tồn phải trả về ErrInsufficientStock, nhận được: %v", err)
	}

	// Không lô nào bị thay đổi
	got, _ := ledger.Lots.FindByID(ctx, lot.ID)
	if got.RemainingQuantity != 5 {
		t.Errorf("Remaining sau deplete thất bại = %d, muốn 5 (không được thay đổi)", got.RemainingQuantity)
	}
}

func TestDeplete_InvalidQuantity(t *testing.T) {
	ledger := newTestLedger()
	product := mustCreateProduct(t, ledger, "Trà sữa", 50000)

	_, err := ledger.Depletion.Deplete(context.Background(), product.ID, "vinhPhuc", 0)
	if !errors.Is(err, common.ErrInvalidQuantity) {
		t.Errorf("Deplete quantity=0 phải trả về ErrInvalidQuantity, nhận được: %v", err)
	}
}

func TestDeplete_WarehouseIsolation(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger()
	product := mustCreateProduct(t, ledger, "Trà sữa", 50000)

	mustCreateLot(t, ledger, product.ID, "vinhPhuc", 5, 100, 1000)
	other := mustCreateLot(t, ledger, product.ID, "lamDong", 5, 100, 1000)

	// Tồn lamDong không được bù cho vinhPhuc
	_, err := ledger.Depletion.Deplete(ctx, product.ID, "vinhPhuc", 8)
	if !errors.Is(err, common.ErrInsufficientStock) {
		t.Fatalf("Deplete vượt tồn của kho phải thất bại dù kho khác còn hàng, nhận được: %v", err)
	}

	got, _ := ledger.Lots.FindByID(ctx, other.ID)
	if got.RemainingQuantity != 5 {
		t.Errorf("Lô kho khác bị động chạm: remaining = %d, muốn 5", got.RemainingQuantity)
	}
}

func TestRestore_Conservation(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger()
	product := mustCreateProduct(t, ledger, "Trà sữa", 50000)

	mustCreateLot(t, ledger, product.ID, "vinhPhuc", 10, 100, 1000)
	mustCreateLot(t, ledger, product.ID, "vinhPhuc", 5, 120, 2000)

	result, err := ledger.Depletion.Deplete(ctx, product.ID, "vinhPhuc", 12)
	if err != nil {
		t.Fatalf("Deplete trả về lỗi: %v", err)
	}

	if err := ledger.Depletion.Restore(ctx, product.ID, "vinhPhuc", result.Allocations); err != nil {
		t.Fatalf("Restore trả về lỗi: %v", err)
	}

	// Tồn kho phải về đúng 15 như ban đầu
	available, err := ledger.Stock.AvailableQuantity(ctx, product.ID, "vinhPhuc")
	if err != nil {
		t.Fatalf("AvailableQuantity trả về lỗi: %v", err)
	}
	if available != 15 {
		t.Errorf("Tồn kho sau deplete+restore = %d, muốn 15", available)
	}
}

func TestRestore_ExceedsOriginal(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger()
	product := mustCreateProduct(t, ledger, "Trà sữa", 50000)
	lot := mustCreateLot(t, ledger, product.ID, "vinhPhuc", 5, 100, 1000)

	// Hoàn kho mà chưa từng xuất: vượt original
	err := ledger.Depletion.Restore(ctx, product.ID, "vinhPhuc", []models.LotAllocation{
		{LotID: lot.ID, Quantity: 1, UnitCost: 100},
	})
	if !errors.Is(err, common.ErrExceedsOriginal) {
		t.Errorf("Hoàn kho vượt original phải trả về ErrExceedsOriginal, nhận được: %v", err)
	}
}

func TestDeplete_ConcurrentNoOverdraw(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger()
	product := mustCreateProduct(t, ledger, "Trà sữa", 50000)
	mustCreateLot(t, ledger, product.ID, "vinhPhuc", 10, 100, 1000)

	// 20 phiên xuất 1 đơn vị chạy song song trên tồn 10:
	// đúng 10 phiên thành công, không bao giờ âm kho
	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ledger.Depletion.Deplete(ctx, product.ID, "vinhPhuc", 1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 10 {
		t.Errorf("Số phiên xuất thành công = %d, muốn đúng 10", succeeded)
	}

	available, err := ledger.Stock.AvailableQuantity(ctx, product.ID, "vinhPhuc")
	if err != nil {
		t.Fatalf("AvailableQuantity trả về lỗi: %v", err)
	}
	if available != 0 {
		t.Errorf("Tồn kho sau các phiên song song = %d, muốn 0", available)
	}
}
