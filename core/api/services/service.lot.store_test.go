package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/quylang88/tini-store/core/api/models"
	"github.com/quylang88/tini-store/core/common"
)

func TestCreateLot_InvalidQuantity(t *testing.T) {
	ledger := newTestLedger()
	product := mustCreateProduct(t, ledger, "Trà sữa", 50000)

	for _, qty := range []int64{0, -3} {
		_, err := ledger.Lots.CreateLot(context.Background(), CreateLotInput{
			ProductID:   product.ID,
			Quantity:    qty,
			BaseCostVnd: 30000,
		})
		if !errors.Is(err, common.ErrInvalidQuantity) {
			t.Errorf("CreateLot quantity=%d phải trả về ErrInvalidQuantity, nhận được: %v", qty, err)
		}
	}
}

func TestCreateLot_MissingProduct(t *testing.T) {
	ledger := newTestLedger()

	_, err := ledger.Lots.CreateLot(context.Background(), CreateLotInput{
		ProductID:   "không-tồn-tại",
		Quantity:    5,
		BaseCostVnd: 30000,
	})
	if !common.IsNotFound(err) {
		t.Errorf("CreateLot cho sản phẩm không tồn tại phải trả về ErrNotFound, nhận được: %v", err)
	}
}

func TestCreateLot_DefaultWarehouseAndLegacyKey(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger()
	product := mustCreateProduct(t, ledger, "Trà sữa", 50000)

	// Kho rỗng = kho mặc định
	lot, err := ledger.Lots.CreateLot(ctx, CreateLotInput{
		ProductID:   product.ID,
		Quantity:    5,
		BaseCostVnd: 30000,
	})
	if err != nil {
		t.Fatalf("CreateLot kho rỗng trả về lỗi: %v", err)
	}
	if lot.Warehouse != "vinhPhuc" {
		t.Errorf("Kho rỗng phải resolve về vinhPhuc, nhận được: %s", lot.Warehouse)
	}

	// Key cũ phải resolve về key hiện hành
	legacy, err := ledger.Lots.CreateLot(ctx, CreateLotInput{
		ProductID:   product.ID,
		Warehouse:   "daLat",
		Quantity:    5,
		BaseCostVnd: 30000,
	})
	if err != nil {
		t.Fatalf("CreateLot với legacy key trả về lỗi: %v", err)
	}
	if legacy.Warehouse != "lamDong" {
		t.Errorf("Legacy key daLat phải resolve về lamDong, nhận được: %s", legacy.Warehouse)
	}
}

func TestCreateLot_UnitCostWithShipping(t *testing.T) {
	ledger := newTestLedger()
	product := mustCreateProduct(t, ledger, "Bánh mochi", 80000)

	lot, err := ledger.Lots.CreateLot(context.Background(), CreateLotInput{
		ProductID: product.ID,
		Quantity:  10,
		Shipping: &models.ShippingMeta{
			Method:       "air",
			FeeVnd:       4000,
			CostJpy:      decimal.NewFromInt(300),
			ExchangeRate: decimal.NewFromInt(170),
		},
	})
	if err != nil {
		t.Fatalf("CreateLot trả về lỗi: %v", err)
	}
	// 300 JPY * 170 = 51000 VND + 4000 phí ship
	if lot.UnitCost != 55000 {
		t.Errorf("UnitCost = %d, muốn 55000", lot.UnitCost)
	}
	if lot.RemainingQuantity != lot.OriginalQuantity {
		t.Errorf("Lô mới phải có remaining = original, nhận được %d / %d",
			lot.RemainingQuantity, lot.OriginalQuantity)
	}
}

func TestCreateLot_SnapshotGiaVaHanSuDung(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger()
	product := mustCreateProduct(t, ledger, "Bánh mochi", 80000)

	lot, err := ledger.Lots.CreateLot(ctx, CreateLotInput{
		ProductID:   product.ID,
		Quantity:    10,
		BaseCostVnd: 40000,
		ExpiryDate:  1767225600000, // 2026-01-01
	})
	if err != nil {
		t.Fatalf("CreateLot trả về lỗi: %v", err)
	}
	if lot.PriceAtPurchase != 80000 {
		t.Errorf("PriceAtPurchase = %d, muốn 80000 (giá bán tại thời điểm nhập)", lot.PriceAtPurchase)
	}
	if lot.ExpiryDate != 1767225600000 {
		t.Errorf("ExpiryDate = %d, muốn 1767225600000", lot.ExpiryDate)
	}

	// Sản phẩm đổi giá: snapshot trên lô cũ phải giữ nguyên
	newPrice := int64(90000)
	if _, err := ledger.Products.UpdateProduct(ctx, product.ID, UpdateProductInput{Price: &newPrice}); err != nil {
		t.Fatalf("UpdateProduct trả về lỗi: %v", err)
	}
	got, err := ledger.Lots.FindByID(ctx, lot.ID)
	if err != nil {
		t.Fatalf("FindByID trả về lỗi: %v", err)
	}
	if got.PriceAtPurchase != 80000 {
		t.Errorf("PriceAtPurchase sau khi sản phẩm đổi giá = %d, muốn 80000", got.PriceAtPurchase)
	}
}

func TestGetLots_FIFOOrder(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger()
	product := mustCreateProduct(t, ledger, "Trà sữa", 50000)

	// Nhập không theo thứ tự thời gian
	l2 := mustCreateLot(t, ledger, product.ID, "vinhPhuc", 5, 120, 2000)
	l1 := mustCreateLot(t, ledger, product.ID, "vinhPhuc", 10, 100, 1000)
	l3 := mustCreateLot(t, ledger, product.ID, "vinhPhuc", 3, 150, 3000)

	lots, err := ledger.Lots.GetLots(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetLots trả về lỗi: %v", err)
	}
	if len(lots) != 3 {
		t.Fatalf("GetLots trả về %d lô, muốn 3", len(lots))
	}

	wantOrder := []string{l1.ID, l2.ID, l3.ID}
	for i, want := range wantOrder {
		if lots[i].ID != want {
			t.Errorf("Lô thứ %d có ID %s, muốn %s (phải theo createdAt tăng dần)", i, lots[i].ID, want)
		}
	}
}

func TestGetLots_SeqBreaksCreatedAtTie(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger()
	product := mustCreateProduct(t, ledger, "Trà sữa", 50000)

	// Hai lô cùng createdAt: thứ tự nhập (seq) quyết định
	first := mustCreateLot(t, ledger, product.ID, "vinhPhuc", 5, 100, 1000)
	second := mustCreateLot(t, ledger, product.ID, "vinhPhuc", 5, 120, 1000)

	lots, err := ledger.Lots.GetLots(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetLots trả về lỗi: %v", err)
	}
	if lots[0].ID != first.ID || lots[1].ID != second.ID {
		t.Errorf("Hai lô trùng createdAt phải xếp theo thứ tự nhập: nhận được [%s, %s], muốn [%s, %s]",
			lots[0].ID, lots[1].ID, first.ID, second.ID)
	}
}

func TestGetLotsByWarehouse(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger()
	product := mustCreateProduct(t, ledger, "Trà sữa", 50000)

	mustCreateLot(t, ledger, product.ID, "vinhPhuc", 10, 100, 1000)
	mustCreateLot(t, ledger, product.ID, "lamDong", 5, 120, 2000)

	vp, err := ledger.Lots.GetLotsByWarehouse(ctx, product.ID, "vinhPhuc")
	if err != nil {
		t.Fatalf("GetLotsByWarehouse trả về lỗi: %v", err)
	}
	if len(vp) != 1 || vp[0].Warehouse != "vinhPhuc" {
		t.Errorf("GetLotsByWarehouse(vinhPhuc) trả về %d lô, muốn 1 lô của vinhPhuc", len(vp))
	}

	// Truy vấn bằng legacy key vẫn thấy lô của kho hiện hành
	ld, err := ledger.Lots.GetLotsByWarehouse(ctx, product.ID, "daLat")
	if err != nil {
		t.Fatalf("GetLotsByWarehouse với legacy key trả về lỗi: %v", err)
	}
	if len(ld) != 1 || ld[0].Warehouse != "lamDong" {
		t.Errorf("GetLotsByWarehouse(daLat) trả về %d lô, muốn 1 lô của lamDong", len(ld))
	}
}

func TestAdjustRemaining_Bounds(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger()
	product := mustCreateProduct(t, ledger, "Trà sữa", 50000)
	lot := mustCreateLot(t, ledger, product.ID, "vinhPhuc", 10, 100, 1000)

	// Trừ quá remaining
	if err := ledger.Lots.AdjustRemaining(ctx, lot.ID, -11); !errors.Is(err, common.ErrInsufficientStock) {
		t.Errorf("Trừ quá remaining phải trả về ErrInsufficientStock, nhận được: %v", err)
	}

	// Hoàn quá original
	if err := ledger.Lots.AdjustRemaining(ctx, lot.ID, 1); !errors.Is(err, common.ErrExceedsOriginal) {
		t.Errorf("Hoàn vượt original phải trả về ErrExceedsOriginal, nhận được: %v", err)
	}

	// Điều chỉnh hợp lệ
	if err := ledger.Lots.AdjustRemaining(ctx, lot.ID, -4); err != nil {
		t.Fatalf("AdjustRemaining hợp lệ trả về lỗi: %v", err)
	}
	got, _ := ledger.Lots.FindByID(ctx, lot.ID)
	if got.RemainingQuantity != 6 {
		t.Errorf("Remaining sau khi trừ 4 = %d, muốn 6", got.RemainingQuantity)
	}
}
