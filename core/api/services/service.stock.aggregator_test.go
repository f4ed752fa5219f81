package services

import (
	"context"
	"testing"
)

func TestAvailableQuantity_SumsLots(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger()
	product := mustCreateProduct(t, ledger, "Trà sữa", 50000)

	mustCreateLot(t, ledger, product.ID, "vinhPhuc", 10, 100, 1000)
	mustCreateLot(t, ledger, product.ID, "vinhPhuc", 5, 120, 2000)
	mustCreateLot(t, ledger, product.ID, "lamDong", 7, 110, 1500)

	vp, err := ledger.Stock.AvailableQuantity(ctx, product.ID, "vinhPhuc")
	if err != nil {
		t.Fatalf("AvailableQuantity trả về lỗi: %v", err)
	}
	if vp != 15 {
		t.Errorf("Tồn vinhPhuc = %d, muốn 15", vp)
	}

	// Legacy key phải cho cùng kết quả với key hiện hành
	ld, err := ledger.Stock.AvailableQuantity(ctx, product.ID, "daLat")
	if err != nil {
		t.Fatalf("AvailableQuantity với legacy key trả về lỗi: %v", err)
	}
	if ld != 7 {
		t.Errorf("Tồn qua legacy key daLat = %d, muốn 7", ld)
	}
}

func TestAvailableQuantity_UnknownWarehouse(t *testing.T) {
	ledger := newTestLedger()
	product := mustCreateProduct(t, ledger, "Trà sữa", 50000)

	if _, err := ledger.Stock.AvailableQuantity(context.Background(), product.ID, "khoLạ"); err == nil {
		t.Error("AvailableQuantity với kho lạ phải trả về lỗi")
	}
}

func TestAvailableByWarehouse(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger()
	product := mustCreateProduct(t, ledger, "Trà sữa", 50000)

	mustCreateLot(t, ledger, product.ID, "vinhPhuc", 10, 100, 1000)
	mustCreateLot(t, ledger, product.ID, "lamDong", 7, 110, 1500)

	byWarehouse, err := ledger.Stock.AvailableByWarehouse(ctx, product.ID)
	if err != nil {
		t.Fatalf("AvailableByWarehouse trả về lỗi: %v", err)
	}
	if byWarehouse["vinhPhuc"] != 10 || byWarehouse["lamDong"] != 7 {
		t.Errorf("AvailableByWarehouse = %v, muốn vinhPhuc=10 lamDong=7", byWarehouse)
	}

	// Sản phẩm chưa có lô: tồn 0 ở mọi kho, không lỗi
	other := mustCreateProduct(t, ledger, "Bánh mochi", 80000)
	empty, err := ledger.Stock.AvailableByWarehouse(ctx, other.ID)
	if err != nil {
		t.Fatalf("AvailableByWarehouse sản phẩm chưa có lô trả về lỗi: %v", err)
	}
	for key, qty := range empty {
		if qty != 0 {
			t.Errorf("Tồn kho %s của sản phẩm chưa có lô = %d, muốn 0", key, qty)
		}
	}
}
