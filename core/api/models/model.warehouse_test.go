package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestResolveWarehouseKey(t *testing.T) {
	cases := []struct {
		input, want string
	}{
		{"vinhPhuc", "vinhPhuc"},
		{"lamDong", "lamDong"},
		{"daLat", "lamDong"}, // Key cũ phải map về key hiện hành
		{"", ""},
		{"khoLạ", ""},
	}

	for _, tc := range cases {
		if got := ResolveWarehouseKey(tc.input); got != tc.want {
			t.Errorf("ResolveWarehouseKey(%q) = %q, muốn %q", tc.input, got, tc.want)
		}
	}
}

func TestDefaultWarehouse(t *testing.T) {
	if got := DefaultWarehouse().Key; got != "vinhPhuc" {
		t.Errorf("DefaultWarehouse().Key = %q, muốn vinhPhuc", got)
	}
}

func TestSetDefaultWarehouse(t *testing.T) {
	original := DefaultWarehouse().Key
	defer SetDefaultWarehouse(original)

	if !SetDefaultWarehouse("lamDong") {
		t.Fatal("SetDefaultWarehouse(lamDong) phải thành công")
	}
	if got := DefaultWarehouse().Key; got != "lamDong" {
		t.Errorf("DefaultWarehouse().Key sau khi đổi = %q, muốn lamDong", got)
	}

	// Key legacy cũng đổi được, resolve về key hiện hành
	if !SetDefaultWarehouse("daLat") {
		t.Fatal("SetDefaultWarehouse(daLat) phải thành công qua legacy key")
	}
	if got := DefaultWarehouse().Key; got != "lamDong" {
		t.Errorf("DefaultWarehouse().Key qua legacy key = %q, muốn lamDong", got)
	}

	// Key lạ: từ chối và giữ nguyên mặc định hiện tại
	if SetDefaultWarehouse("khoLạ") {
		t.Error("SetDefaultWarehouse với key lạ phải trả về false")
	}
	if got := DefaultWarehouse().Key; got != "lamDong" {
		t.Errorf("Mặc định phải giữ nguyên sau key lạ, = %q", got)
	}
}

func TestComputeUnitCost(t *testing.T) {
	// Không có shipping: chỉ giá gốc
	if got := ComputeUnitCost(100000, nil); got != 100000 {
		t.Errorf("ComputeUnitCost không shipping = %d, muốn 100000", got)
	}

	// Có phí ship per-unit
	shipping := &ShippingMeta{FeeVnd: 5000}
	if got := ComputeUnitCost(100000, shipping); got != 105000 {
		t.Errorf("ComputeUnitCost có phí ship = %d, muốn 105000", got)
	}

	// Nhập hàng JPY: giá gốc quy đổi từ JPY, bỏ qua baseCostVnd
	jpy := &ShippingMeta{
		CostJpy:      decimal.NewFromInt(500),
		ExchangeRate: decimal.NewFromFloat(170.5),
		FeeVnd:       3000,
	}
	// 500 * 170.5 = 85250, + phí ship 3000
	if got := ComputeUnitCost(999999, jpy); got != 88250 {
		t.Errorf("ComputeUnitCost nhập JPY = %d, muốn 88250", got)
	}
}

func TestMillis_UnmarshalFlexible(t *testing.T) {
	var m Millis

	if err := m.UnmarshalJSON([]byte(`1735689600000`)); err != nil {
		t.Fatalf("Unmarshal số trả về lỗi: %v", err)
	}
	if m != 1735689600000 {
		t.Errorf("Unmarshal số = %d, muốn 1735689600000", m)
	}

	if err := m.UnmarshalJSON([]byte(`"2025-01-01T00:00:00Z"`)); err != nil {
		t.Fatalf("Unmarshal chuỗi ISO trả về lỗi: %v", err)
	}
	if m != 1735689600000 {
		t.Errorf("Unmarshal chuỗi ISO = %d, muốn 1735689600000", m)
	}
}
