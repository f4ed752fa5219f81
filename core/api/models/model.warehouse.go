package models

// WarehouseInfo mô tả một kho vật lý
type WarehouseInfo struct {
	Key        string   `json:"key"`                  // Key định danh kho (dùng trong lot/order)
	Label      string   `json:"label"`                // Tên hiển thị đầy đủ
	ShortLabel string   `json:"shortLabel"`           // Tên hiển thị rút gọn
	IsDefault  bool     `json:"isDefault,omitempty"`  // Kho mặc định khi nhập không ghi rõ
	LegacyKeys []string `json:"legacyKeys,omitempty"` // Các key cũ được map về key hiện tại
}

// Warehouses là danh sách kho của cửa hàng.
// Key cũ (ví dụ "daLat") vẫn được chấp nhận khi đọc dữ liệu lịch sử
// thông qua LegacyKeys.
var Warehouses = []WarehouseInfo{
	{
		Key:        "vinhPhuc",
		Label:      "Vĩnh Phúc",
		ShortLabel: "Kho VP",
		IsDefault:  true,
	},
	{
		Key:        "lamDong",
		Label:      "Lâm Đồng",
		ShortLabel: "Kho LĐ",
		LegacyKeys: []string{"daLat"},
	},
}

// DefaultWarehouse trả về kho mặc định
func DefaultWarehouse() WarehouseInfo {
	for _, w := range Warehouses {
		if w.IsDefault {
			return w
		}
	}
	return Warehouses[0]
}

// SetDefaultWarehouse đổi kho mặc định theo key (hiện hành hoặc legacy),
// dùng khi nạp cấu hình DEFAULT_WAREHOUSE lúc khởi động.
// Trả về false và giữ nguyên mặc định cũ nếu key không thuộc kho nào.
func SetDefaultWarehouse(key string) bool {
	resolved := ResolveWarehouseKey(key)
	if resolved == "" {
		return false
	}
	for i := range Warehouses {
		Warehouses[i].IsDefault = Warehouses[i].Key == resolved
	}
	return true
}

// AllWarehouseKeys trả về danh sách key hiện hành của tất cả các kho
func AllWarehouseKeys() []string {
	keys := make([]string, 0, len(Warehouses))
	for _, w := range Warehouses {
		keys = append(keys, w.Key)
	}
	return keys
}

// ResolveWarehouseKey map một key (hiện hành hoặc legacy) về key chính.
// Trả về chuỗi rỗng nếu key không thuộc kho nào.
func ResolveWarehouseKey(key string) string {
	if key == "" {
		return ""
	}
	for _, w := range Warehouses {
		if w.Key == key {
			return w.Key
		}
		for _, legacy := range w.LegacyKeys {
			if legacy == key {
				return w.Key
			}
		}
	}
	return ""
}

// IsValidWarehouse cho biết key (hiện hành hoặc legacy) có hợp lệ không
func IsValidWarehouse(key string) bool {
	return ResolveWarehouseKey(key) != ""
}

// WarehouseLabel trả về tên hiển thị của kho theo key (hoặc chính key nếu lạ)
func WarehouseLabel(key string) string {
	resolved := ResolveWarehouseKey(key)
	for _, w := range Warehouses {
		if w.Key == resolved {
			return w.Label
		}
	}
	return key
}
