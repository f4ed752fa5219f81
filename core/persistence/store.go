// Package persistence cung cấp persistence gateway: một kho document bền vững
// đánh địa chỉ theo key có namespace (products/, lots/, orders/, settings/).
// Mọi component của ledger đọc/ghi qua interface Store; backup export/import
// đi qua cặp Snapshot/Restore.
package persistence

import (
	"context"
	"strings"
)

// Document là một bản ghi JSON-compatible (string/number/bool/array/object)
type Document = map[string]interface{}

// Các namespace của key trong store
const (
	NamespaceProducts = "products"
	NamespaceLots     = "lots"
	NamespaceOrders   = "orders"
	NamespaceSettings = "settings"
)

// Store là contract của persistence gateway.
// Key có dạng "<namespace>/<id>", ví dụ "lots/a1b2c3".
type Store interface {
	// Get trả về document theo key, common.ErrNotFound nếu không tồn tại
	Get(ctx context.Context, key string) (Document, error)

	// Put ghi (tạo mới hoặc ghi đè) document theo key
	Put(ctx context.Context, key string, doc Document) error

	// Delete xóa document theo key. Xóa key không tồn tại không phải lỗi.
	Delete(ctx context.Context, key string) error

	// ListAll trả về tất cả documents có key bắt đầu bằng prefix
	// (thứ tự không đảm bảo - caller tự sắp xếp theo field nghiệp vụ)
	ListAll(ctx context.Context, prefix string) ([]Document, error)

	// Snapshot export toàn bộ store thành một blob JSON (dùng cho backup)
	Snapshot(ctx context.Context) ([]byte, error)

	// Restore thay thế toàn bộ nội dung store bằng dữ liệu từ blob
	Restore(ctx context.Context, blob []byte) error
}

// snapshotBlob là format serialize của Snapshot/Restore
type snapshotBlob struct {
	Version    int                 `json:"version"`
	ExportedAt int64               `json:"exportedAt"` // epoch milliseconds
	Documents  map[string]Document `json:"documents"`  // key -> document
}

const snapshotVersion = 1

// Key ghép namespace và id thành key đầy đủ
func Key(namespace, id string) string {
	return namespace + "/" + id
}

// Prefix trả về prefix dùng cho ListAll của một namespace
func Prefix(namespace string) string {
	return namespace + "/"
}

// namespaceOf tách namespace từ key ("lots/abc" -> "lots")
func namespaceOf(key string) string {
	if i := strings.IndexByte(key, '/'); i >= 0 {
		return key[:i]
	}
	return key
}
