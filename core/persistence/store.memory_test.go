package persistence

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/quylang88/tini-store/core/common"
)

func TestMemoryStore_PutGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	key := Key(NamespaceProducts, "p1")
	doc := Document{"id": "p1", "name": "Trà sữa"}

	if err := store.Put(ctx, key, doc); err != nil {
		t.Fatalf("Put trả về lỗi: %v", err)
	}

	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get trả về lỗi: %v", err)
	}
	if got["name"] != "Trà sữa" {
		t.Errorf("Get trả về name = %v, muốn Trà sữa", got["name"])
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), Key(NamespaceProducts, "không-tồn-tại"))
	if !common.IsNotFound(err) {
		t.Errorf("Get key không tồn tại phải trả về ErrNotFound, nhận được: %v", err)
	}
}

func TestMemoryStore_DeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	key := Key(NamespaceOrders, "o1")
	if err := store.Put(ctx, key, Document{"id": "o1"}); err != nil {
		t.Fatalf("Put trả về lỗi: %v", err)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete trả về lỗi: %v", err)
	}
	// Xóa key không tồn tại không phải lỗi
	if err := store.Delete(ctx, key); err != nil {
		t.Errorf("Delete lần hai phải idempotent, nhận được lỗi: %v", err)
	}
	if _, err := store.Get(ctx, key); !common.IsNotFound(err) {
		t.Errorf("Get sau Delete phải trả về ErrNotFound, nhận được: %v", err)
	}
}

func TestMemoryStore_ListAllByPrefix(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.Put(ctx, Key(NamespaceLots, "l1"), Document{"id": "l1"})
	store.Put(ctx, Key(NamespaceLots, "l2"), Document{"id": "l2"})
	store.Put(ctx, Key(NamespaceOrders, "o1"), Document{"id": "o1"})

	lots, err := store.ListAll(ctx, Prefix(NamespaceLots))
	if err != nil {
		t.Fatalf("ListAll trả về lỗi: %v", err)
	}
	if len(lots) != 2 {
		t.Errorf("ListAll prefix lots/ trả về %d documents, muốn 2", len(lots))
	}
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	key := Key(NamespaceSettings, "main")
	store.Put(ctx, key, Document{"theme": "light"})

	first, _ := store.Get(ctx, key)
	first["theme"] = "dark" // Sửa bản copy không được ảnh hưởng store

	second, _ := store.Get(ctx, key)
	if second["theme"] != "light" {
		t.Errorf("Sửa document trả về từ Get làm thay đổi store: theme = %v", second["theme"])
	}
}

func TestMemoryStore_SnapshotRestore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.Put(ctx, Key(NamespaceProducts, "p1"), Document{"id": "p1", "name": "Trà sữa"})
	store.Put(ctx, Key(NamespaceLots, "l1"), Document{"id": "l1", "remainingQuantity": float64(5)})
	store.Put(ctx, Key(NamespaceSettings, "main"), Document{"theme": "dark"})

	blob, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot trả về lỗi: %v", err)
	}

	// Restore vào store mới, nội dung phải giống hệt
	restored := NewMemoryStore()
	restored.Put(ctx, Key(NamespaceOrders, "sẽ-bị-xóa"), Document{"id": "x"})
	if err := restored.Restore(ctx, blob); err != nil {
		t.Fatalf("Restore trả về lỗi: %v", err)
	}

	if _, err := restored.Get(ctx, Key(NamespaceOrders, "sẽ-bị-xóa")); !common.IsNotFound(err) {
		t.Error("Restore phải thay thế toàn bộ dữ liệu hiện có")
	}

	product, err := restored.Get(ctx, Key(NamespaceProducts, "p1"))
	if err != nil {
		t.Fatalf("Get sau Restore trả về lỗi: %v", err)
	}
	if product["name"] != "Trà sữa" {
		t.Errorf("Document sau round trip có name = %v, muốn Trà sữa", product["name"])
	}

	settings, err := restored.Get(ctx, Key(NamespaceSettings, "main"))
	if err != nil {
		t.Fatalf("Get settings sau Restore trả về lỗi: %v", err)
	}
	if settings["theme"] != "dark" {
		t.Errorf("Settings sau round trip có theme = %v, muốn dark", settings["theme"])
	}
}

func TestMemoryStore_RestoreBadBlob(t *testing.T) {
	store := NewMemoryStore()

	if err := store.Restore(context.Background(), []byte("không phải json")); err == nil {
		t.Error("Restore với blob rác phải trả về lỗi")
	}
}

func TestMemoryStore_RestoreWrongVersion(t *testing.T) {
	store := NewMemoryStore()

	blob, _ := json.Marshal(map[string]interface{}{
		"version":   99,
		"documents": map[string]interface{}{},
	})
	err := store.Restore(context.Background(), blob)
	if err == nil {
		t.Fatal("Restore với version lạ phải trả về lỗi")
	}
}
