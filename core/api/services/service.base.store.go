// Package services chứa nghiệp vụ của ledger: catalog sản phẩm, kho lô hàng,
// tổng hợp tồn kho, engine xuất kho và sổ đơn hàng. Tất cả đọc/ghi dữ liệu
// qua persistence gateway (core/persistence).
package services

import (
	"context"
	"fmt"

	"github.com/quylang88/tini-store/core/common"
	"github.com/quylang88/tini-store/core/persistence"
	"github.com/quylang88/tini-store/core/utility"
)

// BaseServiceStore cung cấp các thao tác CRUD typed trên một namespace
// của persistence gateway.
//
// Type Parameters:
//   - T: Kiểu model (serialize theo json tags)
type BaseServiceStore[T any] struct {
	store     persistence.Store
	namespace string
}

// NewBaseServiceStore tạo mới một BaseServiceStore cho một namespace
func NewBaseServiceStore[T any](store persistence.Store, namespace string) *BaseServiceStore[T] {
	return &BaseServiceStore[T]{
		store:     store,
		namespace: namespace,
	}
}

// Store trả về persistence store bên dưới (dùng bởi service cần thao tác thô)
func (s *BaseServiceStore[T]) Store() persistence.Store {
	return s.store
}

// FindByID tìm model theo id, trả về common.ErrNotFound nếu không tồn tại
func (s *BaseServiceStore[T]) FindByID(ctx context.Context, id string) (T, error) {
	var zero T
	doc, err := s.store.Get(ctx, persistence.Key(s.namespace, id))
	if err != nil {
		return zero, err
	}

	var model T
	if err := utility.FromMap(doc, &model); err != nil {
		return zero, fmt.Errorf("decode %s/%s thất bại: %w", s.namespace, id, common.ErrInvalidFormat)
	}
	return model, nil
}

// Save ghi model theo id (tạo mới hoặc ghi đè)
func (s *BaseServiceStore[T]) Save(ctx context.Context, id string, model T) error {
	doc, err := utility.ToMap(model)
	if err != nil {
		return fmt.Errorf("encode %s/%s thất bại: %w", s.namespace, id, common.ErrInvalidFormat)
	}
	return s.store.Put(ctx, persistence.Key(s.namespace, id), doc)
}

// Delete xóa model theo id
func (s *BaseServiceStore[T]) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, persistence.Key(s.namespace, id))
}

// FindAll trả về tất cả models trong namespace (thứ tự không đảm bảo)
func (s *BaseServiceStore[T]) FindAll(ctx context.Context) ([]T, error) {
	docs, err := s.store.ListAll(ctx, persistence.Prefix(s.namespace))
	if err != nil {
		return nil, err
	}

	models := make([]T, 0, len(docs))
	for _, doc := range docs {
		var model T
		if err := utility.FromMap(doc, &model); err != nil {
			return nil, fmt.Errorf("decode document trong %s thất bại: %w", s.namespace, common.ErrInvalidFormat)
		}
		models = append(models, model)
	}
	return models, nil
}

// Exists kiểm tra model theo id có tồn tại không
func (s *BaseServiceStore[T]) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.store.Get(ctx, persistence.Key(s.namespace, id))
	if err != nil {
		if common.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
