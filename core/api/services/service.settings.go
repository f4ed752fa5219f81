package services

import (
	"context"

	"github.com/quylang88/tini-store/core/common"
	"github.com/quylang88/tini-store/core/persistence"
)

// settingsDocID là ID cố định của document cấu hình cửa hàng
const settingsDocID = "main"

// SettingsService lưu cấu hình cửa hàng dưới một document duy nhất.
// Cấu hình là schemaless: client tự định nghĩa các trường.
type SettingsService struct {
	store persistence.Store
}

// NewSettingsServiceWithStore tạo SettingsService trên một store cụ thể
func NewSettingsServiceWithStore(store persistence.Store) *SettingsService {
	return &SettingsService{store: store}
}

// GetSettings trả về cấu hình hiện hành, map rỗng nếu chưa từng lưu
func (s *SettingsService) GetSettings(ctx context.Context) (persistence.Document, error) {
	doc, err := s.store.Get(ctx, persistence.Key(persistence.NamespaceSettings, settingsDocID))
	if err != nil {
		if common.IsNotFound(err) {
			return persistence.Document{}, nil
		}
		return nil, err
	}
	return doc, nil
}

// SaveSettings ghi đè toàn bộ cấu hình cửa hàng
func (s *SettingsService) SaveSettings(ctx context.Context, doc persistence.Document) error {
	if doc == nil {
		return common.ErrInvalidInput
	}
	return s.store.Put(ctx, persistence.Key(persistence.NamespaceSettings, settingsDocID), doc)
}
