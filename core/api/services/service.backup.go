package services

import (
	"context"

	"github.com/quylang88/tini-store/core/common"
	"github.com/quylang88/tini-store/core/logger"
	"github.com/quylang88/tini-store/core/persistence"
)

// BackupService export/import toàn bộ sổ cái qua Snapshot/Restore của
// persistence gateway. Import thay thế toàn bộ dữ liệu hiện có.
type BackupService struct {
	store persistence.Store
}

// NewBackupServiceWithStore tạo BackupService trên một store cụ thể
func NewBackupServiceWithStore(store persistence.Store) *BackupService {
	return &BackupService{store: store}
}

// Export trả về snapshot JSON của toàn bộ store
func (s *BackupService) Export(ctx context.Context) ([]byte, error) {
	blob, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	logger.GetAppLogger().WithField("bytes", len(blob)).Info("Đã export backup")
	return blob, nil
}

// Import khôi phục store từ một snapshot, xóa toàn bộ dữ liệu hiện có.
// Blob sai format hoặc sai version trả về ErrInvalidFormat.
func (s *BackupService) Import(ctx context.Context, blob []byte) error {
	if len(blob) == 0 {
		return common.ErrInvalidFormat
	}
	if err := s.store.Restore(ctx, blob); err != nil {
		return err
	}
	logger.GetAppLogger().WithField("bytes", len(blob)).Info("Đã import backup")
	return nil
}
