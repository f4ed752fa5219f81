package services

import (
	"context"
	"fmt"

	"github.com/quylang88/tini-store/core/common"
	"github.com/quylang88/tini-store/core/global"
	"github.com/quylang88/tini-store/core/persistence"
)

// Ledger là facade gom toàn bộ services của sổ cái: catalog sản phẩm,
// lô hàng, tồn kho, đơn hàng, cấu hình và backup trên cùng một store.
type Ledger struct {
	Products  *ProductService
	Lots      *LotService
	Stock     *StockService
	Depletion *DepletionService
	Orders    *OrderService
	Settings  *SettingsService
	Backup    *BackupService
}

// NewLedgerWithStore dựng Ledger trên một store cụ thể.
// Stock và Depletion dùng chung một bộ khóa theo cặp (sản phẩm, kho).
func NewLedgerWithStore(store persistence.Store) *Ledger {
	products := NewProductServiceWithStore(store)
	lots := NewLotServiceWithStore(store, products)
	locks := NewKeyedRWMutex()
	stock := NewStockService(lots, locks)
	depletion := NewDepletionService(lots, locks)
	orders := NewOrderServiceWithStore(store, products, depletion)

	return &Ledger{
		Products:  products,
		Lots:      lots,
		Stock:     stock,
		Depletion: depletion,
		Orders:    orders,
		Settings:  NewSettingsServiceWithStore(store),
		Backup:    NewBackupServiceWithStore(store),
	}
}

// NewLedger dựng Ledger trên store mặc định đã đăng ký trong registry
func NewLedger() (*Ledger, error) {
	store, ok := global.RegistryStores.Get(global.StoreNameDefault)
	if !ok {
		return nil, common.WrapError(common.ErrCodeInternalServer,
			fmt.Sprintf("Store %s chưa được khởi tạo", global.StoreNameDefault),
			common.StatusInternalServerError, nil)
	}
	return NewLedgerWithStore(store), nil
}

// DeleteProduct xóa sản phẩm khỏi catalog. Nếu sản phẩm vẫn còn lô
// có remaining > 0 thì từ chối với ErrProductHasStock, trừ khi caller
// truyền disposeLots để thanh lý tường minh: remaining của mọi lô còn
// hàng được đưa về 0 trước, lô vẫn giữ lại làm dấu vết nhập hàng.
func (l *Ledger) DeleteProduct(ctx context.Context, productID string, disposeLots bool) error {
	if _, err := l.Products.FindByID(ctx, productID); err != nil {
		return err
	}

	lots, err := l.Lots.GetLots(ctx, productID)
	if err != nil {
		return err
	}
	hasStock := false
	for _, lot := range lots {
		if lot.RemainingQuantity > 0 {
			hasStock = true
			break
		}
	}
	if hasStock && !disposeLots {
		return common.ErrProductHasStock
	}

	if hasStock {
		if err := l.Lots.ZeroOutRemaining(ctx, productID); err != nil {
			return err
		}
	}
	return l.Products.DeleteProduct(ctx, productID)
}

// ImportBackup khôi phục toàn bộ store từ một snapshot rồi vô hiệu
// cache seq của lô, vì dữ liệu bên dưới các service đã bị thay thế.
func (l *Ledger) ImportBackup(ctx context.Context, blob []byte) error {
	if err := l.Backup.Import(ctx, blob); err != nil {
		return err
	}
	l.Lots.InvalidateSeqCache()
	return nil
}
