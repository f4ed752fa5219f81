package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/quylang88/tini-store/core/api/models"
	"github.com/quylang88/tini-store/core/common"
	"github.com/quylang88/tini-store/core/persistence"
)

// CreateLotInput là dữ liệu nhập một lô hàng mới
type CreateLotInput struct {
	ProductID   string
	Warehouse   string // Rỗng = kho mặc định; chấp nhận cả legacy key
	Quantity    int64
	BaseCostVnd int64                // Giá gốc 1 đơn vị (VND); bỏ qua nếu shipping có giá JPY
	Shipping    *models.ShippingMeta // Thông tin vận chuyển (tùy chọn)
	CreatedAt   models.Millis        // 0 = thời điểm hiện tại
	ExpiryDate  models.Millis        // Hạn sử dụng (0 = không có)
}

// LotService quản lý các purchase lot: tạo lô (append-only), liệt kê theo
// FIFO và điều chỉnh remaining quantity. Lô không bao giờ bị xóa, kể cả
// khi đã bán hết.
type LotService struct {
	*BaseServiceStore[models.PurchaseLot]
	products *ProductService

	// adjustMu bảo vệ chu trình đọc-sửa-ghi của AdjustRemaining
	adjustMu sync.Mutex

	// seq cấp số thứ tự nhập lô, nạp từ dữ liệu đã có ở lần dùng đầu
	seqMu     sync.Mutex
	seqNext   int64
	seqLoaded bool
}

// NewLotServiceWithStore tạo LotService trên một store cụ thể
func NewLotServiceWithStore(store persistence.Store, products *ProductService) *LotService {
	return &LotService{
		BaseServiceStore: NewBaseServiceStore[models.PurchaseLot](store, persistence.NamespaceLots),
		products:         products,
	}
}

// nextSeq cấp số thứ tự nhập lô kế tiếp.
// Lần gọi đầu sẽ quét dữ liệu hiện có để tiếp nối seq lớn nhất,
// đảm bảo thứ tự FIFO giữ nguyên qua các lần khởi động.
func (s *LotService) nextSeq(ctx context.Context) (int64, error) {
	s.seqMu.Lock()
	defer s.seqMu.Unlock()

	if !s.seqLoaded {
		lots, err := s.FindAll(ctx)
		if err != nil {
			return 0, err
		}
		var max int64
		for _, lot := range lots {
			if lot.Seq > max {
				max = lot.Seq
			}
		}
		s.seqNext = max + 1
		s.seqLoaded = true
	}

	seq := s.seqNext
	s.seqNext++
	return seq, nil
}

// InvalidateSeqCache buộc nextSeq quét lại dữ liệu ở lần cấp số kế tiếp.
// Gọi sau khi toàn bộ store bị thay thế (restore backup), nếu không seq
// mới cấp có thể trùng hoặc nhỏ hơn seq của các lô vừa khôi phục.
func (s *LotService) InvalidateSeqCache() {
	s.seqMu.Lock()
	defer s.seqMu.Unlock()
	s.seqLoaded = false
}

// CreateLot nhập một lô hàng mới cho sản phẩm.
// Trả về ErrInvalidQuantity nếu quantity <= 0 (từ chối trước mọi mutation).
func (s *LotService) CreateLot(ctx context.Context, input CreateLotInput) (models.PurchaseLot, error) {
	var zero models.PurchaseLot

	if input.Quantity <= 0 {
		return zero, common.ErrInvalidQuantity
	}

	// Resolve kho (rỗng = kho mặc định)
	warehouse := input.Warehouse
	if warehouse == "" {
		warehouse = models.DefaultWarehouse().Key
	}
	resolved := models.ResolveWarehouseKey(warehouse)
	if resolved == "" {
		return zero, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Kho không hợp lệ: %s", warehouse), common.StatusBadRequest, nil)
	}

	// Sản phẩm phải tồn tại trước khi nhập lô; giá bán hiện hành được
	// snapshot vào lô để tra cứu lịch sử sau khi sản phẩm đổi giá
	var priceAtPurchase int64
	if s.products != nil {
		product, err := s.products.FindByID(ctx, input.ProductID)
		if err != nil {
			return zero, err
		}
		priceAtPurchase = product.Price
	}

	seq, err := s.nextSeq(ctx)
	if err != nil {
		return zero, err
	}

	createdAt := input.CreatedAt
	if createdAt == 0 {
		createdAt = models.NowMillis()
	}

	lot := models.PurchaseLot{
		ID:                uuid.NewString(),
		ProductID:         input.ProductID,
		Warehouse:         resolved,
		OriginalQuantity:  input.Quantity,
		RemainingQuantity: input.Quantity,
		UnitCost:          models.ComputeUnitCost(input.BaseCostVnd, input.Shipping),
		PriceAtPurchase:   priceAtPurchase,
		Seq:               seq,
		CreatedAt:         createdAt,
		ExpiryDate:        input.ExpiryDate,
		Shipping:          input.Shipping,
	}

	if err := s.Save(ctx, lot.ID, lot); err != nil {
		return zero, err
	}
	return lot, nil
}

// GetLots trả về tất cả lô của một sản phẩm theo thứ tự FIFO
// (createdAt tăng dần, hòa thì theo seq nhập)
func (s *LotService) GetLots(ctx context.Context, productID string) ([]models.PurchaseLot, error) {
	all, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var lots []models.PurchaseLot
	for _, lot := range all {
		if lot.ProductID == productID {
			lots = append(lots, lot)
		}
	}
	sortLotsFIFO(lots)
	return lots, nil
}

// GetLotsByWarehouse trả về các lô của sản phẩm trong một kho, thứ tự FIFO.
// Warehouse được resolve về key hiện hành (chấp nhận legacy key).
func (s *LotService) GetLotsByWarehouse(ctx context.Context, productID, warehouse string) ([]models.PurchaseLot, error) {
	resolved := models.ResolveWarehouseKey(warehouse)
	if resolved == "" {
		return nil, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Kho không hợp lệ: %s", warehouse), common.StatusBadRequest, nil)
	}

	lots, err := s.GetLots(ctx, productID)
	if err != nil {
		return nil, err
	}

	var filtered []models.PurchaseLot
	for _, lot := range lots {
		if models.ResolveWarehouseKey(lot.Warehouse) == resolved {
			filtered = append(filtered, lot)
		}
	}
	return filtered, nil
}

// AdjustRemaining điều chỉnh remaining quantity của một lô.
// Delta âm = xuất kho, delta dương = hoàn kho. Atomic trên từng lô.
// Trả về ErrInsufficientStock nếu kết quả < 0, ErrExceedsOriginal nếu
// kết quả vượt original quantity (lỗi logic thượng nguồn).
func (s *LotService) AdjustRemaining(ctx context.Context, lotID string, delta int64) error {
	s.adjustMu.Lock()
	defer s.adjustMu.Unlock()

	lot, err := s.FindByID(ctx, lotID)
	if err != nil {
		return err
	}

	next := lot.RemainingQuantity + delta
	if next < 0 {
		return common.ErrInsufficientStock
	}
	if next > lot.OriginalQuantity {
		return common.ErrExceedsOriginal
	}

	lot.RemainingQuantity = next
	return s.Save(ctx, lot.ID, lot)
}

// ZeroOutRemaining đưa remaining của tất cả lô còn hàng của một sản phẩm
// về 0 (disposition khi xóa product - lô vẫn được giữ lại cho audit)
func (s *LotService) ZeroOutRemaining(ctx context.Context, productID string) error {
	lots, err := s.GetLots(ctx, productID)
	if err != nil {
		return err
	}
	for _, lot := range lots {
		if lot.RemainingQuantity == 0 {
			continue
		}
		if err := s.AdjustRemaining(ctx, lot.ID, -lot.RemainingQuantity); err != nil {
			return err
		}
	}
	return nil
}

// sortLotsFIFO sắp xếp lô theo thứ tự tiêu thụ FIFO:
// createdAt tăng dần, trùng thì theo seq nhập
func sortLotsFIFO(lots []models.PurchaseLot) {
	sort.SliceStable(lots, func(i, j int) bool {
		if lots[i].CreatedAt != lots[j].CreatedAt {
			return lots[i].CreatedAt < lots[j].CreatedAt
		}
		return lots[i].Seq < lots[j].Seq
	})
}
