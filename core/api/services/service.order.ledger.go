package services

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/quylang88/tini-store/core/api/models"
	"github.com/quylang88/tini-store/core/common"
	"github.com/quylang88/tini-store/core/logger"
	"github.com/quylang88/tini-store/core/persistence"
)

// OrderItemInput là một dòng hàng khi tạo/sửa đơn
type OrderItemInput struct {
	ProductID string
	Quantity  int64
}

// CreateOrderInput là dữ liệu tạo đơn hàng mới
type CreateOrderInput struct {
	OrderType       string // delivery | warehouse
	Warehouse       string // Rỗng = kho mặc định
	CustomerName    string
	CustomerAddress string
	ShippingFee     int64 // Chỉ có nghĩa với đơn gửi khách
	Comment         string
	Items           []OrderItemInput
	CreatedAt       models.Millis // 0 = thời điểm hiện tại
}

// UpdateOrderInput là dữ liệu sửa đơn, nil = giữ nguyên.
// Items khác nil sẽ hoàn kho cũ và xuất kho lại theo dòng hàng mới.
type UpdateOrderInput struct {
	CustomerName    *string
	CustomerAddress *string
	ShippingFee     *int64
	Comment         *string
	Items           []OrderItemInput
}

// OrderService là sổ cái đơn hàng: tạo đơn all-or-nothing, chuyển trạng
// thái theo state machine và hủy đơn kèm hoàn kho đúng allocation.
// Đơn đã ghi là bất biến trừ trạng thái và các trường metadata.
type OrderService struct {
	*BaseServiceStore[models.Order]
	products  *ProductService
	depletion *DepletionService

	// orderLocks tuần tự hóa mutation trên từng đơn
	orderLocks *KeyedRWMutex
}

// NewOrderServiceWithStore tạo OrderService trên một store cụ thể
func NewOrderServiceWithStore(store persistence.Store, products *ProductService, depletion *DepletionService) *OrderService {
	return &OrderService{
		BaseServiceStore: NewBaseServiceStore[models.Order](store, persistence.NamespaceOrders),
		products:         products,
		depletion:        depletion,
		orderLocks:       NewKeyedRWMutex(),
	}
}

// CreateOrder tạo đơn hàng mới và xuất kho FIFO cho từng dòng hàng.
// All-or-nothing: một dòng không đủ tồn thì mọi dòng đã xuất trước đó
// được hoàn lại và không đơn nào được ghi.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (models.Order, error) {
	var zero models.Order

	if input.OrderType != models.OrderTypeDelivery && input.OrderType != models.OrderTypeWarehouse {
		return zero, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Loại đơn hàng không hợp lệ: %s", input.OrderType), common.StatusBadRequest, nil)
	}
	if len(input.Items) == 0 {
		return zero, common.NewError(common.ErrCodeValidationInput,
			"Đơn hàng phải có ít nhất một dòng hàng", common.StatusBadRequest, nil)
	}

	warehouse := input.Warehouse
	if warehouse == "" {
		warehouse = models.DefaultWarehouse().Key
	}
	resolved := models.ResolveWarehouseKey(warehouse)
	if resolved == "" {
		return zero, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Kho không hợp lệ: %s", warehouse), common.StatusBadRequest, nil)
	}

	items, totalPrice, err := s.depleteItems(ctx, resolved, input.Items)
	if err != nil {
		return zero, err
	}

	orderNumber, err := s.generateOrderNumber(ctx)
	if err != nil {
		s.restoreItems(ctx, resolved, items)
		return zero, err
	}

	createdAt := input.CreatedAt
	if createdAt == 0 {
		createdAt = models.NowMillis()
	}

	order := models.Order{
		ID:              uuid.NewString(),
		OrderNumber:     orderNumber,
		OrderType:       input.OrderType,
		Warehouse:       resolved,
		CustomerName:    input.CustomerName,
		CustomerAddress: input.CustomerAddress,
		Comment:         input.Comment,
		Items:           items,
		TotalPrice:      totalPrice,
		Status:          models.OrderStatusPending,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
	if input.OrderType == models.OrderTypeDelivery {
		order.ShippingFee = input.ShippingFee
	}

	if err := s.Save(ctx, order.ID, order); err != nil {
		// Ghi sổ thất bại thì tồn kho phải về đúng trạng thái ban đầu
		s.restoreItems(ctx, resolved, items)
		return zero, err
	}
	return order, nil
}

// depleteItems xuất kho cho từng dòng hàng, hoàn lại toàn bộ khi một dòng
// thất bại. Trả về các dòng hàng đã snapshot tên/giá và tổng tiền.
func (s *OrderService) depleteItems(ctx context.Context, warehouse string, inputs []OrderItemInput) ([]models.OrderItem, int64, error) {
	var (
		items      []models.OrderItem
		totalPrice int64
	)
	for _, in := range inputs {
		if in.Quantity <= 0 {
			s.restoreItems(ctx, warehouse, items)
			return nil, 0, common.ErrInvalidQuantity
		}

		product, err := s.products.FindByID(ctx, in.ProductID)
		if err != nil {
			s.restoreItems(ctx, warehouse, items)
			return nil, 0, err
		}

		result, err := s.depletion.Deplete(ctx, in.ProductID, warehouse, in.Quantity)
		if err != nil {
			s.restoreItems(ctx, warehouse, items)
			return nil, 0, err
		}

		items = append(items, models.OrderItem{
			ProductID:      product.ID,
			ProductName:    product.Name,
			Warehouse:      warehouse,
			Quantity:       in.Quantity,
			UnitPrice:      product.Price,
			UnitCost:       result.WeightedUnitCost,
			LotAllocations: result.Allocations,
		})
		totalPrice += product.Price * in.Quantity
	}
	return items, totalPrice, nil
}

// restoreItems hoàn kho cho các dòng hàng đã xuất. Best-effort: lỗi hoàn
// kho chỉ được log vì đây là đường rollback.
func (s *OrderService) restoreItems(ctx context.Context, warehouse string, items []models.OrderItem) {
	log := logger.GetAppLogger()
	for _, item := range items {
		if err := s.depletion.Restore(ctx, item.ProductID, warehouse, item.LotAllocations); err != nil {
			log.WithError(err).WithField("product_id", item.ProductID).
				Error("Không thể hoàn kho khi rollback đơn hàng")
		}
	}
}

// generateOrderNumber sinh số đơn 4 chữ số ngẫu nhiên, thử lại vài lần
// nếu trùng với đơn đã có; hết lượt thì dùng 4 chữ số cuối của timestamp
func (s *OrderService) generateOrderNumber(ctx context.Context) (string, error) {
	orders, err := s.FindAll(ctx)
	if err != nil {
		return "", err
	}
	existing := make(map[string]bool, len(orders))
	for _, o := range orders {
		existing[o.OrderNumber] = true
	}

	for i := 0; i < 5; i++ {
		candidate := fmt.Sprintf("%04d", 1000+rand.Intn(9000))
		if !existing[candidate] {
			return candidate, nil
		}
	}
	return fmt.Sprintf("%04d", models.NowMillis()%10000), nil
}

// GetOrder trả về một đơn theo ID
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (models.Order, error) {
	return s.FindByID(ctx, orderID)
}

// ListOrders trả về toàn bộ đơn, mới nhất trước
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt > orders[j].CreatedAt
	})
	return orders, nil
}

// ListOrdersByStatus lọc đơn theo trạng thái, mới nhất trước
func (s *OrderService) ListOrdersByStatus(ctx context.Context, status string) ([]models.Order, error) {
	if !models.IsValidOrderStatus(status) {
		return nil, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Trạng thái đơn hàng không hợp lệ: %s", status), common.StatusBadRequest, nil)
	}
	orders, err := s.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	var filtered []models.Order
	for _, o := range orders {
		if o.Status == status {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

// Transition chuyển trạng thái đơn theo state machine.
// Chuyển sang cancelled luôn đi qua đường hủy đơn để hoàn kho.
func (s *OrderService) Transition(ctx context.Context, orderID, to string) (models.Order, error) {
	var zero models.Order

	if !models.IsValidOrderStatus(to) {
		return zero, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Trạng thái đơn hàng không hợp lệ: %s", to), common.StatusBadRequest, nil)
	}
	if to == models.OrderStatusCancelled {
		return s.CancelOrder(ctx, orderID)
	}

	s.orderLocks.Lock(orderID)
	defer s.orderLocks.Unlock(orderID)

	order, err := s.FindByID(ctx, orderID)
	if err != nil {
		return zero, err
	}
	if !models.CanTransition(order.Status, to) {
		return zero, common.WrapError(common.ErrCodeOrderTransition,
			fmt.Sprintf("Không thể chuyển đơn từ %s sang %s", order.Status, to),
			common.StatusConflict, common.ErrInvalidTransition)
	}

	order.Status = to
	order.UpdatedAt = models.NowMillis()
	if err := s.Save(ctx, order.ID, order); err != nil {
		return zero, err
	}
	return order, nil
}

// CancelOrder hủy đơn và hoàn kho theo đúng allocation đã xuất.
// StockRestored chặn hoàn kho lần thứ hai: đơn đã cancelled thì mọi lần
// hủy tiếp theo đều trả về ErrInvalidTransition.
func (s *OrderService) CancelOrder(ctx context.Context, orderID string) (models.Order, error) {
	var zero models.Order

	s.orderLocks.Lock(orderID)
	defer s.orderLocks.Unlock(orderID)

	order, err := s.FindByID(ctx, orderID)
	if err != nil {
		return zero, err
	}
	if !models.CanTransition(order.Status, models.OrderStatusCancelled) {
		return zero, common.WrapError(common.ErrCodeOrderTransition,
			fmt.Sprintf("Không thể hủy đơn đang ở trạng thái %s", order.Status),
			common.StatusConflict, common.ErrInvalidTransition)
	}

	if !order.StockRestored {
		for _, item := range order.Items {
			if err := s.depletion.Restore(ctx, item.ProductID, item.Warehouse, item.LotAllocations); err != nil {
				return zero, err
			}
		}
		order.StockRestored = true
	}

	order.Status = models.OrderStatusCancelled
	order.UpdatedAt = models.NowMillis()
	if err := s.Save(ctx, order.ID, order); err != nil {
		return zero, err
	}
	return order, nil
}

// UpdateOrder sửa metadata và/hoặc dòng hàng của một đơn chưa kết thúc.
// Khi đổi dòng hàng: hoàn kho cũ trước, xuất kho mới; nếu xuất mới thất
// bại thì tái xuất theo allocation cũ để đơn giữ nguyên trạng thái.
func (s *OrderService) UpdateOrder(ctx context.Context, orderID string, input UpdateOrderInput) (models.Order, error) {
	var zero models.Order

	s.orderLocks.Lock(orderID)
	defer s.orderLocks.Unlock(orderID)

	order, err := s.FindByID(ctx, orderID)
	if err != nil {
		return zero, err
	}
	if order.Status == models.OrderStatusCompleted || order.Status == models.OrderStatusCancelled {
		return zero, common.WrapError(common.ErrCodeOrderTransition,
			fmt.Sprintf("Không thể sửa đơn đang ở trạng thái %s", order.Status),
			common.StatusConflict, common.ErrInvalidTransition)
	}

	if input.CustomerName != nil {
		order.CustomerName = *input.CustomerName
	}
	if input.CustomerAddress != nil {
		order.CustomerAddress = *input.CustomerAddress
	}
	if input.ShippingFee != nil && order.OrderType == models.OrderTypeDelivery {
		order.ShippingFee = *input.ShippingFee
	}
	if input.Comment != nil {
		order.Comment = *input.Comment
	}

	if input.Items != nil {
		oldItems := order.Items

		// Hoàn kho cũ để lượng mới có thể dùng lại chính các lô đó
		for _, item := range oldItems {
			if err := s.depletion.Restore(ctx, item.ProductID, item.Warehouse, item.LotAllocations); err != nil {
				return zero, err
			}
		}

		newItems, totalPrice, err := s.depleteItems(ctx, order.Warehouse, input.Items)
		if err != nil {
			// Tái xuất theo allocation cũ để tồn kho khớp với đơn hiện hành
			s.reapplyItems(ctx, oldItems)
			return zero, err
		}

		order.Items = newItems
		order.TotalPrice = totalPrice
	}

	order.UpdatedAt = models.NowMillis()
	if err := s.Save(ctx, order.ID, order); err != nil {
		return zero, err
	}
	return order, nil
}

// reapplyItems trừ kho lại theo đúng allocation cũ của một đơn (đường
// rollback của UpdateOrder, ngược với Restore). Best-effort.
func (s *OrderService) reapplyItems(ctx context.Context, items []models.OrderItem) {
	log := logger.GetAppLogger()
	for _, item := range items {
		for _, alloc := range item.LotAllocations {
			if err := s.depletion.lots.AdjustRemaining(ctx, alloc.LotID, -alloc.Quantity); err != nil {
				log.WithError(err).WithField("lot_id", alloc.LotID).
					Error("Không thể tái xuất kho khi rollback sửa đơn")
			}
		}
	}
}
