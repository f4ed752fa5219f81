package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/quylang88/tini-store/core/api/models"
	"github.com/quylang88/tini-store/core/common"
	"github.com/quylang88/tini-store/core/persistence"
)

// CreateProductInput là dữ liệu tạo sản phẩm mới
type CreateProductInput struct {
	Name     string
	Price    int64 // Giá bán 1 đơn vị (VND)
	Category string
}

// UpdateProductInput là dữ liệu cập nhật sản phẩm, nil = giữ nguyên
type UpdateProductInput struct {
	Name     *string
	Price    *int64
	Category *string
	IsActive *bool
}

// ProductService quản lý catalog sản phẩm
type ProductService struct {
	*BaseServiceStore[models.Product]
}

// NewProductServiceWithStore tạo ProductService trên một store cụ thể
func NewProductServiceWithStore(store persistence.Store) *ProductService {
	return &ProductService{
		BaseServiceStore: NewBaseServiceStore[models.Product](store, persistence.NamespaceProducts),
	}
}

// CreateProduct tạo sản phẩm mới với ID sinh tự động
func (s *ProductService) CreateProduct(ctx context.Context, input CreateProductInput) (models.Product, error) {
	var zero models.Product

	if input.Name == "" {
		return zero, common.NewError(common.ErrCodeValidationInput,
			"Tên sản phẩm không được để trống", common.StatusBadRequest, nil)
	}
	if input.Price < 0 {
		return zero, common.NewError(common.ErrCodeValidationInput,
			"Giá sản phẩm không được âm", common.StatusBadRequest, nil)
	}

	now := models.NowMillis()
	product := models.Product{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Price:     input.Price,
		Category:  input.Category,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Save(ctx, product.ID, product); err != nil {
		return zero, err
	}
	return product, nil
}

// UpdateProduct cập nhật các trường được cung cấp của sản phẩm
func (s *ProductService) UpdateProduct(ctx context.Context, productID string, input UpdateProductInput) (models.Product, error) {
	var zero models.Product

	product, err := s.FindByID(ctx, productID)
	if err != nil {
		return zero, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return zero, common.NewError(common.ErrCodeValidationInput,
				"Tên sản phẩm không được để trống", common.StatusBadRequest, nil)
		}
		product.Name = *input.Name
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return zero, common.NewError(common.ErrCodeValidationInput,
				"Giá sản phẩm không được âm", common.StatusBadRequest, nil)
		}
		product.Price = *input.Price
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	product.UpdatedAt = models.NowMillis()

	if err := s.Save(ctx, product.ID, product); err != nil {
		return zero, err
	}
	return product, nil
}

// DeleteProduct xóa sản phẩm khỏi catalog.
// Các lô của sản phẩm không bị xóa; caller chịu trách nhiệm disposition
// tồn kho trước khi gọi (xem Ledger.DeleteProduct).
func (s *ProductService) DeleteProduct(ctx context.Context, productID string) error {
	if _, err := s.FindByID(ctx, productID); err != nil {
		return err
	}
	return s.Delete(ctx, productID)
}
