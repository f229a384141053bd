package postgres

import (
	"context"

	"carspares/internal/domain/entity"
	domainerrors "carspares/internal/domain/errors"
	"carspares/internal/domain/repository"
	"carspares/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderedItems keeps preloaded order items in their insertion order so an
// order's items always come back in the sequence the cart lines were added.
func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

// orderRepository implements the repository.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create persists a new order together with its items. GORM inserts the
// associated item rows alongside the order row.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCheckoutFailed.WrapMessage("invalid buyer or seller reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt

	return nil
}

// FindByID retrieves a single order with its items.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// ListByBuyer returns the buyer's orders, newest first.
func (repo *orderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders by buyer")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// ListBySeller returns the seller's incoming orders, newest first.
func (repo *orderRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders by seller")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// UpdateStatus writes the order's status field only.
func (repo *orderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", orderID).
		Update("status", status.String())

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]*entity.OrderItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, &entity.OrderItem{
			ProductID:    itemM.ProductID,
			ProductName:  itemM.ProductName,
			ProductImage: itemM.ProductImage,
			SellerID:     itemM.SellerID,
			SellerName:   itemM.SellerName,
			Qty:          itemM.Qty,
			UnitPrice:    itemM.UnitPrice,
		})
	}

	return &entity.Order{
		ID:            data.ID,
		BuyerID:       data.BuyerID,
		BuyerName:     data.BuyerName,
		SellerID:      data.SellerID,
		SellerName:    data.SellerName,
		Items:         items,
		TotalAmount:   data.TotalAmount,
		Status:        entity.OrderStatus(data.Status),
		PaymentMethod: data.PaymentMethod,
		MpesaCode:     data.MpesaCode,
		Address:       data.Address,
		CreatedAt:     data.CreatedAt,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, model.OrderItemModel{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			SellerID:     item.SellerID,
			SellerName:   item.SellerName,
			Qty:          item.Qty,
			UnitPrice:    item.UnitPrice,
		})
	}

	return &model.OrderModel{
		ID:            data.ID,
		BuyerID:       data.BuyerID,
		BuyerName:     data.BuyerName,
		SellerID:      data.SellerID,
		SellerName:    data.SellerName,
		TotalAmount:   data.TotalAmount,
		Status:        data.Status.String(),
		PaymentMethod: data.PaymentMethod,
		MpesaCode:     data.MpesaCode,
		Address:       data.Address,
		Items:         items,
	}
}
