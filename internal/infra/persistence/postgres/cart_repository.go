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

// cartRepository implements the repository.CartRepository interface using GORM.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{
		db: db,
	}
}

// AddLine appends a new line to the buyer's cart. Duplicate products become
// separate rows; no merging happens at this layer.
func (repo *cartRepository) AddLine(ctx context.Context, line *entity.CartLine) error {
	lineM := fromCartLineDomain(line)

	if err := repo.db.WithContext(ctx).Create(lineM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProductNotFound.WrapMessage("invalid product reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to add cart line")
	}

	line.ID = lineM.ID
	line.CreatedAt = lineM.CreatedAt

	return nil
}

// ListByBuyer returns the buyer's cart lines in add order.
func (repo *cartRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*entity.CartLine, error) {
	var lineModels []*model.CartLineModel

	if err := repo.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at ASC").
		Find(&lineModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list cart lines by buyer")
	}

	lines := make([]*entity.CartLine, 0, len(lineModels))
	for _, lineM := range lineModels {
		lines = append(lines, toCartLineDomain(lineM))
	}

	return lines, nil
}

// Clear removes all of the buyer's cart lines. Clearing an empty cart succeeds.
func (repo *cartRepository) Clear(ctx context.Context, buyerID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Delete(&model.CartLineModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear cart")
	}

	return nil
}

// toCartLineDomain converts a GORM CartLineModel to a domain CartLine entity.
func toCartLineDomain(data *model.CartLineModel) *entity.CartLine {
	if data == nil {
		return nil
	}

	return &entity.CartLine{
		ID:           data.ID,
		BuyerID:      data.BuyerID,
		ProductID:    data.ProductID,
		ProductName:  data.ProductName,
		ProductImage: data.ProductImage,
		SellerID:     data.SellerID,
		SellerName:   data.SellerName,
		Qty:          data.Qty,
		UnitPrice:    data.UnitPrice,
		CreatedAt:    data.CreatedAt,
	}
}

// fromCartLineDomain converts a domain CartLine entity to a GORM CartLineModel.
func fromCartLineDomain(data *entity.CartLine) *model.CartLineModel {
	if data == nil {
		return nil
	}

	return &model.CartLineModel{
		ID:           data.ID,
		BuyerID:      data.BuyerID,
		ProductID:    data.ProductID,
		ProductName:  data.ProductName,
		ProductImage: data.ProductImage,
		SellerID:     data.SellerID,
		SellerName:   data.SellerName,
		Qty:          data.Qty,
		UnitPrice:    data.UnitPrice,
	}
}
