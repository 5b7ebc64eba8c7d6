package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// stockRepository implements the domain.StockRepository interface using GORM.
type stockRepository struct {
	db *gorm.DB
}

// NewStockRepository is the constructor for stockRepository.
func NewStockRepository(db *gorm.DB) repository.StockRepository {
	return &stockRepository{db: db}
}

// FindByProductID retrieves the stock row for a product.
func (repo *stockRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*entity.Stock, error) {
	var stockM model.StockModel
	if err := repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&stockM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStockNotFound
		}

		return nil, errors.Wrap(err, "failed to find stock by product id")
	}

	return &entity.Stock{
		ProductID: stockM.ProductID,
		Quantity:  stockM.Quantity,
		UpdatedAt: stockM.UpdatedAt,
	}, nil
}

// DecrementIfAvailable atomically subtracts quantity from the product's stock.
// The quantity guard lives in the WHERE clause so two concurrent checkouts can
// never both take the last unit: the second one matches zero rows.
func (repo *stockRepository) DecrementIfAvailable(ctx context.Context, productID uuid.UUID, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.StockModel{}).
		Where("product_id = ? AND quantity >= ?", productID, quantity).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity - ?", quantity),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to decrement stock")
	}

	if result.RowsAffected == 0 {
		// Zero rows means either no stock row at all or not enough left.
		// Re-read to tell the two cases apart.
		var stockM model.StockModel
		if err := repo.db.WithContext(ctx).
			Where("product_id = ?", productID).
			First(&stockM).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrStockNotFound
			}

			return errors.Wrap(err, "failed to inspect stock after rejected decrement")
		}

		return repository.ErrInsufficientStock
	}

	return nil
}

// Set overwrites the stock quantity for a product, creating the row when absent.
func (repo *stockRepository) Set(ctx context.Context, productID uuid.UUID, quantity int) error {
	stockM := model.StockModel{
		ProductID: productID,
		Quantity:  quantity,
		UpdatedAt: time.Now(),
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
		}).
		Create(&stockM).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return errors.Wrap(repository.ErrInsufficientStock, "negative stock quantity rejected")
		}

		return errors.Wrap(err, "failed to set stock quantity")
	}

	return nil
}
