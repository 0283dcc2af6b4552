package mysql

import (
	"context"
	"errors"
	"log"

	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepo{db: db}
}

// AddQuantity upserts against the (user_id, product_id) unique index so two
// concurrent adds both land: the increment happens inside the statement.
func (r *cartRepo) AddQuantity(ctx context.Context, userID, productID uint64, quantity int64) (*domain.CartEntry, error) {
	entry := &domain.CartEntry{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + VALUES(quantity)"),
		}),
	}).Create(entry).Error
	if err != nil {
		log.Printf("cart upsert error: %v", err)
		return nil, err
	}

	// Re-read: on the merge path the statement does not report the summed
	// quantity or the existing row id.
	return r.FindOne(ctx, userID, productID)
}

func (r *cartRepo) SetQuantity(ctx context.Context, userID, productID uint64, quantity int64) (*domain.CartEntry, error) {
	res := r.db.WithContext(ctx).Model(&domain.CartEntry{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	if res.Error != nil {
		log.Printf("cart update error: %v", res.Error)
		return nil, res.Error
	}
	// RowsAffected is 0 both for a missing row and for an update to the same
	// value, so the re-read decides which it was.
	return r.FindOne(ctx, userID, productID)
}

func (r *cartRepo) Delete(ctx context.Context, userID, productID uint64) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.CartEntry{}).Error; err != nil {
		log.Printf("cart delete error: %v", err)
		return err
	}
	return nil
}

func (r *cartRepo) FindByUser(ctx context.Context, userID uint64) ([]domain.CartEntry, error) {
	var out []domain.CartEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		log.Printf("cart fetch error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *cartRepo) FindOne(ctx context.Context, userID, productID uint64) (*domain.CartEntry, error) {
	var e domain.CartEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("cart lookup error: %v", err)
		return nil, err
	}
	return &e, nil
}
