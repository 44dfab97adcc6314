package repository

import (
	"context"

	"foodgram/internal/domain"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Add(ctx context.Context, userID, subscribedToID int64) error
	Remove(ctx context.Context, userID, subscribedToID int64) error
	Exists(ctx context.Context, userID, subscribedToID int64) (bool, error)
	// SubscribedToIDs reports which of the given authors userID follows.
	SubscribedToIDs(ctx context.Context, userID int64, subscribedToIDs []int64) (map[int64]bool, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Subscription, int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Add(ctx context.Context, userID, subscribedToID int64) error {
	return r.db.WithContext(ctx).Create(&domain.Subscription{
		UserID:         userID,
		SubscribedToID: subscribedToID,
	}).Error
}

func (r *subscriptionRepository) Remove(ctx context.Context, userID, subscribedToID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND subscribed_to_id = ?", userID, subscribedToID).
		Delete(&domain.Subscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *subscriptionRepository) Exists(ctx context.Context, userID, subscribedToID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("user_id = ? AND subscribed_to_id = ?", userID, subscribedToID).
		Count(&count).Error
	return count > 0, err
}

func (r *subscriptionRepository) SubscribedToIDs(ctx context.Context, userID int64, subscribedToIDs []int64) (map[int64]bool, error) {
	present := make(map[int64]bool, len(subscribedToIDs))
	if userID == 0 || len(subscribedToIDs) == 0 {
		return present, nil
	}

	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("user_id = ? AND subscribed_to_id IN ?", userID, subscribedToIDs).
		Pluck("subscribed_to_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		present[id] = true
	}
	return present, nil
}

func (r *subscriptionRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Subscription, int64, error) {
	var subs []domain.Subscription
	var total int64

	err := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("SubscribedTo").
		Order("id").
		Limit(limit).Offset(offset).
		Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}

	return subs, total, nil
}
