package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fridgehub/groups/internal/model"
)

type pgGroupRepository struct {
	db *gorm.DB
}

func NewPGGroupRepository(db *gorm.DB) GroupRepository {
	return &pgGroupRepository{db: db}
}

func (r *pgGroupRepository) Create(ctx context.Context, group *model.Group) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		// The owner is an explicit member, not an implicit one.
		return tx.Create(&model.GroupMember{
			GroupID: group.ID,
			UserID:  group.OwnerID,
		}).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// The only unique constraint on groups is the invite code.
		return ErrDuplicateInviteCode
	}
	return err
}

func (r *pgGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Group, error) {
	var group model.Group
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *pgGroupRepository) GetByInviteCode(ctx context.Context, code string) (*model.Group, error) {
	var group model.Group
	if err := r.db.WithContext(ctx).First(&group, "invite_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *pgGroupRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Group, error) {
	memberOf := r.db.Model(&model.GroupMember{}).
		Select("group_id").
		Where("user_id = ?", userID)

	var groups []model.Group
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? OR id IN (?)", userID, memberOf).
		Order("created_at DESC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *pgGroupRepository) UpdateInviteCode(ctx context.Context, groupID uuid.UUID, code string, expiresAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&model.Group{}).
		Where("id = ?", groupID).
		Updates(map[string]interface{}{
			"invite_code":            code,
			"invite_code_expires_at": expiresAt,
		})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateInviteCode
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgGroupRepository) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	member := model.GroupMember{GroupID: groupID, UserID: userID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&member)
	if res.Error != nil {
		return res.Error
	}
	// ON CONFLICT DO NOTHING reports zero rows when the set already
	// contained the user, so concurrent duplicate joins cannot both win.
	if res.RowsAffected == 0 {
		return ErrDuplicateMember
	}
	return nil
}

func (r *pgGroupRepository) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&model.GroupMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgGroupRepository) ListMembers(ctx context.Context, groupID uuid.UUID) ([]model.GroupMember, error) {
	var members []model.GroupMember
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("group_id = ?", groupID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *pgGroupRepository) CountMembers(ctx context.Context, groupID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.GroupMember{}).
		Where("group_id = ?", groupID).
		Count(&count).Error
	return count, err
}

func (r *pgGroupRepository) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}
