package repository

import (
	"context"
	"errors"
	"strings"

	"listforge/internal/cache"
	"listforge/internal/models"
	"listforge/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VisibilityFilter narrows an owner's list view.
type VisibilityFilter string

const (
	VisibilityAll     VisibilityFilter = "all"
	VisibilityPublic  VisibilityFilter = "public"
	VisibilityPrivate VisibilityFilter = "private"
)

// ListRepository defines the interface for list data operations
type ListRepository interface {
	Create(ctx context.Context, list *models.List) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.List, error)
	ListByOwner(ctx context.Context, ownerID uint, query string, visibility VisibilityFilter, limit, offset int) ([]*models.List, error)
	ListPublic(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.List, error)
	ListPublicByOwner(ctx context.Context, ownerID uint, query string, limit, offset int, currentUserID uint) ([]*models.List, error)
	Update(ctx context.Context, list *models.List) error
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, listID uint) (bool, error)
	Like(ctx context.Context, userID, listID uint) error
	Unlike(ctx context.Context, userID, listID uint) error
	CountLikes(ctx context.Context, listID uint) (int64, error)
	CountForks(ctx context.Context, listID uint) (int64, error)
}

// listRepository implements ListRepository
type listRepository struct {
	db *gorm.DB
}

// NewListRepository creates a new list repository
func NewListRepository(db *gorm.DB) ListRepository {
	return &listRepository{db: db}
}

func (r *listRepository) Create(ctx context.Context, list *models.List) error {
	if err := r.db.WithContext(ctx).Create(list).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateExplore(ctx)
	return nil
}

func (r *listRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.List, error) {
	var list models.List

	fetch := func() error {
		defer observability.TrackQuery("select", "lists")()
		err := r.applyListDetails(r.db.WithContext(ctx), currentUserID).
			Preload("Owner").
			First(&list, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("List", id)
		}
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	}

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, cache.ListKey(id), &list, cache.ListTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *listRepository) ListByOwner(ctx context.Context, ownerID uint, query string, visibility VisibilityFilter, limit, offset int) ([]*models.List, error) {
	db := r.applyListDetails(r.db.WithContext(ctx), ownerID).
		Preload("Owner").
		Where("owner_id = ?", ownerID)

	switch visibility {
	case VisibilityPublic:
		db = db.Where("is_public = ?", true)
	case VisibilityPrivate:
		db = db.Where("is_public = ?", false)
	}

	var lists []*models.List
	err := applySearch(db, query).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&lists).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return lists, nil
}

// exploreCacheLimit is the page size the explore route requests by default.
// Only that exact first page is cache-eligible; other shapes would alias
// under the single explore key.
const exploreCacheLimit = 20

func (r *listRepository) ListPublic(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.List, error) {
	var lists []*models.List

	fetch := func() error {
		defer observability.TrackQuery("select", "lists")()
		err := applySearch(
			r.applyListDetails(r.db.WithContext(ctx), currentUserID).
				Preload("Owner").
				Where("is_public = ?", true),
			query,
		).
			Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&lists).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	}

	// The anonymous, unfiltered first page of the public feed is the hot
	// path worth caching. The liked flag depends on the viewer, so any
	// authenticated request goes straight to the database.
	cacheable := strings.TrimSpace(query) == "" && offset == 0 &&
		currentUserID == 0 && limit == exploreCacheLimit

	var err error
	if cacheable {
		err = cache.Aside(ctx, cache.ExploreKey("front"), &lists, cache.ExploreTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *listRepository) ListPublicByOwner(ctx context.Context, ownerID uint, query string, limit, offset int, currentUserID uint) ([]*models.List, error) {
	var lists []*models.List
	err := applySearch(
		r.applyListDetails(r.db.WithContext(ctx), currentUserID).
			Preload("Owner").
			Where("owner_id = ? AND is_public = ?", ownerID, true),
		query,
	).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&lists).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return lists, nil
}

// applySearch appends the free-text filter: case-insensitive substring
// match OR-combined across title, description, content, and tags.
// LOWER(...) LIKE keeps the clause portable between Postgres and the
// sqlite test databases.
func applySearch(db *gorm.DB, query string) *gorm.DB {
	if strings.TrimSpace(query) == "" {
		return db
	}
	like := "%" + strings.ToLower(query) + "%"
	return db.Where(
		"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(content) LIKE ? OR LOWER(tags) LIKE ?",
		like, like, like, like,
	)
}

// applyListDetails adds subqueries to fetch counts and liked status in a single query.
func (r *listRepository) applyListDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "lists.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.list_id = lists.id) as likes_count, " +
		"(SELECT COUNT(*) FROM lists forks WHERE forks.original_list_id = lists.id) as fork_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.list_id = lists.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *listRepository) Update(ctx context.Context, list *models.List) error {
	if err := r.db.WithContext(ctx).Save(list).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateList(ctx, list.ID)
	cache.InvalidateExplore(ctx)
	return nil
}

// Delete removes the list inside one transaction: its likes go with it and
// forks keep existing but lose their backreference.
func (r *listRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.List{}).
			Where("original_list_id = ?", id).
			Update("original_list_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.List{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateList(ctx, id)
	cache.InvalidateExplore(ctx)
	return nil
}

func (r *listRepository) IsLiked(ctx context.Context, userID, listID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND list_id = ?", userID, listID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *listRepository) Like(ctx context.Context, userID, listID uint) error {
	// Conflict-ignoring insert; the unique (user_id, list_id) index closes
	// the race between two concurrent likes from the same user.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "list_id"}},
			DoNothing: true,
		}).
		Create(&models.Like{UserID: userID, ListID: listID}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateList(ctx, listID)
	return nil
}

func (r *listRepository) Unlike(ctx context.Context, userID, listID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND list_id = ?", userID, listID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateList(ctx, listID)
	return nil
}

func (r *listRepository) CountLikes(ctx context.Context, listID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("list_id = ?", listID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *listRepository) CountForks(ctx context.Context, listID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.List{}).
		Where("original_list_id = ?", listID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
