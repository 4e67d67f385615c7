// Package service contains the application's business logic, sitting
// between the HTTP handlers and the repositories.
package service

import (
	"context"

	"listforge/internal/models"
	"listforge/internal/repository"
	"listforge/internal/validation"
)

// ListService implements list lifecycle operations: create, fork, like,
// visibility, edit, and delete.
type ListService struct {
	listRepo repository.ListRepository
}

// NewListService creates a new ListService.
func NewListService(listRepo repository.ListRepository) *ListService {
	return &ListService{listRepo: listRepo}
}

// CreateListInput carries the fields accepted when creating or saving a list.
type CreateListInput struct {
	OwnerID     uint
	Title       string
	Description string
	Content     string
	Tags        string
	Prompt      string
	IsPublic    bool
}

// Create validates the input and persists a new list. Content is trimmed
// to at most models.MaxContentItems newline-delimited items.
func (s *ListService) Create(ctx context.Context, in CreateListInput) (*models.List, error) {
	if err := validation.ValidateListTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateListTags(in.Tags); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	list := &models.List{
		Title:       in.Title,
		Description: in.Description,
		Content:     models.LimitContent(in.Content),
		Tags:        in.Tags,
		Prompt:      in.Prompt,
		OwnerID:     in.OwnerID,
		IsPublic:    in.IsPublic,
	}
	if err := s.listRepo.Create(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ForkResult reports the outcome of a fork operation.
type ForkResult struct {
	Fork      *models.List
	ForkCount int64
}

// Fork copies title, description, content, tags, and prompt from the
// source list into a new list owned by newOwnerID, pointing its
// OriginalListID at the immediate source. CreatedAt is assigned fresh.
// Forking a private list requires being its owner.
func (s *ListService) Fork(ctx context.Context, listID, newOwnerID uint, isPublic bool) (*ForkResult, error) {
	source, err := s.listRepo.GetByID(ctx, listID, newOwnerID)
	if err != nil {
		return nil, err
	}
	if !source.IsPublic && source.OwnerID != newOwnerID {
		return nil, models.NewAccessError("This list is private")
	}

	fork := &models.List{
		Title:          source.Title,
		Description:    source.Description,
		Content:        source.Content,
		Tags:           source.Tags,
		Prompt:         source.Prompt,
		OwnerID:        newOwnerID,
		IsPublic:       isPublic,
		OriginalListID: &source.ID,
	}
	if err := s.listRepo.Create(ctx, fork); err != nil {
		return nil, err
	}

	count, err := s.listRepo.CountForks(ctx, source.ID)
	if err != nil {
		return nil, err
	}
	return &ForkResult{Fork: fork, ForkCount: count}, nil
}

// LikeResult reports the state after a like toggle.
type LikeResult struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}

// ToggleLike flips the (user, list) like pair: an existing like is removed,
// a missing one is created. Liking a private list is restricted to its owner.
func (s *ListService) ToggleLike(ctx context.Context, listID, userID uint) (*LikeResult, error) {
	list, err := s.listRepo.GetByID(ctx, listID, userID)
	if err != nil {
		return nil, err
	}
	if !list.IsPublic && list.OwnerID != userID {
		return nil, models.NewAccessError("This list is private")
	}

	liked, err := s.listRepo.IsLiked(ctx, userID, listID)
	if err != nil {
		return nil, err
	}

	if liked {
		err = s.listRepo.Unlike(ctx, userID, listID)
	} else {
		err = s.listRepo.Like(ctx, userID, listID)
	}
	if err != nil {
		return nil, err
	}

	count, err := s.listRepo.CountLikes(ctx, listID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{Liked: !liked, Count: count}, nil
}

// ToggleVisibility flips the public flag. Only the owner may invoke it.
func (s *ListService) ToggleVisibility(ctx context.Context, listID, userID uint) (bool, error) {
	list, err := s.listRepo.GetByID(ctx, listID, userID)
	if err != nil {
		return false, err
	}
	if list.OwnerID != userID {
		return false, models.NewAccessError("Only the owner can change visibility")
	}

	list.IsPublic = !list.IsPublic
	if err := s.listRepo.Update(ctx, list); err != nil {
		return false, err
	}
	return list.IsPublic, nil
}

// UpdateListInput carries the full editable representation of a list.
type UpdateListInput struct {
	Title       string
	Description string
	Content     string
	Tags        string
	IsPublic    bool
}

// Update applies an owner-only edit. Content is re-trimmed to the item cap.
func (s *ListService) Update(ctx context.Context, listID, userID uint, in UpdateListInput) (*models.List, error) {
	list, err := s.listRepo.GetByID(ctx, listID, userID)
	if err != nil {
		return nil, err
	}
	if list.OwnerID != userID {
		return nil, models.NewAccessError("Only the owner can edit this list")
	}

	if err := validation.ValidateListTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateListTags(in.Tags); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	list.Title = in.Title
	list.Description = in.Description
	list.Content = models.LimitContent(in.Content)
	list.Tags = in.Tags
	list.IsPublic = in.IsPublic

	if err := s.listRepo.Update(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Delete removes an owner's list along with its likes; forks of it keep
// existing with their backreference nulled.
func (s *ListService) Delete(ctx context.Context, listID, userID uint) error {
	list, err := s.listRepo.GetByID(ctx, listID, userID)
	if err != nil {
		return err
	}
	if list.OwnerID != userID {
		return models.NewAccessError("Only the owner can delete this list")
	}
	return s.listRepo.Delete(ctx, listID)
}
