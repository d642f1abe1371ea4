package store

import (
	"errors"

	"feedhub/social-api/apperr"
	"feedhub/social-api/model"
	"feedhub/social-api/service"
	"feedhub/social-api/validators"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// postNotFound and postForbidden share one message on purpose: an
// ownership failure must not confirm the post exists
func postNotFound() *apperr.Error {
	return apperr.New(apperr.NotFound, "Could not find post")
}

func postForbidden() *apperr.Error {
	return apperr.New(apperr.Forbidden, "Could not find post")
}

// Posts manages post records and their linkage to owners and image files
type Posts struct {
	DB       *gorm.DB
	Images   *service.Images
	PageSize int
}

func NewPosts(db *gorm.DB, images *service.Images, pageSize int) *Posts {
	if pageSize <= 0 {
		pageSize = 2
	}
	return &Posts{DB: db, Images: images, PageSize: pageSize}
}

func validatePost(title, content, imageKey string) error {
	fields := validators.PostValidator(title, content)
	if imageKey == "" {
		fields = append(fields, apperr.FieldError{
			Field:   "image",
			Message: "No image provided",
		})
	}

	if len(fields) > 0 {
		return apperr.Validation(fields)
	}

	return nil
}

// Create validates the input and writes the post and its owner linkage in
// one transaction. Either both writes land or neither does, a partial
// state is rolled back and surfaced instead of silently dropped
func (s *Posts) Create(ownerID, title, content, imageKey string) (*model.Post, error) {
	if err := validatePost(title, content, imageKey); err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:     title,
		Content:   content,
		ImagePath: imageKey,
		AuthorID:  ownerID,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var owner model.User

		if err := tx.Where("id = ?", ownerID).First(&owner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.Unauthenticated, "Invalid user")
			}
			return err
		}

		if err := tx.Create(post).Error; err != nil {
			return err
		}

		// Owner linkage: append the post to the owner's set so both sides
		// of the relationship are written together
		if err := tx.Model(&owner).Association("Posts").Append(post); err != nil {
			return err
		}

		post.Author = owner
		return nil
	})
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return nil, ae
		}

		zap.L().Error("Failed to create post", zap.String("ownerID", ownerID), zap.Error(err))
		return nil, apperr.Wrap(err, "Internal server error")
	}

	return post, nil
}

func (s *Posts) Get(postID uint) (*model.Post, error) {
	var post model.Post

	err := s.DB.Preload("Author").Where("id = ?", postID).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, postNotFound()
		}

		zap.L().Error("Failed to fetch post", zap.Uint("postID", postID), zap.Error(err))
		return nil, apperr.Wrap(err, "Internal server error")
	}

	return &post, nil
}

// List returns one page of posts, newest first. Pages are 1-indexed and
// an out-of-range page yields an empty slice with the correct total,
// never an error
func (s *Posts) List(page int) ([]model.Post, int64, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := s.DB.Model(model.Post{}).Count(&total).Error; err != nil {
		zap.L().Error("Failed to count posts", zap.Error(err))
		return nil, 0, apperr.Wrap(err, "Internal server error")
	}

	var posts []model.Post

	err := s.DB.Preload("Author").
		Order("created_at desc, id desc").
		Offset((page - 1) * s.PageSize).
		Limit(s.PageSize).
		Find(&posts).
		Error
	if err != nil {
		zap.L().Error("Failed to fetch posts", zap.Error(err))
		return nil, 0, apperr.Wrap(err, "Internal server error")
	}

	return posts, total, nil
}

// Update rewrites the user-settable fields of a post the caller owns.
// When the image changes the old file is retired only after the new key
// is committed, so a failed write can't leave the post pointing at a
// deleted file
func (s *Posts) Update(postID uint, callerID, title, content, newImageKey string) (*model.Post, error) {
	post, err := s.Get(postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != callerID {
		return nil, postForbidden()
	}

	imageKey := post.ImagePath
	if newImageKey != "" {
		imageKey = newImageKey
	}

	if err := validatePost(title, content, imageKey); err != nil {
		return nil, err
	}

	oldKey := post.ImagePath

	post.Title = title
	post.Content = content
	post.ImagePath = imageKey

	if err := s.DB.Save(post).Error; err != nil {
		zap.L().Error("Failed to update post", zap.Uint("postID", postID), zap.Error(err))
		return nil, apperr.Wrap(err, "Internal server error")
	}

	if imageKey != oldKey {
		s.Images.Retire(oldKey)
	}

	return post, nil
}

// Delete removes a post the caller owns. The record delete also unlinks
// it from the owner's set; the image is retired last since neither write
// needs it
func (s *Posts) Delete(postID uint, callerID string) error {
	post, err := s.Get(postID)
	if err != nil {
		return err
	}

	if post.AuthorID != callerID {
		return postForbidden()
	}

	// Deleting the record is also what unlinks it from the owner's set,
	// the linkage lives on the post row
	err = s.DB.Delete(&model.Post{}, post.ID).Error
	if err != nil {
		zap.L().Error("Failed to delete post", zap.Uint("postID", postID), zap.Error(err))
		return apperr.Wrap(err, "Internal server error")
	}

	s.Images.Retire(post.ImagePath)

	return nil
}
