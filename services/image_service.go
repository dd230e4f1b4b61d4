package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/alessioferri/trattoria-app/models"
)

// ErrImageNotFound reports an operation on an unknown library image.
var ErrImageNotFound = errors.New("image not found")

// ImageRepo persists the admin image library metadata and homepage slots.
type ImageRepo interface {
	Insert(ctx context.Context, image models.UploadedImage) error
	ListActive(ctx context.Context, limit int) ([]models.UploadedImage, error)
	Find(ctx context.Context, id string) (*models.UploadedImage, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	GetSlots(ctx context.Context) (*models.HomepageSlots, error)
	SaveSlots(ctx context.Context, slots models.HomepageSlots) error
}

// ObjectStore holds the image bytes themselves. The production impl writes
// to the local upload directory served as static files.
type ObjectStore interface {
	Save(objectName string, r io.Reader) (url string, err error)
	Delete(objectName string) error
}

type ImageService struct {
	repo  ImageRepo
	store ObjectStore
}

func NewImageService(repo ImageRepo, store ObjectStore) *ImageService {
	return &ImageService{repo: repo, store: store}
}

// Upload stores the image bytes and registers the file in the library.
func (s *ImageService) Upload(ctx context.Context, filename string, r io.Reader) (*models.UploadedImage, error) {
	objectName := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filename)
	url, err := s.store.Save(objectName, r)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	image := models.UploadedImage{
		ID:         uuid.NewString(),
		URL:        url,
		ObjectName: objectName,
		UploadedAt: time.Now().UTC(),
		Active:     true,
	}
	if err := s.repo.Insert(ctx, image); err != nil {
		return nil, fmt.Errorf("register image: %w", err)
	}
	return &image, nil
}

// Library lists the active images, newest first, plus the homepage slots.
func (s *ImageService) Library(ctx context.Context) ([]models.UploadedImage, *models.HomepageSlots, error) {
	images, err := s.repo.ListActive(ctx, 200)
	if err != nil {
		return nil, nil, fmt.Errorf("list images: %w", err)
	}

	slots, err := s.repo.GetSlots(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load homepage slots: %w", err)
	}
	if slots == nil {
		slots = &models.HomepageSlots{ID: "homepage"}
	}
	return images, slots, nil
}

// Hide removes an image from the library view without deleting its bytes.
func (s *ImageService) Hide(ctx context.Context, id string) error {
	image, err := s.repo.Find(ctx, id)
	if err != nil {
		return fmt.Errorf("find image: %w", err)
	}
	if image == nil {
		return ErrImageNotFound
	}
	return s.repo.SetActive(ctx, id, false)
}

// Delete removes the stored bytes and the library entry, and resets the
// homepage slots since any of them may have referenced the image.
func (s *ImageService) Delete(ctx context.Context, id string) error {
	image, err := s.repo.Find(ctx, id)
	if err != nil {
		return fmt.Errorf("find image: %w", err)
	}
	if image == nil {
		return ErrImageNotFound
	}

	if image.ObjectName != "" {
		if err := s.store.Delete(image.ObjectName); err != nil {
			return fmt.Errorf("delete stored image: %w", err)
		}
	}

	if err := s.repo.SaveSlots(ctx, models.HomepageSlots{ID: "homepage", UpdatedAt: time.Now().UTC()}); err != nil {
		return fmt.Errorf("reset homepage slots: %w", err)
	}

	return s.repo.Delete(ctx, id)
}

// SetHomepageSlots upserts the single homepage slots document.
func (s *ImageService) SetHomepageSlots(ctx context.Context, slot1, slot2, slot3, slot4 *string) error {
	slots := models.HomepageSlots{
		ID:        "homepage",
		Slot1:     slot1,
		Slot2:     slot2,
		Slot3:     slot3,
		Slot4:     slot4,
		UpdatedAt: time.Now().UTC(),
	}
	return s.repo.SaveSlots(ctx, slots)
}
