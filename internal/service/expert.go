package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"expertbook/internal/model"
	"expertbook/internal/repository"
	"expertbook/internal/storage"
)

// UnknownCategory labels experts whose category no longer resolves.
const UnknownCategory = "N/A"

// AvatarURLExpiry is the lifetime of presigned avatar links.
const AvatarURLExpiry = 15 * time.Minute

var ErrNoAvatar = errors.New("expert has no avatar")

type ExpertInput struct {
	Name       string
	Email      string
	Bio        string
	CategoryID string
}

type ExpertService interface {
	// List returns experts ordered by name, optionally narrowed to a category
	// and to those matching term in name, email or bio.
	List(ctx context.Context, categoryID, term string) ([]model.ExpertView, error)
	Get(ctx context.Context, id string) (*model.ExpertView, error)
	GetByUserID(ctx context.Context, uid string) (*model.Expert, error)
	Create(ctx context.Context, in ExpertInput) (*model.Expert, error)
	Update(ctx context.Context, id string, in ExpertInput) (*model.Expert, error)
	Delete(ctx context.Context, id string) error
	// UploadAvatar stores the image, records its key and removes the previous
	// one. The new object is deleted again if the record cannot be updated.
	UploadAvatar(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64) (*model.Expert, error)
	AvatarURL(ctx context.Context, id string) (string, error)
}

type expertService struct {
	experts    repository.ExpertRepository
	categories repository.CategoryRepository
	store      storage.Storage
	log        *zap.Logger
	now        func() time.Time
}

func NewExpertService(
	experts repository.ExpertRepository,
	categories repository.CategoryRepository,
	store storage.Storage,
	log *zap.Logger,
) ExpertService {
	return &expertService{experts: experts, categories: categories, store: store, log: log, now: time.Now}
}

func (s *expertService) categoryNames(ctx context.Context) (map[string]string, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	return names, nil
}

func view(e model.Expert, names map[string]string) model.ExpertView {
	name, ok := names[e.CategoryID]
	if !ok {
		name = UnknownCategory
	}
	return model.ExpertView{Expert: e, CategoryName: name}
}

func (s *expertService) List(ctx context.Context, categoryID, term string) ([]model.ExpertView, error) {
	items, err := s.experts.List(ctx, repository.ExpertFilter{CategoryID: categoryID})
	if err != nil {
		return nil, err
	}
	names, err := s.categoryNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.ExpertView, 0, len(items))
	for i := range items {
		if items[i].Matches(term) {
			out = append(out, view(items[i], names))
		}
	}
	return out, nil
}

func (s *expertService) Get(ctx context.Context, id string) (*model.ExpertView, error) {
	e, err := s.experts.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "expert")
	}
	v := model.ExpertView{Expert: *e, CategoryName: UnknownCategory}
	c, err := s.categories.FindByID(ctx, e.CategoryID)
	switch {
	case err == nil:
		v.CategoryName = c.Name
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}
	return &v, nil
}

func (s *expertService) GetByUserID(ctx context.Context, uid string) (*model.Expert, error) {
	e, err := s.experts.FindByUserID(ctx, uid)
	if err != nil {
		return nil, notFound(err, "expert profile")
	}
	return e, nil
}

func (s *expertService) checkInput(ctx context.Context, in *ExpertInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Bio = strings.TrimSpace(in.Bio)
	if err := requireFields("name", in.Name, "email", in.Email, "category_id", in.CategoryID); err != nil {
		return err
	}
	if err := checkEmail(in.Email); err != nil {
		return err
	}
	if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalid("category does not exist")
		}
		return err
	}
	return nil
}

func (s *expertService) Create(ctx context.Context, in ExpertInput) (*model.Expert, error) {
	if err := s.checkInput(ctx, &in); err != nil {
		return nil, err
	}
	return s.experts.Create(ctx, &model.Expert{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Email:      in.Email,
		Bio:        in.Bio,
		CategoryID: in.CategoryID,
		CreatedAt:  s.now().UTC(),
	})
}

func (s *expertService) Update(ctx context.Context, id string, in ExpertInput) (*model.Expert, error) {
	if err := s.checkInput(ctx, &in); err != nil {
		return nil, err
	}
	e, err := s.experts.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "expert")
	}
	e.Name, e.Email, e.Bio, e.CategoryID = in.Name, in.Email, in.Bio, in.CategoryID
	if err := s.experts.Update(ctx, e); err != nil {
		return nil, notFound(err, "expert")
	}
	return e, nil
}

func (s *expertService) Delete(ctx context.Context, id string) error {
	e, err := s.experts.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "expert")
	}
	if err := s.experts.Delete(ctx, id); err != nil {
		return notFound(err, "expert")
	}
	if e.AvatarPath != "" {
		s.dropObject(ctx, e.AvatarPath)
	}
	return nil
}

// dropObject removes an object that is no longer referenced. Failures only
// leave an orphan in the bucket, so they are logged, not returned.
func (s *expertService) dropObject(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		s.log.Warn("delete avatar object", zap.String("key", key), zap.Error(err))
	}
}

func (s *expertService) UploadAvatar(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64) (*model.Expert, error) {
	if r == nil {
		return nil, invalid("file is required")
	}
	if size > storage.MaxAvatarSize {
		return nil, invalid("file exceeds %d bytes", storage.MaxAvatarSize)
	}
	// the declared type is only logged; the stored type comes from the bytes
	detected, body, err := storage.SniffImage(r)
	if errors.Is(err, storage.ErrUnsupportedType) {
		return nil, invalid("file must be a jpeg, png, webp or gif image")
	}
	if err != nil {
		return nil, err
	}
	if contentType != "" && !strings.EqualFold(strings.SplitN(contentType, ";", 2)[0], detected) {
		s.log.Debug("avatar content type mismatch",
			zap.String("expert_id", id), zap.String("declared", contentType), zap.String("detected", detected))
	}
	key, err := storage.AvatarKey(detected)
	if err != nil {
		return nil, invalid("file must be an image")
	}

	e, err := s.experts.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "expert")
	}

	if _, err := s.store.Put(ctx, key, body, storage.PutObjectOptions{
		Size:        size,
		ContentType: detected,
		Metadata:    map[string]string{"expert-id": id, "filename": filename},
	}); err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}

	if err := s.experts.UpdateAvatar(ctx, id, key); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("save avatar path: %w", notFound(err, "expert"))
	}

	if old := e.AvatarPath; old != "" && old != key {
		s.dropObject(ctx, old)
	}
	e.AvatarPath = key
	return e, nil
}

func (s *expertService) AvatarURL(ctx context.Context, id string) (string, error) {
	e, err := s.experts.FindByID(ctx, id)
	if err != nil {
		return "", notFound(err, "expert")
	}
	if e.AvatarPath == "" {
		return "", fmt.Errorf("%w: %w", ErrNotFound, ErrNoAvatar)
	}
	u, err := s.store.PresignGet(ctx, e.AvatarPath, AvatarURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presign avatar: %w", err)
	}
	return u, nil
}
