package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yourorg/vidtube/services/content-service/internal/repository"
	"github.com/yourorg/vidtube/services/content-service/internal/utils"
)

// AssetStore is the object-storage slice the media service needs.
type AssetStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	PresignURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type MediaService struct {
	users      repository.UserRepository
	store      AssetStore
	presignTTL time.Duration
}

func NewMediaService(users repository.UserRepository, store AssetStore, presignTTL time.Duration) *MediaService {
	return &MediaService{users: users, store: store, presignTTL: presignTTL}
}

// UploadAvatar stores the image, writes a thumbnail alongside it and updates
// the user's avatar URL.
func (s *MediaService) UploadAvatar(ctx context.Context, userID primitive.ObjectID, filename, contentType string, data []byte) (string, error) {
	key := "avatars/" + userID.Hex() + "/" + utils.NewID() + "_" + filename

	url, err := s.store.Upload(ctx, key, contentType, data)
	if err != nil {
		return "", err
	}

	// thumbnail is best effort
	if thumb, err := avatarThumbnail(data); err == nil {
		_, _ = s.store.Upload(ctx, key+"_thumb.jpg", "image/jpeg", thumb)
	}

	if url == "" {
		url, err = s.store.PresignURL(ctx, key, s.presignTTL)
		if err != nil {
			return "", err
		}
	}

	if err := s.users.UpdateAvatar(ctx, userID, url); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", utils.NotFound("user not found")
		}
		return "", err
	}
	return url, nil
}

func avatarThumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	thumb := imaging.Resize(img, 160, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
