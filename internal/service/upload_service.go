package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"blog-web-server/internal/model"
	"blog-web-server/internal/ports"
	"blog-web-server/internal/util"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	UploadKindProfile = "profile"
	UploadKindCover   = "cover"

	webpQuality = 85
)

var ErrUnsupportedImage = errors.New("неподдерживаемый формат изображения")

// UploadService перекодирует загруженные изображения в WebP и складывает
// их в S3. Размеры: profile вписывается в 500x500, cover — в 1200x630,
// маленькие изображения не растягиваются
type UploadService struct {
	storage ports.S3Storage
	urlTTL  time.Duration
}

func NewUploadService(storage ports.S3Storage, urlTTL time.Duration) *UploadService {
	return &UploadService{
		storage: storage,
		urlTTL:  urlTTL,
	}
}

// Process : декодирование -> resize -> WebP -> S3.
// baseName — username (profile) или очищенный заголовок (cover)
func (s *UploadService) Process(ctx context.Context, kind, baseName string, data []byte) (*model.UploadResult, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		// imaging не знает webp
		img, err = webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
		}
	}

	width, height := 1200, 630
	if kind == UploadKindProfile {
		width, height = 500, 500
	}
	img = imaging.Fit(img, width, height, imaging.Lanczos)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, util.LogError("[UploadService] ошибка кодирования WebP", err)
	}

	filename := fmt.Sprintf("%s-%d.webp", baseName, time.Now().UnixMilli())
	key := path.Join("uploads", kind, filename)

	if err := s.storage.UploadObject(ctx, key, buf.Bytes(), "image/webp"); err != nil {
		return nil, util.LogError("[UploadService] не удалось сохранить изображение", err)
	}

	url, err := s.storage.GeneratePresignedGetURL(ctx, key, s.urlTTL)
	if err != nil {
		return nil, util.LogError("[UploadService] не удалось сгенерировать URL", err)
	}

	return &model.UploadResult{
		Filename:     filename,
		URL:          url,
		OriginalSize: int64(len(data)),
		MimeType:     "image/webp",
	}, nil
}
