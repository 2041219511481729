package attachments

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/thesarya/expense/internal/application/dto"
	"github.com/thesarya/expense/internal/domain"
)

// BlobStore is the external storage the uploaded files land in.
type BlobStore interface {
	Upload(ctx context.Context, object, contentType string, r io.Reader) (url string, err error)
	Delete(ctx context.Context, object string) error
}

// Content types accepted for attachments: images, PDF and office documents.
var allowedTypes = map[string]struct{}{
	"image/jpeg":         {},
	"image/png":          {},
	"image/webp":         {},
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       {},
}

// UseCase validates and stores expense/inventory attachments.
type UseCase struct {
	store    BlobStore
	maxBytes int64
	now      func() time.Time
}

// NewUseCase builds the attachments use case. maxBytes caps each upload.
func NewUseCase(store BlobStore, maxBytes int64) *UseCase {
	return &UseCase{store: store, maxBytes: maxBytes, now: time.Now}
}

// WithClock replaces the clock used in object names; for tests.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Upload stores one file under the caller's centre and returns the opaque
// reference persisted alongside the expense or inventory record.
func (uc *UseCase) Upload(ctx context.Context, centre, filename, contentType string, size int64, r io.Reader) (*dto.AttachmentDTO, error) {
	if filename == "" || centre == "" {
		return nil, domain.ErrInvalidInput
	}
	if size > uc.maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	if _, ok := allowedTypes[contentType]; !ok {
		return nil, domain.ErrUnsupportedFile
	}

	object := objectName(centre, filename, uc.now())
	url, err := uc.store.Upload(ctx, object, contentType, io.LimitReader(r, uc.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("attachments: upload %s: %w", object, err)
	}
	return &dto.AttachmentDTO{
		Name: filename,
		URL:  url,
		Size: size,
		Type: contentType,
	}, nil
}

// Remove deletes a stored object by its name.
func (uc *UseCase) Remove(ctx context.Context, object string) error {
	if object == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.store.Delete(ctx, object); err != nil {
		return fmt.Errorf("attachments: delete %s: %w", object, err)
	}
	return nil
}

// objectName builds "expenses/<centre>/<unix-millis>_<safe-name>" so files
// from the same centre group together and names never collide.
func objectName(centre, filename string, now time.Time) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, path.Base(filename))
	return fmt.Sprintf("expenses/%s/%d_%s", centre, now.UnixMilli(), safe)
}
