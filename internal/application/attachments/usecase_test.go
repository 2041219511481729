package attachments_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesarya/expense/internal/application/attachments"
	"github.com/thesarya/expense/internal/domain"
)

// fakeStore records the last upload and serves a canned URL.
type fakeStore struct {
	object      string
	contentType string
	body        string
	deleted     string
}

func (s *fakeStore) Upload(_ context.Context, object, contentType string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.object = object
	s.contentType = contentType
	s.body = string(b)
	return "https://storage.example.com/" + object, nil
}

func (s *fakeStore) Delete(_ context.Context, object string) error {
	s.deleted = object
	return nil
}

func fixedClock() time.Time {
	return time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
}

func newTestUseCase(maxBytes int64) (*attachments.UseCase, *fakeStore) {
	store := &fakeStore{}
	uc := attachments.NewUseCase(store, maxBytes).WithClock(fixedClock)
	return uc, store
}

func TestUpload_StoresUnderCentrePrefix(t *testing.T) {
	uc, store := newTestUseCase(1024)

	out, err := uc.Upload(context.Background(), "Lucknow", "receipt march.pdf",
		"application/pdf", 11, strings.NewReader("pdf content"))
	require.NoError(t, err)

	assert.Equal(t, "receipt march.pdf", out.Name)
	assert.Equal(t, int64(11), out.Size)
	assert.Equal(t, "application/pdf", out.Type)
	assert.Equal(t, "https://storage.example.com/"+store.object, out.URL)

	// Object names are centre-prefixed, timestamped and shell-safe.
	assert.True(t, strings.HasPrefix(store.object, "expenses/Lucknow/"), store.object)
	assert.Contains(t, store.object, "receipt_march.pdf", "spaces are replaced in object names")
	assert.Equal(t, "pdf content", store.body)
}

func TestUpload_RejectsOversizedFiles(t *testing.T) {
	uc, _ := newTestUseCase(10)

	_, err := uc.Upload(context.Background(), "Lucknow", "big.pdf",
		"application/pdf", 11, strings.NewReader("12345678901"))
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestUpload_RejectsDisallowedTypes(t *testing.T) {
	uc, _ := newTestUseCase(1024)

	_, err := uc.Upload(context.Background(), "Lucknow", "script.sh",
		"application/x-sh", 4, strings.NewReader("#!/s"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFile)
}

func TestUpload_RequiresNameAndCentre(t *testing.T) {
	uc, _ := newTestUseCase(1024)

	_, err := uc.Upload(context.Background(), "", "receipt.pdf",
		"application/pdf", 3, strings.NewReader("pdf"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Upload(context.Background(), "Lucknow", "",
		"application/pdf", 3, strings.NewReader("pdf"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemove_DeletesByObjectName(t *testing.T) {
	uc, store := newTestUseCase(1024)

	err := uc.Remove(context.Background(), "expenses/Lucknow/123_receipt.pdf")
	require.NoError(t, err)
	assert.Equal(t, "expenses/Lucknow/123_receipt.pdf", store.deleted)

	err = uc.Remove(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
