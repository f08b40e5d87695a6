package media

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taketwocare/solecare-backend/pkg/config"
	"github.com/taketwocare/solecare-backend/pkg/enums"
	pkgerrors "github.com/taketwocare/solecare-backend/pkg/errors"
)

type fakeStorage struct {
	lastKey         string
	lastContentType string
	lastPayload     []byte
	err             error
}

func (f *fakeStorage) Upload(ctx context.Context, objectName, contentType string, payload io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := io.ReadAll(payload)
	if err != nil {
		return "", err
	}
	f.lastKey = objectName
	f.lastContentType = contentType
	f.lastPayload = data
	return "https://storage.googleapis.com/test-bucket/" + objectName, nil
}

func newTestService(t *testing.T, storage Storage) *Service {
	t.Helper()
	svc, err := NewService(storage, config.MediaConfig{MaxUploadMB: 1})
	require.NoError(t, err)
	return svc
}

func TestUploadStoresAndReturnsURL(t *testing.T) {
	storage := &fakeStorage{}
	svc := newTestService(t, storage)

	out, err := svc.Upload(context.Background(), UploadInput{
		Kind:        enums.MediaKindBefore,
		FileName:    "left shoe.jpg",
		ContentType: "image/jpeg",
		SizeBytes:   12,
		Data:        strings.NewReader("jpeg-payload"),
	})
	require.NoError(t, err)

	assert.Contains(t, out.URL, "https://storage.googleapis.com/test-bucket/")
	assert.True(t, strings.HasPrefix(out.ObjectKey, "entries/before/"))
	// Spaces in the file name become dashes.
	assert.True(t, strings.HasSuffix(out.ObjectKey, "/left-shoe.jpg"))
	assert.Equal(t, "image/jpeg", storage.lastContentType)
	assert.Equal(t, []byte("jpeg-payload"), storage.lastPayload)
}

func TestUploadRejectsBadInput(t *testing.T) {
	svc := newTestService(t, &fakeStorage{})

	tests := []struct {
		name  string
		input UploadInput
	}{
		{
			name: "unknown kind",
			input: UploadInput{
				Kind:        enums.MediaKind("avatar"),
				ContentType: "image/png",
				SizeBytes:   10,
				Data:        strings.NewReader("x"),
			},
		},
		{
			name: "missing payload",
			input: UploadInput{
				Kind:        enums.MediaKindAfter,
				ContentType: "image/png",
				SizeBytes:   10,
			},
		},
		{
			name: "zero size",
			input: UploadInput{
				Kind:        enums.MediaKindAfter,
				ContentType: "image/png",
				Data:        strings.NewReader("x"),
			},
		},
		{
			name: "over the limit",
			input: UploadInput{
				Kind:        enums.MediaKindAfter,
				ContentType: "image/png",
				SizeBytes:   2 * 1024 * 1024,
				Data:        strings.NewReader("x"),
			},
		},
		{
			name: "pdf is not a photo",
			input: UploadInput{
				Kind:        enums.MediaKindBefore,
				ContentType: "application/pdf",
				SizeBytes:   10,
				Data:        strings.NewReader("x"),
			},
		},
		{
			name: "blank content type",
			input: UploadInput{
				Kind:      enums.MediaKindWaiver,
				SizeBytes: 10,
				Data:      strings.NewReader("x"),
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Upload(context.Background(), tc.input)
			require.Error(t, err)
			assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
		})
	}
}

func TestUploadAllowsPDFWaivers(t *testing.T) {
	storage := &fakeStorage{}
	svc := newTestService(t, storage)

	out, err := svc.Upload(context.Background(), UploadInput{
		Kind:        enums.MediaKindWaiver,
		FileName:    "waiver.pdf",
		ContentType: "application/pdf; charset=binary",
		SizeBytes:   8,
		Data:        strings.NewReader("%PDF-1.7"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.ObjectKey, "entries/waiver/"))
	assert.Equal(t, "application/pdf", storage.lastContentType)
}

func TestUploadWrapsStorageFailures(t *testing.T) {
	storage := &fakeStorage{err: io.ErrUnexpectedEOF}
	svc := newTestService(t, storage)

	_, err := svc.Upload(context.Background(), UploadInput{
		Kind:        enums.MediaKindBefore,
		FileName:    "shoe.png",
		ContentType: "image/png",
		SizeBytes:   4,
		Data:        strings.NewReader("data"),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}
