package media

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/taketwocare/solecare-backend/pkg/config"
	"github.com/taketwocare/solecare-backend/pkg/enums"
	pkgerrors "github.com/taketwocare/solecare-backend/pkg/errors"
)

// Storage is the object store surface the upload flow needs.
type Storage interface {
	Upload(ctx context.Context, objectName, contentType string, payload io.Reader) (string, error)
}

// UploadInput models one incoming file.
type UploadInput struct {
	Kind        enums.MediaKind
	FileName    string
	ContentType string
	SizeBytes   int64
	Data        io.Reader
}

// UploadOutput is the stored object's stable URL plus its key.
type UploadOutput struct {
	URL       string `json:"url"`
	ObjectKey string `json:"object_key"`
}

var mimeTypesByKind = map[enums.MediaKind][]string{
	enums.MediaKindBefore: {"image/png", "image/jpeg", "image/webp", "image/heic"},
	enums.MediaKindAfter:  {"image/png", "image/jpeg", "image/webp", "image/heic"},
	enums.MediaKindWaiver: {"application/pdf", "image/png", "image/jpeg"},
}

// Service validates uploads and hands them to the object store. The caller
// attaches the returned URL to an entry in a separate request, keeping the
// client's selection order.
type Service struct {
	storage  Storage
	maxBytes int64
}

// NewService builds a media upload service.
func NewService(storage Storage, cfg config.MediaConfig) (*Service, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage is required")
	}
	maxMB := cfg.MaxUploadMB
	if maxMB <= 0 {
		maxMB = 25
	}
	return &Service{
		storage:  storage,
		maxBytes: int64(maxMB) * 1024 * 1024,
	}, nil
}

// Upload checks kind, size, and mime type, then stores the payload and
// returns its stable URL.
func (s *Service) Upload(ctx context.Context, input UploadInput) (*UploadOutput, error) {
	if !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid media kind")
	}
	if input.Data == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file payload is required")
	}
	if input.SizeBytes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file size must be positive")
	}
	if input.SizeBytes > s.maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file exceeds the %d MB upload limit", s.maxBytes/(1024*1024)))
	}

	contentType, err := normalizeMime(input.ContentType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if !isAllowedMime(input.Kind, contentType) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("content type %s is not allowed for %s uploads", contentType, input.Kind))
	}

	objectKey := buildObjectKey(input.Kind, uuid.New(), input.FileName)

	// Guard against payloads longer than the declared size.
	payload := io.LimitReader(input.Data, s.maxBytes+1)
	url, err := s.storage.Upload(ctx, objectKey, contentType, payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing upload")
	}

	return &UploadOutput{URL: url, ObjectKey: objectKey}, nil
}

func normalizeMime(value string) (string, error) {
	clean := strings.TrimSpace(value)
	if clean == "" {
		return "", fmt.Errorf("content type is required")
	}
	mediaType, _, err := mime.ParseMediaType(clean)
	if err != nil {
		return "", fmt.Errorf("content type is invalid")
	}
	return strings.ToLower(mediaType), nil
}

func isAllowedMime(kind enums.MediaKind, contentType string) bool {
	for _, candidate := range mimeTypesByKind[kind] {
		if candidate == contentType {
			return true
		}
	}
	return false
}

func buildObjectKey(kind enums.MediaKind, id uuid.UUID, fileName string) string {
	cleanName := sanitizeFileName(fileName)
	if cleanName == "" {
		cleanName = id.String()
	}
	return fmt.Sprintf("entries/%s/%s/%s", kind, id.String(), cleanName)
}

func sanitizeFileName(name string) string {
	if name == "" {
		return ""
	}
	clean := path.Base(strings.TrimSpace(name))
	if clean == "." || clean == "/" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(clean))
	for _, r := range clean {
		switch {
		case r == '/' || r == '\\' || unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
