package controllers

import (
	"net/http"
	"strings"

	"github.com/taketwocare/solecare-backend/api/responses"
	"github.com/taketwocare/solecare-backend/internal/media"
	"github.com/taketwocare/solecare-backend/pkg/enums"
	pkgerrors "github.com/taketwocare/solecare-backend/pkg/errors"
	"github.com/taketwocare/solecare-backend/pkg/logger"
)

const multipartMemoryLimit = 8 << 20

// MediaUpload accepts one multipart file plus its kind and stores it. The
// response URL is what clients attach to an entry's photo or waiver fields.
func MediaUpload(svc *media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart payload"))
			return
		}

		kind, err := enums.ParseMediaKind(strings.TrimSpace(r.FormValue("kind")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid media kind"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "missing file"))
			return
		}
		defer file.Close()

		out, err := svc.Upload(r.Context(), media.UploadInput{
			Kind:        kind,
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			SizeBytes:   header.Size,
			Data:        file,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, out)
	}
}
