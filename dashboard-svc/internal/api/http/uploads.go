package httpapi

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// receiveImage stores the multipart "image" field and returns its public URL.
func (h *Handler) receiveImage(r *http.Request, prefix string) (string, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return "", badRequest("file too large, the limit is 10 MB")
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return "", badRequest("missing image file")
	}
	defer file.Close()
	if header.Size > maxUploadSize {
		return "", badRequest("file too large, the limit is 10 MB")
	}

	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", badRequest("invalid file type, only JPEG, PNG, GIF, WebP allowed")
	}
	if orig := strings.ToLower(filepath.Ext(header.Filename)); orig == ".jpeg" {
		ext = orig
	}

	name := prefix + "_" + uuid.NewString() + ext
	return h.Uploader.Upload(r.Context(), name, contentType, file)
}

func writePNG(w http.ResponseWriter, image []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(image)
}
