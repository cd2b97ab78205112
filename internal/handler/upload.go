package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"rooneyform-backend/internal/dto"
)

type UploadHandler struct {
	staticDir string
}

func NewUploadHandler(staticDir string) *UploadHandler {
	return &UploadHandler{
		staticDir: staticDir,
	}
}

// UploadImages stores admin-uploaded product images under the static
// directory with collision-free names and returns their relative paths.
func (h *UploadHandler) UploadImages(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid multipart form")
	}

	files := form.File["files"]
	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "No files uploaded")
	}

	if err := os.MkdirAll(h.staticDir, 0o755); err != nil {
		return err
	}

	stored := make([]string, 0, len(files))
	for _, file := range files {
		contentType := file.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			return echo.NewHTTPError(http.StatusBadRequest, "Only image files are allowed")
		}

		filename := strings.ReplaceAll(uuid.NewString(), "-", "") + safeExtension(file.Filename, contentType)
		if err := h.saveFile(file, filepath.Join(h.staticDir, filename)); err != nil {
			return err
		}
		stored = append(stored, "static/"+filename)
	}

	return c.JSON(http.StatusOK, dto.UploadResponse{Files: stored})
}

func (h *UploadHandler) saveFile(file *multipart.FileHeader, destination string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(destination)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

func safeExtension(filename, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		return ext
	}
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
