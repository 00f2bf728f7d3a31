package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sumafit/medstore/internal/middleware/auth"
)

const maxUploadBytes = 2 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type UploadHandler struct {
	DB        *gorm.DB
	UploadDir string
}

func (h *UploadHandler) saveImage(c echo.Context, field, subdir string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "No file uploaded")
	}
	if file.Size > maxUploadBytes {
		return "", echo.NewHTTPError(http.StatusBadRequest, "file too large")
	}

	ext, ok := allowedImageTypes[file.Header.Get("Content-Type")]
	if !ok {
		return "", echo.NewHTTPError(http.StatusBadRequest, "unsupported file type")
	}

	src, err := file.Open()
	if err != nil {
		return "", echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	defer src.Close()

	dir := filepath.Join(h.UploadDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return fmt.Sprintf("/uploads/%s/%s", subdir, name), nil
}

// UploadImage stores a catalog image and returns its public URL.
func (h *UploadHandler) UploadImage(c echo.Context) error {
	url, err := h.saveImage(c, "file", "images")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}

// UploadAvatar stores the caller's avatar and updates the account record.
func (h *UploadHandler) UploadAvatar(c echo.Context) error {
	user := auth.CurrentUser(c)

	url, err := h.saveImage(c, "avatar", "avatars")
	if err != nil {
		return err
	}

	if err := h.DB.Model(user).Update("avatar_url", url).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusCreated, echo.Map{"url": url, "user": user})
}
