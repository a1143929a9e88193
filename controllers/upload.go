package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxImageSize limits uploaded images to 5MiB.
const maxImageSize = 5 * 1024 * 1024

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// saveImage stores an optional multipart "image" file under the upload
// directory with a collision-resistant name and returns its public URL.
// Returns "" when no file was supplied.
func (p *PostController) saveImage(ctx *gin.Context) (string, error) {
	file, header, err := ctx.Request.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", errors.New("invalid image upload")
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return "", errors.New("unsupported image type")
	}
	if header.Size > maxImageSize {
		return "", errors.New("image exceeds 5MB limit")
	}

	if err := os.MkdirAll(p.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	// Timestamp plus random suffix keeps concurrent uploads from colliding.
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), strings.Split(uuid.NewString(), "-")[0], ext)
	dstPath := filepath.Join(p.uploadDir, name)

	out, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	defer out.Close()

	lr := &io.LimitedReader{R: file, N: maxImageSize + 1}
	written, err := io.Copy(out, lr)
	if err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("write image: %w", err)
	}
	if written > maxImageSize {
		_ = os.Remove(dstPath)
		return "", errors.New("image exceeds 5MB limit")
	}

	return "/uploads/" + name, nil
}
