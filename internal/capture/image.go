package capture

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	apierrors "github.com/chattatrader/chattacli/internal/errors"
	"github.com/chattatrader/chattacli/internal/models"
)

// maxImageSize caps single-shot image captures at 10 MB.
const maxImageSize = 10 << 20

// CaptureImage reads one image file into an attachment. Single-shot, no
// state machine.
func CaptureImage(path string) (*models.Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, apierrors.NewPermissionError("image", err.Error())
		}
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if info.Size() > maxImageSize {
		return nil, fmt.Errorf("image too large: %d bytes (max %d)", info.Size(), maxImageSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, apierrors.NewPermissionError("image", err.Error())
		}
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("not an image file: %s", mime)
	}

	return &models.Attachment{
		Kind: models.AttachmentImage,
		MIME: mime,
		Data: data,
	}, nil
}
