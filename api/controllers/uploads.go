package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"Litreview/api/media"

	"github.com/gin-gonic/gin"
)

const imageField = "image"

// readUpload returns the optional ticket image. A missing file yields a nil
// image; a rejected file yields a message for the image field.
func (server *Server) readUpload(c *gin.Context) (*media.Image, string, error) {
	fh, err := c.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, "", nil
		}
		return nil, "Le fichier envoyé est invalide.", nil
	}

	maxBytes := server.Config.Media.MaxBytes
	img, err := media.ReadImage(fh, maxBytes)
	switch {
	case errors.Is(err, media.ErrTooLarge):
		return nil, fmt.Sprintf("Le fichier est trop volumineux (%d Mo maximum).", maxBytes>>20), nil
	case errors.Is(err, media.ErrNotImage):
		return nil, "Téléversez une image valide. Le fichier que vous avez envoyé n'est pas une image ou bien est corrompu.", nil
	case err != nil:
		return nil, "", err
	}
	return img, "", nil
}

// discardImage removes a stored image that is no longer referenced. Failures
// only leave an orphaned file behind, so they are logged and ignored.
func (server *Server) discardImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := server.Media.Delete(ctx, key); err != nil {
		server.Logger.Warn("failed to delete image", "key", key, "error", err)
	}
}
