package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/vidtube/services/content-service/internal/middleware"
	"github.com/yourorg/vidtube/services/content-service/internal/services"
	"github.com/yourorg/vidtube/services/content-service/internal/utils"
)

type MediaHandler struct {
	svc *services.MediaService
}

func NewMediaHandler(svc *services.MediaService) *MediaHandler {
	return &MediaHandler{svc: svc}
}

// PATCH /api/v1/users/avatar (multipart/form-data 'avatar')
func (h *MediaHandler) UploadAvatar(c *fiber.Ctx) error {
	uid, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.Unauthorized("user not found in request")
	}
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return utils.BadRequest("avatar file is required")
	}
	f, err := fileHeader.Open()
	if err != nil {
		return utils.Internal("cannot open uploaded file")
	}
	defer f.Close()
	data := make([]byte, fileHeader.Size)
	if _, err := f.Read(data); err != nil {
		return utils.Internal("cannot read uploaded file")
	}

	ct := fileHeader.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(data)
	}

	url, err := h.svc.UploadAvatar(c.Context(), uid, fileHeader.Filename, ct, data)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"avatar": url}, "avatar updated successfully")
}
