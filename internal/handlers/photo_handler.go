package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/imaging"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/storage"
)

// Limite do upload antes do reencode (bytes)
const maxPhotoSize = 8 << 20

type PhotoHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
	audit    *audit.Dispatcher
}

func NewPhotoHandler(db *gorm.DB, uploader *storage.Uploader, dispatcher *audit.Dispatcher) *PhotoHandler {
	return &PhotoHandler{db: db, uploader: uploader, audit: dispatcher}
}

// UploadPhoto recebe a foto de perfil (multipart, campo "photo"),
// reencoda em WebP e publica no bucket.
// POST /me/photo
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextBarberID)

	if !h.uploader.Enabled() {
		httperr.Internal(c, "storage_disabled", "armazenamento de fotos não está configurado")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "envie a imagem no campo 'photo'")
		return
	}
	if fileHeader.Size > maxPhotoSize {
		httperr.BadRequest(c, "photo_too_large", "a imagem deve ter no máximo 8MB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, httperr.CodeDataUnavailable, "não foi possível ler a imagem")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
	if err != nil {
		httperr.Internal(c, httperr.CodeDataUnavailable, "não foi possível ler a imagem")
		return
	}

	encoded, err := imaging.ToProfileWebP(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "a imagem deve ser JPEG, PNG ou WebP")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, barberID).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "barbeiro não encontrado")
		return
	}

	key := fmt.Sprintf("barbers/%d/profile.webp", barberID)
	url, err := h.uploader.Upload(c.Request.Context(), key, "image/webp", bytes.NewReader(encoded))
	if err != nil {
		httperr.Internal(c, httperr.CodeDataUnavailable, "não foi possível publicar a imagem")
		return
	}

	barber.PhotoURL = url
	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, httperr.CodeDataUnavailable, "não foi possível salvar a foto")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarberID: &barberID,
		Action:   audit.ActionPhotoUploaded,
		Entity:   "barber",
		EntityID: &barberID,
	})

	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}
