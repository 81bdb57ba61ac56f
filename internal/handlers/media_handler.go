package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpcut-app/barber-marketplace/internal/httperr"
	"github.com/sharpcut-app/barber-marketplace/internal/media"
	"github.com/sharpcut-app/barber-marketplace/internal/middleware"
	"github.com/sharpcut-app/barber-marketplace/internal/models"
)

const maxAvatarUploadBytes = 5 << 20 // 5 MB

type MediaHandler struct {
	db       *gorm.DB
	uploader *media.Uploader
}

func NewMediaHandler(db *gorm.DB, uploader *media.Uploader) *MediaHandler {
	return &MediaHandler{db: db, uploader: uploader}
}

// UploadAvatar troca o avatar da barbearia: converte para WebP,
// publica no bucket e grava a URL no perfil.
func (h *MediaHandler) UploadAvatar(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Arquivo obrigatório.")
		return
	}
	if fileHeader.Size > maxAvatarUploadBytes {
		httperr.BadRequest(c, "file_too_large", "Arquivo acima do limite.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Erro ao ler arquivo.")
		return
	}
	defer file.Close()

	url, err := h.uploader.UploadAvatar(c.Request.Context(), barbershopID, file)
	if err != nil {
		writeBusinessError(c, err, "failed_to_upload_avatar")
		return
	}

	if err := h.db.
		Model(&models.Barbershop{}).
		Where("id = ?", barbershopID).
		Update("avatar_url", url).Error; err != nil {

		httperr.Internal(c, "failed_to_save_avatar", "Erro ao salvar avatar.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
