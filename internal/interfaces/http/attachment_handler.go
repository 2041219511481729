package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thesarya/expense/internal/application/attachments"
	"github.com/thesarya/expense/internal/application/dto"
	"github.com/thesarya/expense/internal/domain"
)

// AttachmentHandler handles receipt uploads to the blob store.
type AttachmentHandler struct {
	uc *attachments.UseCase
}

// NewAttachmentHandler builds the handler.
func NewAttachmentHandler(uc *attachments.UseCase) *AttachmentHandler {
	return &AttachmentHandler{uc: uc}
}

// Upload godoc
// @Summary      Upload a receipt or document
// @Description  Multipart upload. Accepts images, PDF and Word/Excel documents
//               up to the configured size cap and returns the public URL.
// @Tags         attachments
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "File to upload"
// @Success      201   {object}  dto.AttachmentDTO
// @Failure      413   {object}  dto.ErrorResponse
// @Failure      415   {object}  dto.ErrorResponse
// @Router       /api/attachments [post]
func (h *AttachmentHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "multipart field 'file' is required"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "could not read uploaded file"})
	}
	defer f.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	out, err := h.uc.Upload(c.Context(), GetCentre(c), fileHeader.Filename, contentType, fileHeader.Size, f)
	if err != nil {
		switch err {
		case domain.ErrFileTooLarge:
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "file exceeds the upload size cap"})
		case domain.ErrUnsupportedFile:
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(dto.ErrorResponse{Code: "UNSUPPORTED_FILE", Message: "file type not allowed"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "file name and centre are required"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Remove godoc
// @Summary      Delete an uploaded file by object name
// @Tags         attachments
// @Security     Bearer
// @Param        object  query  string  true  "Object name returned at upload time"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/attachments [delete]
func (h *AttachmentHandler) Remove(c *fiber.Ctx) error {
	object := c.Query("object")
	if object == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "object query parameter is required"})
	}
	if err := h.uc.Remove(c.Context(), object); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
