package controller

import (
	"academic_portal_backend/internal/service"
	"academic_portal_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	StorageService *service.StorageService
}

func NewUploadController(storageService *service.StorageService) *UploadController {
	return &UploadController{StorageService: storageService}
}

// Upload godoc
// @Summary Upload a file
// @Description Stores the file and returns its URL, for attaching to submissions and portfolio evidence.
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "file to upload"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Security BearerAuth
// @Router /api/upload [post]
func (c *UploadController) Upload(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.FromError(ctx, util.Internal(err))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, stored, err := c.StorageService.Upload(ctx.Request.Context(), fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		util.FromError(ctx, util.Internal(err))
		return
	}

	util.Created(ctx, gin.H{
		"url":      url,
		"filename": stored,
	})
}

// Delete godoc
// @Summary Delete an uploaded file
// @Description Teachers only. The path is the stored filename returned by upload.
// @Tags files
// @Produce json
// @Param file path string true "stored filename"
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/upload/{file} [delete]
func (c *UploadController) Delete(ctx *gin.Context) {
	filename := strings.TrimPrefix(ctx.Param("file"), "/")
	if filename == "" || strings.Contains(filename, "..") {
		util.BadRequest(ctx, "invalid filename")
		return
	}

	if err := c.StorageService.Delete(ctx.Request.Context(), filename); err != nil {
		util.FromError(ctx, util.Internal(err))
		return
	}
	util.Success(ctx, nil)
}
