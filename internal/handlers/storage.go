package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/minhph/resourcehub/internal/services"
	"github.com/minhph/resourcehub/pkg/response"
)

type StorageHandler struct {
	storageService *services.StorageService
}

func NewStorageHandler(storageService *services.StorageService) *StorageHandler {
	return &StorageHandler{storageService: storageService}
}

// Upload stores a file in the named bucket and returns its public URL.
// POST /api/storage/:bucket
func (h *StorageHandler) Upload(c *gin.Context) {
	bucket := c.Param("bucket")
	if !services.ValidBucket(bucket) {
		response.BadRequest(c, "unknown bucket")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file required")
		return
	}

	url, err := h.storageService.Save(bucket, file)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Created(c, gin.H{"url": url})
}
