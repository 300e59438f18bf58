package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/medisync/claims-api/internal/model"
)

// ParseClaimForm extracts the claimData JSON string and attachment
// metadata from a multipart claim submission. A missing claimData
// field surfaces later as malformed input; file contents are not read
// here, only their metadata.
func ParseClaimForm(c *gin.Context) (string, []model.Attachment) {
	claimData := c.PostForm("claimData")

	var attachments []model.Attachment
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["documents"] {
			attachments = append(attachments, model.Attachment{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				SizeBytes:   fh.Size,
			})
		}
	}
	return claimData, attachments
}
