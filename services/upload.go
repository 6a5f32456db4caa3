package services

import (
	"context"
	"fmt"
	"io"

	"conference-portal-api/models"
	"conference-portal-api/storage"
	"conference-portal-api/utils"
)

const (
	MaxPaperFileSize = 16 << 20
	MaxSlipFileSize  = 5 << 20
)

// Upload is a file handed to a lifecycle operation. Only its metadata ends up on the record.
type Upload struct {
	Name        string
	Size        int64
	ContentType string
	Body        io.Reader
}

type uploadRule struct {
	field      string
	allowed    map[string]bool
	maxSize    int64
	missingMsg string
	typeMsg    string
	sizeMsg    string
}

var (
	paperFileRule = uploadRule{
		field: "file",
		allowed: map[string]bool{
			"application/pdf":    true,
			"application/msword": true,
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
		},
		maxSize:    MaxPaperFileSize,
		missingMsg: "A paper file is required",
		typeMsg:    "Paper file must be a PDF, DOC or DOCX document",
		sizeMsg:    "Paper file must not exceed 16MB",
	}
	slipFileRule = uploadRule{
		field: "slip",
		allowed: map[string]bool{
			"image/jpeg":      true,
			"image/png":       true,
			"application/pdf": true,
		},
		maxSize:    MaxSlipFileSize,
		missingMsg: "A payment slip is required",
		typeMsg:    "Payment slip must be a JPEG, PNG or PDF file",
		sizeMsg:    "Payment slip must not exceed 5MB",
	}
)

func (r uploadRule) check(u *Upload) error {
	if u == nil || u.Body == nil || u.Size <= 0 {
		return invalid(r.field, r.missingMsg)
	}
	if !r.allowed[utils.NormalizeMimeType(u.ContentType)] {
		return invalid(r.field, r.typeMsg)
	}
	if u.Size > r.maxSize {
		return invalid(r.field, r.sizeMsg)
	}
	return nil
}

// store saves a validated upload and returns its metadata.
func (b base) store(ctx context.Context, ownerID, folder string, u *Upload) (models.FileMeta, error) {
	if b.files == nil {
		return models.FileMeta{}, &GatewayError{Op: "store " + folder, Err: fmt.Errorf("no file store configured")}
	}

	contentType := utils.NormalizeMimeType(u.ContentType)
	key := storage.ObjectKey(ownerID, folder, u.Name, b.now())
	path, err := b.files.Save(ctx, key, contentType, u.Body, u.Size)
	if err != nil {
		b.log.ErrorContext(ctx, "file store failure", "folder", folder, "owner_id", ownerID, "error", err)
		return models.FileMeta{}, &GatewayError{Op: "store " + folder, Err: err}
	}

	return models.FileMeta{
		Name:     utils.SanitizeInput(u.Name),
		Size:     u.Size,
		Path:     path,
		MimeType: contentType,
	}, nil
}
