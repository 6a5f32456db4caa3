package controllers

import (
	"io"
	"net/http"

	"conference-portal-api/services"
	"conference-portal-api/utils"

	"github.com/gin-gonic/gin"
)

// readUpload opens a multipart file and sniffs its content type. A missing file yields a nil
// upload so the service reports it as a validation failure.
func readUpload(c *gin.Context, field string) (*services.Upload, io.Closer, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}

	contentType, err := sniff(file, header.Header.Get("Content-Type"))
	if err != nil {
		file.Close()
		return nil, nil, err
	}

	return &services.Upload{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: contentType,
		Body:        file,
	}, file, nil
}

// sniff returns the detected content type. The declared type is only trusted for a generic OLE
// container declared as a Word document; anything undetectable stays application/octet-stream
// and fails the type checks.
func sniff(r io.ReadSeeker, declared string) (string, error) {
	detected, err := utils.DetectContentType(r)
	if err != nil {
		return "", err
	}
	if detected == oleStorage && utils.NormalizeMimeType(declared) == msWord {
		return msWord, nil
	}
	return detected, nil
}

const (
	oleStorage = "application/x-ole-storage"
	msWord     = "application/msword"
)
