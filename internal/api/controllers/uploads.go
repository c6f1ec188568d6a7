package controllers

import (
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes bounds a single multipart file read. Large originals are
// fine, the normalizer shrinks them, but unbounded reads are not.
const maxUploadBytes = 20 << 20

func readFormFile(c *gin.Context, field string) ([]byte, string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, "", err
	}
	return readMultipartFile(header)
}

func readMultipartFile(header *multipart.FileHeader) ([]byte, string, error) {
	file, err := header.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}
