package utils

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
)

// ReadFormFile reads a multipart file field, refusing files larger than max bytes
func ReadFormFile(c *gin.Context, field string, max int64) ([]byte, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing form file %q: %w", field, err)
	}
	if header.Size > max {
		return nil, fmt.Errorf("file %q exceeds %d bytes", field, max)
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open form file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, max+1))
	if err != nil {
		return nil, fmt.Errorf("read form file: %w", err)
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("file %q exceeds %d bytes", field, max)
	}
	return data, nil
}
