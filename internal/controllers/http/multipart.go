package http

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"warranty-service/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	DefaultMaxFileBytes int64 = 5 << 20

	maxFieldBytes int64 = 64 << 10
)

// fileFieldLimits is the number of files accepted per multipart field.
var fileFieldLimits = map[string]int{
	"invoice": 1,
	"images":  services.MaxClaimImages,
	"video":   1,
}

// FormError is a malformed multipart request.
type FormError struct {
	Message string
}

func (e *FormError) Error() string {
	return e.Message
}

var errInvalidMultipart = &FormError{Message: "Invalid multipart form"}

// maxRequestBytes caps the whole body. Oversized files are rejected per part
// long before this is reached.
func maxRequestBytes(maxFileBytes int64) int64 {
	files := 0
	for _, n := range fileFieldLimits {
		files += n
	}
	return int64(files)*maxFileBytes + 1<<20
}

// readClaimSubmission streams a claim form part by part, enforcing the
// per-field file counts and the per-file size limit as soon as a part
// breaks them.
func readClaimSubmission(c *gin.Context, maxFileBytes int64) (services.ClaimSubmission, error) {
	sub := services.ClaimSubmission{Fields: make(map[string]string)}

	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return sub, errInvalidMultipart
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes(maxFileBytes))
	mr, err := c.Request.MultipartReader()
	if err != nil {
		return sub, errInvalidMultipart
	}

	counts := make(map[string]int, len(fileFieldLimits))
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sub, errInvalidMultipart
		}

		field := part.FormName()
		if part.FileName() == "" {
			value, ok, err := readLimited(part, maxFieldBytes)
			if err != nil {
				return sub, errInvalidMultipart
			}
			if !ok {
				return sub, &FormError{Message: "Field value too long: " + field}
			}
			if _, seen := sub.Fields[field]; !seen {
				sub.Fields[field] = string(value)
			}
			continue
		}

		counts[field]++
		if limit, ok := fileFieldLimits[field]; !ok || counts[field] > limit {
			return sub, &FormError{Message: "Max files exceeded for field: " + field}
		}

		a, err := readAttachment(part, maxFileBytes)
		if err != nil {
			return sub, err
		}

		switch field {
		case "invoice":
			sub.Invoice = a
		case "video":
			sub.Video = a
		default:
			sub.Images = append(sub.Images, a)
		}
	}

	return sub, nil
}

// readLimited reads r, reporting false as soon as it holds more than limit bytes.
func readLimited(r io.Reader, limit int64) ([]byte, bool, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, false, err
	}
	return b, int64(len(b)) <= limit, nil
}

func readAttachment(part *multipart.Part, maxFileBytes int64) (*services.Attachment, error) {
	field := part.FormName()
	body, ok, err := readLimited(part, maxFileBytes)
	if err != nil {
		return nil, errInvalidMultipart
	}
	if !ok {
		return nil, &FormError{Message: "File size too large for field: " + field}
	}

	contentType := part.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	return &services.Attachment{
		Name:        part.FileName(),
		ContentType: contentType,
		Body:        body,
	}, nil
}
