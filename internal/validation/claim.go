package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"warranty-service/internal/domain"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\+?\d{10,15}$`)

var orderDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// FieldError is the first rule a submission broke.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Message
}

// ClaimInput is a raw claim submission: form values plus the URLs of the
// already uploaded media.
type ClaimInput struct {
	PlatformName string   `field:"platform_name" validate:"required"`
	FullName     string   `field:"full_name" validate:"required"`
	Email        string   `field:"email" validate:"required,email"`
	Phone        string   `field:"phone" validate:"required,phone"`
	Address      string   `field:"address" validate:"required"`
	City         string   `field:"city"`
	Pincode      string   `field:"pincode"`
	OrderNumber  string   `field:"order_number" validate:"required"`
	OrderDate    string   `field:"order_date" validate:"required,orderdate"`
	ProductType  string   `field:"product_type" validate:"required"`
	ProductName  string   `field:"product_name" validate:"required"`
	Description  string   `field:"description"`
	Invoice      string   `field:"invoice" validate:"required,url"`
	Images       []string `field:"images" validate:"min=1,max=5,dive,url"`
	Video        string   `field:"video" validate:"required,url"`
	PONumber     string   `field:"po_number"`
}

// NewClaimInput maps submitted form values onto a ClaimInput. Unknown keys
// are ignored and every value is trimmed.
func NewClaimInput(fields map[string]string, invoice string, images []string, video string) ClaimInput {
	get := func(k string) string { return strings.TrimSpace(fields[k]) }
	trimmed := make([]string, 0, len(images))
	for _, img := range images {
		trimmed = append(trimmed, strings.TrimSpace(img))
	}
	return ClaimInput{
		PlatformName: get("platform_name"),
		FullName:     get("full_name"),
		Email:        get("email"),
		Phone:        get("phone"),
		Address:      get("address"),
		City:         get("city"),
		Pincode:      get("pincode"),
		OrderNumber:  get("order_number"),
		OrderDate:    get("order_date"),
		ProductType:  get("product_type"),
		ProductName:  get("product_name"),
		Description:  get("description"),
		Invoice:      strings.TrimSpace(invoice),
		Images:       trimmed,
		Video:        strings.TrimSpace(video),
		PONumber:     get("po_number"),
	}
}

var messages = map[string]map[string]string{
	"platform_name": {"required": "Platform name is required"},
	"full_name":     {"required": "Full name is required"},
	"email":         {"required": "Email is required", "email": "Invalid email address"},
	"phone":         {"required": "Phone number is required", "phone": "Invalid phone number"},
	"address":       {"required": "Address is required"},
	"order_number":  {"required": "Order number is required"},
	"order_date":    {"required": "Order date is required", "orderdate": "Invalid order date format"},
	"product_type":  {"required": "Product type is required"},
	"product_name":  {"required": "Product name is required"},
	"invoice":       {"required": "Invoice is required", "url": "Invoice must be a valid URL"},
	"images":        {"min": "Images are required", "max": "Maximum of 5 images allowed", "url": "Images must be valid URLs"},
	"video":         {"required": "Video is required", "url": "Video must be a valid URL"},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("field")
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("orderdate", func(fl validator.FieldLevel) bool {
		_, ok := parseOrderDate(fl.Field().String())
		return ok
	})
	return v
}

// ValidateClaim checks in against the claim schema and returns the record
// ready to be stored, or the first *FieldError.
func ValidateClaim(in ClaimInput) (*domain.WarrantyClaim, error) {
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, toFieldError(verrs[0])
		}
		return nil, err
	}

	orderDate, _ := parseOrderDate(in.OrderDate)
	images := make([]string, len(in.Images))
	copy(images, in.Images)

	return &domain.WarrantyClaim{
		SchemaVersion: domain.ClaimSchemaVersion,
		PlatformName:  in.PlatformName,
		FullName:      in.FullName,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		City:          in.City,
		Pincode:       in.Pincode,
		OrderNumber:   in.OrderNumber,
		OrderDate:     orderDate,
		ProductType:   in.ProductType,
		ProductName:   in.ProductName,
		Description:   in.Description,
		Invoice:       in.Invoice,
		Images:        images,
		Video:         in.Video,
		PONumber:      in.PONumber,
	}, nil
}

func toFieldError(fe validator.FieldError) *FieldError {
	field := fe.Field()
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i]
	}
	if msg, ok := messages[field][fe.Tag()]; ok {
		return &FieldError{Field: field, Message: msg}
	}
	return &FieldError{Field: field, Message: "Invalid value for " + field}
}

func parseOrderDate(s string) (time.Time, bool) {
	for _, layout := range orderDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
