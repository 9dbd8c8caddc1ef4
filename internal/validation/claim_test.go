package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFields() map[string]string {
	return map[string]string{
		"platform_name": "Website",
		"full_name":     "Asha Rao",
		"email":         "asha@example.com",
		"phone":         "+919876543210",
		"address":       "12 MG Road",
		"city":          "Pune",
		"pincode":       "411001",
		"order_number":  "1001",
		"order_date":    "2024-11-02",
		"product_type":  "Mattress",
		"product_name":  "Ortho Plus",
		"description":   "  sagging in the middle  ",
	}
}

const (
	testInvoice = "https://bucket.example.com/warranty-claims/1_invoice.pdf"
	testImage   = "https://bucket.example.com/warranty-claims/2_front.jpg"
	testVideo   = "https://bucket.example.com/warranty-claims/3_clip.mp4"
)

func TestValidateClaim_Valid(t *testing.T) {
	claim, err := ValidateClaim(NewClaimInput(validFields(), testInvoice, []string{testImage}, testVideo))

	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", claim.FullName)
	assert.Equal(t, "sagging in the middle", claim.Description)
	assert.Equal(t, time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC), claim.OrderDate)
	assert.Equal(t, []string{testImage}, []string(claim.Images))
	assert.Equal(t, testInvoice, claim.Invoice)
	assert.Equal(t, testVideo, claim.Video)
	assert.Equal(t, 2, claim.SchemaVersion)
	assert.Empty(t, claim.ID)
}

func TestValidateClaim_OptionalFieldsMayBeEmpty(t *testing.T) {
	fields := validFields()
	delete(fields, "city")
	delete(fields, "pincode")
	delete(fields, "description")

	claim, err := ValidateClaim(NewClaimInput(fields, testInvoice, []string{testImage}, testVideo))

	require.NoError(t, err)
	assert.Empty(t, claim.City)
	assert.Empty(t, claim.Description)
	assert.Empty(t, claim.PONumber)
}

func TestValidateClaim_FieldErrors(t *testing.T) {
	fiveImages := []string{testImage, testImage, testImage, testImage, testImage}

	tests := []struct {
		name          string
		mutate        func(map[string]string)
		images        []string
		invoice       string
		video         string
		expectedField string
		expectedMsg   string
	}{
		{
			name:          "missing platform name",
			mutate:        func(f map[string]string) { delete(f, "platform_name") },
			expectedField: "platform_name",
			expectedMsg:   "Platform name is required",
		},
		{
			name:          "blank full name",
			mutate:        func(f map[string]string) { f["full_name"] = "   " },
			expectedField: "full_name",
			expectedMsg:   "Full name is required",
		},
		{
			name:          "invalid email",
			mutate:        func(f map[string]string) { f["email"] = "not-an-email" },
			expectedField: "email",
			expectedMsg:   "Invalid email address",
		},
		{
			name:          "phone too short",
			mutate:        func(f map[string]string) { f["phone"] = "12345" },
			expectedField: "phone",
			expectedMsg:   "Invalid phone number",
		},
		{
			name:          "phone with letters",
			mutate:        func(f map[string]string) { f["phone"] = "98765abc10" },
			expectedField: "phone",
			expectedMsg:   "Invalid phone number",
		},
		{
			name:          "bad order date",
			mutate:        func(f map[string]string) { f["order_date"] = "yesterday" },
			expectedField: "order_date",
			expectedMsg:   "Invalid order date format",
		},
		{
			name:          "missing product name",
			mutate:        func(f map[string]string) { f["product_name"] = "" },
			expectedField: "product_name",
			expectedMsg:   "Product name is required",
		},
		{
			name:          "no images",
			images:        []string{},
			expectedField: "images",
			expectedMsg:   "Images are required",
		},
		{
			name:          "six images",
			images:        append(fiveImages, testImage),
			expectedField: "images",
			expectedMsg:   "Maximum of 5 images allowed",
		},
		{
			name:          "image is a local path",
			images:        []string{"/tmp/upload/front.jpg"},
			expectedField: "images",
			expectedMsg:   "Images must be valid URLs",
		},
		{
			name:          "missing invoice",
			invoice:       " ",
			expectedField: "invoice",
			expectedMsg:   "Invoice is required",
		},
		{
			name:          "missing video",
			video:         " ",
			expectedField: "video",
			expectedMsg:   "Video is required",
		},
		{
			name: "first error wins",
			mutate: func(f map[string]string) {
				f["email"] = "bad"
				f["phone"] = "bad"
			},
			expectedField: "email",
			expectedMsg:   "Invalid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validFields()
			if tt.mutate != nil {
				tt.mutate(fields)
			}
			images := tt.images
			if images == nil {
				images = []string{testImage}
			}
			invoice, video := testInvoice, testVideo
			if tt.invoice != "" {
				invoice = tt.invoice
			}
			if tt.video != "" {
				video = tt.video
			}

			claim, err := ValidateClaim(NewClaimInput(fields, invoice, images, video))

			assert.Nil(t, claim)
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.expectedField, fe.Field)
			assert.Equal(t, tt.expectedMsg, fe.Message)
			assert.Equal(t, tt.expectedMsg, err.Error())
		})
	}
}

func TestParseOrderDate(t *testing.T) {
	for _, s := range []string{"2024-11-02", "2024-11-02T10:30:00Z", "11/02/2024", "Nov 2, 2024", "November 2, 2024"} {
		d, ok := parseOrderDate(s)
		assert.True(t, ok, s)
		assert.Equal(t, 2024, d.Year(), s)
	}

	_, ok := parseOrderDate("2024-13-45")
	assert.False(t, ok)
}
