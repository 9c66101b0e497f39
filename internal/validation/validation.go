package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hollowaylabs/vitrine/internal/types"
)

// Limits for user-supplied request fields.
const (
	MaxProductIDLength = 64
	MaxFacetLength     = 100
	MaxFacetEntries    = 50
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Collector accumulates validation errors without failing on first.
type Collector struct {
	errors []ValidationError
}

// Add appends a validation error to the collector if non-nil.
func (c *Collector) Add(err *ValidationError) {
	if err != nil {
		c.errors = append(c.errors, *err)
	}
}

// HasErrors returns true if the collector has accumulated any errors.
func (c *Collector) HasErrors() bool {
	return len(c.errors) > 0
}

// Errors returns all accumulated validation errors.
func (c *Collector) Errors() []ValidationError {
	return c.errors
}

// ValidateUTF8 returns an error if the value is not valid UTF-8.
func ValidateUTF8(field, value string) *ValidationError {
	if !utf8.ValidString(value) {
		return &ValidationError{
			Field:   field,
			Message: "must be valid UTF-8",
		}
	}
	return nil
}

// ValidateNoNullBytes returns an error if the value contains null bytes.
func ValidateNoNullBytes(field, value string) *ValidationError {
	if strings.Contains(value, "\x00") {
		return &ValidationError{
			Field:   field,
			Message: "must not contain null bytes",
		}
	}
	return nil
}

// ValidateMaxLength returns an error if the value exceeds max runes.
func ValidateMaxLength(field, value string, max int) *ValidationError {
	if utf8.RuneCountInString(value) > max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("exceeds maximum length of %d characters", max),
		}
	}
	return nil
}

// ValidateULID returns an error if the value is not a valid ULID format.
// ULIDs are 26 characters using Crockford Base32 (excludes I, L, O, U).
func ValidateULID(field, value string) *ValidationError {
	if len(value) != 26 {
		return &ValidationError{
			Field:   field,
			Message: "must be a valid ULID (26 characters)",
		}
	}

	// Crockford Base32 alphabet: 0123456789ABCDEFGHJKMNPQRSTVWXYZ
	// Excludes: I, L, O, U (to avoid confusion)
	const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
	for _, r := range value {
		upper := strings.ToUpper(string(r))
		if !strings.Contains(crockfordBase32, upper) {
			return &ValidationError{
				Field:   field,
				Message: "must be a valid ULID (invalid character)",
			}
		}
	}
	return nil
}

// ValidateRequired returns an error if the value is empty or whitespace-only.
func ValidateRequired(field, value string) *ValidationError {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   field,
			Message: "is required",
		}
	}
	return nil
}

// ValidateEnum returns an error if the value is not in the allowed list.
func ValidateEnum(field, value string, allowed []string) *ValidationError {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// ValidatePreferences validates a recommendation request's preferences.
// Unset fields are fine; Normalize fills them later. Set fields must be
// well-formed so the prompt builder never sees junk.
func ValidatePreferences(prefs types.Preferences) []ValidationError {
	var c Collector

	if prefs.PriceRange != "" {
		allowed := make([]string, 0, len(types.PriceRanges()))
		for _, pr := range types.PriceRanges() {
			allowed = append(allowed, string(pr))
		}
		c.Add(ValidateEnum("priceRange", string(prefs.PriceRange), allowed))
	}

	c.Add(validateFacetList("categories", prefs.Categories))
	c.Add(validateFacetList("brands", prefs.Brands))

	return c.Errors()
}

// ValidateViewRequest validates a browsing history view event.
func ValidateViewRequest(req types.ViewRequest) []ValidationError {
	var c Collector

	c.Add(ValidateRequired("product_id", req.ProductID))
	c.Add(ValidateUTF8("product_id", req.ProductID))
	c.Add(ValidateNoNullBytes("product_id", req.ProductID))
	c.Add(ValidateMaxLength("product_id", req.ProductID, MaxProductIDLength))

	return c.Errors()
}

func validateFacetList(field string, values []string) *ValidationError {
	if len(values) > MaxFacetEntries {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("exceeds maximum of %d entries", MaxFacetEntries),
		}
	}
	for i, v := range values {
		itemField := fmt.Sprintf("%s[%d]", field, i)
		if err := ValidateRequired(itemField, v); err != nil {
			return err
		}
		if err := ValidateUTF8(itemField, v); err != nil {
			return err
		}
		if err := ValidateMaxLength(itemField, v, MaxFacetLength); err != nil {
			return err
		}
	}
	return nil
}
