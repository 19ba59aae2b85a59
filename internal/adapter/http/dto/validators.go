package dto

import (
	"fmt"
	"html"
	"reflect"
	"regexp"
	"strings"

	"nft-royalty-vault/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var safeStringRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.:]+$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("safe_id", validateSafeID)
		_ = v.RegisterValidation("identity", validateIdentity)
	}
}

// validateSafeID allows alphanumeric, underscore, dash, dot and colon.
func validateSafeID(fl validator.FieldLevel) bool {
	return safeStringRe.MatchString(fl.Field().String())
}

// validateIdentity accepts a base58 string decoding to 32 bytes.
func validateIdentity(fl validator.FieldLevel) bool {
	_, err := domain.ParseIdentity(fl.Field().String())
	return err == nil
}

// ParseIdentity decodes a validated identity field. An empty string yields fallback.
func ParseIdentity(field, raw string, fallback domain.Identity) (domain.Identity, error) {
	if raw == "" {
		return fallback, nil
	}
	id, err := domain.ParseIdentity(raw)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%s: invalid identity", field)
	}
	return id, nil
}

// SanitizeStruct trims whitespace and HTML-escapes every exported string
// field (including *string) of a struct pointer.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				elem.SetString(sanitize(elem.String()))
			}
		}
	}
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
