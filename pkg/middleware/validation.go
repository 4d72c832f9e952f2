package middleware

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/garage-platform/garage-api/pkg/errors"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// InitValidator initializes the validator with custom validators
func InitValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		registerCustomValidators(validate)

		// Use JSON tag names for error messages
		validate.RegisterTagNameFunc(jsonTagName)

		// Set the same validators on Gin's default validator
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerCustomValidators(v)
			v.RegisterTagNameFunc(jsonTagName)
		}
	})

	return validate
}

func registerCustomValidators(v *validator.Validate) {
	_ = v.RegisterValidation("part_number", validatePartNumber)
	_ = v.RegisterValidation("registration_no", validateRegistrationNo)
	_ = v.RegisterValidation("phone", validatePhone)
	_ = v.RegisterValidation("gstin", validateGSTIN)
	_ = v.RegisterValidation("recon_mode", validateReconMode)
	_ = v.RegisterValidation("safe_string", validateSafeString)
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return fld.Name
	}
	return name
}

// Custom validators

var (
	partNumberRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{2,49}$`)
	// Registration plates: state code, district number, optional series, serial
	registrationRegex = regexp.MustCompile(`^[A-Z]{2}[- ]?\d{1,2}[- ]?[A-Z]{0,3}[- ]?\d{1,4}$`)
	phoneRegex        = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	gstinRegex        = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][0-9A-Z]Z[0-9A-Z]$`)
	safeStringRegex   = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.,!?@#$%&*()+=:;'"<>\/\[\]{}|\\~\x60]+$`)
)

func validatePartNumber(fl validator.FieldLevel) bool {
	return partNumberRegex.MatchString(fl.Field().String())
}

func validateRegistrationNo(fl validator.FieldLevel) bool {
	return registrationRegex.MatchString(strings.ToUpper(fl.Field().String()))
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

func validateGSTIN(fl validator.FieldLevel) bool {
	return gstinRegex.MatchString(fl.Field().String())
}

func validateReconMode(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	validModes := map[string]bool{
		"edit":    true,
		"add":     true,
		"update":  true,
		"replace": true,
	}
	return validModes[value]
}

func validateSafeString(fl validator.FieldLevel) bool {
	return safeStringRegex.MatchString(fl.Field().String())
}

func formatFieldErrors(err error) map[string]string {
	fields := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			fields[field] = formatValidationError(e)
		}
	}

	return fields
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	case "part_number":
		return "must be a valid part number (uppercase alphanumeric with dashes)"
	case "registration_no":
		return "must be a valid vehicle registration number"
	case "phone":
		return "must be a valid phone number"
	case "gstin":
		return "must be a valid GSTIN"
	case "recon_mode":
		return "must be one of: edit, add, update, replace"
	case "safe_string":
		return "contains invalid characters"
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}

// BindAndValidate binds request body and validates it
func BindAndValidate(c *gin.Context, obj interface{}) *errors.AppError {
	if err := c.ShouldBindJSON(obj); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			fields := formatFieldErrors(validationErrors)
			return errors.ErrValidationWithFields("validation failed", fields)
		}
		return errors.ErrBadRequest("invalid request body: " + err.Error())
	}
	return nil
}

func sanitizeString(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.TrimSpace(s)
	return s
}

// InputSanitizer middleware sanitizes string inputs
func InputSanitizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Request.URL.Query()
		for key, values := range query {
			for i, v := range values {
				values[i] = sanitizeString(v)
			}
			query[key] = values
		}
		c.Request.URL.RawQuery = query.Encode()

		c.Next()
	}
}

// ContentType middleware ensures proper content type for POST/PUT/PATCH
func ContentType() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "POST" || c.Request.Method == "PUT" || c.Request.Method == "PATCH" {
			contentType := c.GetHeader("Content-Type")
			if contentType == "" || !strings.HasPrefix(contentType, "application/json") {
				// Allow empty body for some endpoints
				if c.Request.ContentLength > 0 {
					AbortWithAppError(c, &errors.AppError{
						Code:       "INVALID_CONTENT_TYPE",
						Message:    "Content-Type must be application/json",
						HTTPStatus: 415,
					})
					return
				}
			}
		}
		c.Next()
	}
}
