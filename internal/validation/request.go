package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/hotelcal/internal/models"
	"github.com/julianstephens/hotelcal/internal/utils"
)

// ErrInvalidRequest wraps every struct validation failure.
var ErrInvalidRequest = errors.New("invalid request")

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("datekey", func(fl validator.FieldLevel) bool {
		return utils.ValidateDateKey(fl.Field().String())
	})
}

// reversedRange reports whether to lies before from. Malformed keys are left
// to the datekey tag.
func reversedRange(from, to string) bool {
	f, err := utils.ParseDateKey(from)
	if err != nil {
		return false
	}
	t, err := utils.ParseDateKey(to)
	if err != nil {
		return false
	}
	return t.Before(f)
}

// ValidateStruct validates s and returns a message per invalid field, keyed by
// its JSON name. A nil map means s is valid.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": err.Error()}
	}

	fields := make(map[string]string)
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			fields[field] = "This field is required"
		case "datekey":
			fields[field] = "Must be a YYYY-MM-DD date"
		case "oneof":
			fields[field] = "Must be one of: " + fe.Param()
		case "gte":
			fields[field] = "Value must be at least " + fe.Param()
		case "lte":
			fields[field] = "Value must be at most " + fe.Param()
		default:
			fields[field] = "Invalid value"
		}
	}
	return fields
}

// CheckBulkEdit validates a bulk edit request and folds the field messages
// into one error wrapping ErrInvalidRequest. A range that ends before it
// starts is valid here and simply covers no dates.
func CheckBulkEdit(req models.BulkEditRequest) error {
	return fold(ValidateStruct(req))
}

// CheckBulkEditForm is CheckBulkEdit plus the rule that to_date must not be
// before from_date. Forms and flags use it so a typo is caught before submit.
func CheckBulkEditForm(req models.BulkEditRequest) error {
	fields := ValidateStruct(req)
	if reversedRange(req.FromDate, req.ToDate) {
		if fields == nil {
			fields = make(map[string]string)
		}
		fields["to_date"] = "Must not be before " + req.FromDate
	}
	return fold(fields)
}

// CheckDateRange applies the form range rule to two date keys.
func CheckDateRange(from, to string) error {
	if reversedRange(from, to) {
		return fmt.Errorf("%w: to_date: Must not be before %s", ErrInvalidRequest, from)
	}
	return nil
}

func fold(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %s", name, fields[name])
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(parts, "; "))
}
