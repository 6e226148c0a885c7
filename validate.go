package pandoccmd

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alnah/go-pandoc-cmd/internal/dateutil"
)

var (
	dimensionPattern = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)
	colorPattern     = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)
)

// validate checks Snapshot struct tags. Field names in errors are settings IDs.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "pandocformat", func(fl validator.FieldLevel) bool {
		return IsKnownFormat(fl.Field().String())
	})
	mustRegister(v, "pandocdimension", func(fl validator.FieldLevel) bool {
		return dimensionPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "pandoccolor", func(fl validator.FieldLevel) bool {
		return colorPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "pandoctheme", func(fl validator.FieldLevel) bool {
		return IsHighlightTheme(fl.Field().String())
	})
	mustRegister(v, "dateformat", func(fl validator.FieldLevel) bool {
		_, err := dateutil.Layout(fl.Field().String())
		return err == nil
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("pandoccmd: registering validator " + tag + ": " + err.Error())
	}
}

// hexDigits returns color without its leading '#', upper-cased.
func hexDigits(color string) string {
	return strings.ToUpper(strings.TrimPrefix(color, "#"))
}
