package validation

import (
	"regexp"
	"strings"

	"refurb-tracker/pkg/category"

	"github.com/go-playground/validator/v10"
)

var (
	phoneRegex  = regexp.MustCompile(`^\+?[0-9 ]{6,20}$`)
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	vatRegex    = regexp.MustCompile(`^[A-Z]{0,2}[0-9]{8,13}$`)
	serialRegex = regexp.MustCompile(`^[A-Za-z0-9\-_/]{3,64}$`)
)

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"device_category": isKnownCategory,
		"phone":           isPhoneNumber,
		"custom_email":    isGoodEmailFormat,
		"vat_number":      isVatNumber,
		"serial":          isSerialNumber,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// isKnownCategory - категория устройства должна быть из справочника
func isKnownCategory(fl validator.FieldLevel) bool {
	return category.IsKnown(fl.Field().String())
}

func isPhoneNumber(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

// isVatNumber - партита IVA / ИНН, допускается префикс страны
func isVatNumber(fl validator.FieldLevel) bool {
	return vatRegex.MatchString(strings.ToUpper(strings.ReplaceAll(fl.Field().String(), " ", "")))
}

func isSerialNumber(fl validator.FieldLevel) bool {
	return serialRegex.MatchString(fl.Field().String())
}
