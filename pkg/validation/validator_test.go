package validation

import (
	"errors"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleCreate struct {
	Category string  `validate:"required,device_category"`
	Grade    string  `validate:"omitempty,oneof=A B C D"`
	Phone    string  `validate:"omitempty,phone"`
	Email    string  `validate:"omitempty,custom_email"`
	Price    float64 `validate:"gte=0"`
}

type samplePatch struct {
	Category null.String  `validate:"omitempty,device_category"`
	Price    null.Float64 `validate:"omitempty,gte=0"`
	Quantity null.Int     `validate:"omitempty,min=1"`
	VAT      null.String  `validate:"omitempty,vat_number"`
}

func failedTags(t *testing.T, err error) []string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	tags := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		tags = append(tags, fe.Field()+":"+fe.Tag())
	}
	return tags
}

func TestValidator_Rules(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&sampleCreate{Category: "Smartphone", Grade: "A", Phone: "+39 333 1234567", Email: "a@b.it"}))

	err := v.Validate(&sampleCreate{Category: "Frigorifero", Grade: "Z", Phone: "abc", Email: "nope", Price: -1})
	assert.ElementsMatch(t, []string{
		"Category:device_category", "Grade:oneof", "Phone:phone", "Email:custom_email", "Price:gte",
	}, failedTags(t, err))
}

func TestValidator_NullTypes(t *testing.T) {
	v := New()

	// неустановленные поля пропускаются
	assert.NoError(t, v.Validate(&samplePatch{}))

	assert.NoError(t, v.Validate(&samplePatch{
		Category: null.StringFrom("Notebook"),
		Price:    null.Float64From(10),
		Quantity: null.IntFrom(2),
		VAT:      null.StringFrom("IT 01234567890"),
	}))

	err := v.Validate(&samplePatch{
		Category: null.StringFrom("???"),
		Price:    null.Float64From(-5),
		Quantity: null.IntFrom(-1),
		VAT:      null.StringFrom("x"),
	})
	assert.ElementsMatch(t, []string{
		"Category:device_category", "Price:gte", "Quantity:min", "VAT:vat_number",
	}, failedTags(t, err))
}

func TestValidator_UsesJSONFieldNames(t *testing.T) {
	type payload struct {
		ItemCode string `json:"item_code" validate:"required"`
		Brand    string `validate:"required"`
	}

	err := New().Validate(&payload{})
	assert.ElementsMatch(t, []string{"item_code:required", "Brand:required"}, failedTags(t, err))
}
