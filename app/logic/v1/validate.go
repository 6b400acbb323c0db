package v1

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/resourcehub/resourcehub/pkg/i18n"
	"github.com/resourcehub/resourcehub/pkg/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// 使用 json tag 作为字段名，与前端表单字段保持一致
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var requiredMessages = map[string]string{
	"title":       i18n.VALIDATE_TITLE_REQUIRED,
	"description": i18n.VALIDATE_DESCRIPTION_REQUIRED,
	"url":         i18n.VALIDATE_URL_REQUIRED,
}

// ValidateResourceForm returns one i18n message key per failing field, or nil.
func ValidateResourceForm(form types.ResourceForm) types.FieldErrors {
	err := validate.Struct(form.Trimmed())
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return types.FieldErrors{"form": i18n.VALIDATE_FIELD_INVALID}
	}

	res := make(types.FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if res.Has(field) {
			continue
		}
		switch fe.Tag() {
		case "required":
			if msg, ok := requiredMessages[field]; ok {
				res[field] = msg
				continue
			}
		case "url":
			res[field] = i18n.VALIDATE_URL_INVALID
			continue
		}
		res[field] = i18n.VALIDATE_FIELD_INVALID
	}
	return res
}
