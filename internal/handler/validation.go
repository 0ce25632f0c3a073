package handler

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// NewValidator builds the request validator with the custom password rules.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("hasupper", func(fl validator.FieldLevel) bool {
		return strings.ContainsFunc(fl.Field().String(), unicode.IsUpper)
	})
	_ = v.RegisterValidation("hasdigit", func(fl validator.FieldLevel) bool {
		return strings.ContainsFunc(fl.Field().String(), unicode.IsDigit)
	})
	return v
}

// firstValidationMessage translates the first failed rule into the fixed
// client-facing message for that field. Clients match on these strings.
func firstValidationMessage(err error) string {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return "Dados inválidos."
	}

	fe := fieldErrs[0]
	switch fe.Field() {
	case "Name":
		return "Nome muito curto"
	case "Email":
		return "E-mail inválido"
	case "Password":
		switch fe.Tag() {
		case "hasupper":
			return "Inclua 1 letra maiúscula"
		case "hasdigit":
			return "Inclua 1 número"
		case "containsany":
			return "Inclua 1 caractere especial (@$!%*?&)"
		default:
			return "Mínimo 8 caracteres"
		}
	case "Age":
		return "Idade inválida"
	case "AvatarURL":
		return "URL inválida"
	case "Title", "Type":
		return "Campos obrigatórios: title, type"
	default:
		return "Dados inválidos."
	}
}
