package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"estoque/internal/domain"
	apperror "estoque/internal/errors"
)

// Validator valida payloads de entrada pelas tags `validate` e traduz as falhas
// para apperror.ValidationError.
type Validator struct {
	v *validator.Validate
}

// New cria o validador com o nome JSON dos campos e a regra ean13 registrada.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("ean13", func(fl validator.FieldLevel) bool {
		return domain.IsValidEAN(fl.Field().String())
	})

	return &Validator{v: v}
}

// Struct valida s. Devolve nil ou um ValidationError com a primeira falha.
func (val *Validator) Struct(s interface{}) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperror.NewValidationError("Payload inválido.")
	}

	return apperror.NewValidationError(message(validationErrors[0]))
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("O campo %s é obrigatório.", field)
	case "email":
		return fmt.Sprintf("O campo %s deve ser um email válido.", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("O campo %s deve ter pelo menos %s caracteres.", field, fe.Param())
		}
		return fmt.Sprintf("O campo %s deve ser no mínimo %s.", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("O campo %s deve ter no máximo %s caracteres.", field, fe.Param())
		}
		return fmt.Sprintf("O campo %s deve ser no máximo %s.", field, fe.Param())
	case "gte":
		return fmt.Sprintf("O campo %s deve ser maior ou igual a %s.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("O campo %s deve ser um de: %s.", field, fe.Param())
	case "ean13":
		return fmt.Sprintf("O campo %s deve conter exatamente 13 dígitos.", field)
	}
	return fmt.Sprintf("O campo %s é inválido (%s).", field, fe.Tag())
}
