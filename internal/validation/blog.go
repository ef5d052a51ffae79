// Package validation provides input validation utilities
package validation

import (
	"errors"
	"strings"

	"blogpessoal/internal/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	MinTituloLen = 3
	MaxTituloLen = 100
	MinTextoLen  = 5
	MaxTextoLen  = 1000
	MaxNomeLen   = 255
	MaxFotoLen   = 5000
	MinSenhaLen  = 8
	MaxSenhaLen  = 72 // bcrypt ignores bytes past 72
)

// notBlank rejects strings made only of whitespace.
func notBlank(message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return errors.New(message)
		}
		return nil
	})
}

// ValidatePostagem checks titulo, texto and the presence of a tema reference.
func ValidatePostagem(titulo, texto string, temaID uint) error {
	return toAppError(validation.Errors{
		"titulo": validation.Validate(titulo,
			validation.Required.Error("O atributo título é obrigatório"),
			notBlank("O atributo título não pode estar em branco"),
			validation.RuneLength(MinTituloLen, MaxTituloLen).
				Error("O atributo título deve conter no mínimo 03 e no máximo 100 caracteres"),
		),
		"texto": validation.Validate(texto,
			validation.Required.Error("O atributo texto é obrigatório"),
			notBlank("O atributo texto não pode estar em branco"),
			validation.RuneLength(MinTextoLen, MaxTextoLen).
				Error("O atributo texto deve conter no mínimo 05 e no máximo 1000 caracteres"),
		),
		"tema": validation.Validate(temaID,
			validation.Required.Error("O atributo tema é obrigatório"),
		),
	}.Filter())
}

// ValidateTema checks the tema description.
func ValidateTema(descricao string) error {
	return toAppError(validation.Errors{
		"descricao": validation.Validate(descricao,
			validation.Required.Error("O atributo Descrição é obrigatório"),
			notBlank("O atributo Descrição não pode estar em branco"),
			validation.RuneLength(1, MaxNomeLen),
		),
	}.Filter())
}

// ValidateUsuario checks registration and update payloads.
func ValidateUsuario(nome, usuario, senha, foto string) error {
	return toAppError(validation.Errors{
		"nome": validation.Validate(nome,
			validation.Required.Error("O atributo nome é obrigatório"),
			notBlank("O atributo nome não pode estar em branco"),
			validation.RuneLength(1, MaxNomeLen),
		),
		"usuario": validation.Validate(usuario,
			validation.Required.Error("O atributo usuário é obrigatório"),
			is.EmailFormat.Error("O atributo usuário deve ser um email válido"),
			validation.RuneLength(1, MaxNomeLen),
		),
		"senha": validation.Validate(senha,
			validation.Required.Error("O atributo senha é obrigatório"),
			validation.Length(MinSenhaLen, MaxSenhaLen).
				Error("A senha deve conter no mínimo 8 caracteres"),
		),
		"foto": validation.Validate(foto,
			validation.RuneLength(0, MaxFotoLen),
		),
	}.Filter())
}

// ValidateLogin checks that both credentials are present.
func ValidateLogin(usuario, senha string) error {
	return toAppError(validation.Errors{
		"usuario": validation.Validate(usuario, validation.Required.Error("O atributo usuário é obrigatório")),
		"senha":   validation.Validate(senha, validation.Required.Error("O atributo senha é obrigatório")),
	}.Filter())
}

// toAppError converts ozzo errors into a VALIDATION_ERROR AppError.
func toAppError(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return models.NewValidationError(err.Error())
	}
	fields := make(map[string]string, len(errs))
	for field, fieldErr := range errs {
		fields[field] = fieldErr.Error()
	}
	return models.NewFieldValidationError(errs.Error(), fields)
}
