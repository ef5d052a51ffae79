package validation

import (
	"errors"
	"strings"
	"testing"

	"blogpessoal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T", err)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	return appErr.Fields
}

func TestValidatePostagem(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		titulo    string
		texto     string
		temaID    uint
		wantField string
	}{
		{"Valid", "Primeiro post", "Conteúdo do post", 1, ""},
		{"Title At Min Length", "abc", "12345", 1, ""},
		{"Title At Max Length", strings.Repeat("a", 100), "12345", 1, ""},
		{"Empty Title", "", "Conteúdo do post", 1, "titulo"},
		{"Blank Title", "     ", "Conteúdo do post", 1, "titulo"},
		{"Short Title", "ab", "Conteúdo do post", 1, "titulo"},
		{"Long Title", strings.Repeat("a", 101), "Conteúdo do post", 1, "titulo"},
		{"Short Text", "Primeiro post", "abcd", 1, "texto"},
		{"Long Text", "Primeiro post", strings.Repeat("x", 1001), 1, "texto"},
		{"Missing Tema", "Primeiro post", "Conteúdo do post", 0, "tema"},
		{"Multibyte Counts Runes", "ção", "ações", 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePostagem(tt.titulo, tt.texto, tt.temaID)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			fields := fieldErrors(t, err)
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestValidateTema(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateTema("Tecnologia"))

	fields := fieldErrors(t, ValidateTema(""))
	assert.Equal(t, "O atributo Descrição é obrigatório", fields["descricao"])

	fields = fieldErrors(t, ValidateTema("   "))
	assert.Contains(t, fields, "descricao")
}

func TestValidateUsuario(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		nome      string
		usuario   string
		senha     string
		wantField string
	}{
		{"Valid", "Root", "root@root.com", "rootroot", ""},
		{"Missing Name", "", "root@root.com", "rootroot", "nome"},
		{"Invalid Email", "Root", "root", "rootroot", "usuario"},
		{"Short Password", "Root", "root@root.com", "1234567", "senha"},
		{"Password Too Long For Bcrypt", "Root", "root@root.com", strings.Repeat("s", 73), "senha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsuario(tt.nome, tt.usuario, tt.senha, "-")
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			assert.Contains(t, fieldErrors(t, err), tt.wantField)
		})
	}
}

func TestValidateLogin(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateLogin("root@root.com", "rootroot"))

	fields := fieldErrors(t, ValidateLogin("", ""))
	assert.Len(t, fields, 2)
}
