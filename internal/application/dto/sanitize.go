package dto

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/pecas-api/internal/domain"
)

// Límites de longitud de los campos de texto (en runas).
const (
	MaxNameLen        = 255
	MaxEmailLen       = 255
	MaxPhoneLen       = 20
	MaxTaxIDLen       = 20
	MaxDescriptionLen = 1000
	MaxReasonLen      = 500
	MaxNoteLen        = 255
)

// Clean normaliza a NFC, quita caracteres de control y espacios de los extremos.
func Clean(s string) string {
	s = norm.NFC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// CheckLen valida que value no supere max runas.
func CheckLen(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return domain.Invalid("%s no puede superar %d caracteres", field, max)
	}
	return nil
}

// Required limpia value y exige que no quede vacío ni supere max.
func Required(field string, value *string, max int) error {
	*value = Clean(*value)
	if *value == "" {
		return domain.Invalid("%s es obligatorio", field)
	}
	return CheckLen(field, *value, max)
}

// Optional limpia value y valida su longitud.
func Optional(field string, value *string, max int) error {
	*value = Clean(*value)
	return CheckLen(field, *value, max)
}

// Email valida forma mínima local@dominio y lo pasa a minúsculas.
func Email(field string, value *string, required bool) error {
	*value = strings.ToLower(Clean(*value))
	if *value == "" {
		if required {
			return domain.Invalid("%s es obligatorio", field)
		}
		return nil
	}
	if err := CheckLen(field, *value, MaxEmailLen); err != nil {
		return err
	}
	at := strings.LastIndex(*value, "@")
	if at < 1 || at == len(*value)-1 || !strings.Contains((*value)[at:], ".") || strings.ContainsAny(*value, " ,;") {
		return domain.Invalid("%s inválido", field)
	}
	return nil
}
