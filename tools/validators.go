package tools

import (
	"fmt"
	"regexp"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizeDocument aceita CPF (11 dígitos) ou CNPJ (14), com ou sem pontuação.
// Não confere dígitos verificadores; a Asaas faz isso na criação do cliente.
func NormalizeDocument(raw string) (string, error) {
	doc := onlyDigits(raw)
	switch len(doc) {
	case 11, 14:
		return doc, nil
	}
	return "", fmt.Errorf("documento deve ser CPF (11 dígitos) ou CNPJ (14 dígitos)")
}
