package tools

import (
	"fmt"
	"strings"
	"unicode"
)

func onlyDigits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePhone deixa o telefone só com dígitos, em formato internacional sem '+'.
//
// Heurística (Brasil):
// - se vier com 10/11 dígitos, assume BR e prefixa 55
// - se já vier com DDI (>= 12 dígitos), mantém
func NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("telefone vazio")
	}

	phone := strings.TrimLeft(onlyDigits(raw), "0")

	if len(phone) == 10 || len(phone) == 11 {
		phone = "55" + phone
	}
	if len(phone) < 12 || len(phone) > 15 {
		return "", fmt.Errorf("telefone inválido: %d dígitos", len(phone))
	}
	return phone, nil
}
