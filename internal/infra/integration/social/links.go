// Package social monta os deep links usados pela sessão para abrir o perfil
// ou a conversa do lead em outra aba.
package social

import (
	"strings"
	"unicode"
)

// InstagramURL converte "@handle" na URL pública do perfil.
func InstagramURL(handle string) string {
	handle = strings.TrimSpace(strings.TrimPrefix(handle, "@"))
	if handle == "" {
		return ""
	}
	return "https://instagram.com/" + handle
}

// WhatsAppURL converte o telefone em link wa.me, mantendo só os dígitos.
func WhatsAppURL(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ""
	}
	return "https://wa.me/" + digits.String()
}
