package usecase

import (
	"strings"

	"github.com/lucasferraz/prospecta/internal/entity"
)

// Fallback quando o lead não tem nicho cadastrado.
const genericNiche = "seu nicho"

// RenderTemplate substitui as variáveis [name], [niche] e [company] do corpo
// do script pelos dados do lead. Tokens desconhecidos ficam como estão e
// campos opcionais vazios caem em fallbacks — nunca texto vazio no meio da
// mensagem.
func RenderTemplate(body string, lead *entity.Lead) string {
	if lead == nil {
		return body
	}

	niche := strings.TrimSpace(lead.Niche)
	if niche == "" {
		niche = genericNiche
	}

	company := strings.TrimSpace(lead.Company)
	if company == "" {
		company = lead.Name
	}

	replacer := strings.NewReplacer(
		"[name]", lead.Name,
		"[niche]", niche,
		"[company]", company,
	)

	return replacer.Replace(body)
}
