package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lucasferraz/prospecta/internal/entity"
)

func TestRenderTemplateAllTokens(t *testing.T) {
	lead := &entity.Lead{
		Name:    "Maria",
		Company: "Estúdio Flor",
		Niche:   "floricultura",
	}

	out := RenderTemplate("Olá [name], vi o trabalho da [company] com [niche]!", lead)

	assert.Equal(t, "Olá Maria, vi o trabalho da Estúdio Flor com floricultura!", out)
}

// Lead sem empresa e sem nicho: a empresa cai no nome e o nicho no genérico.
func TestRenderTemplateFallbacks(t *testing.T) {
	lead := &entity.Lead{Name: "João"}

	out := RenderTemplate("Olá [name], vocês da [company] trabalham com [niche]?", lead)

	assert.Equal(t, "Olá João, vocês da João trabalham com seu nicho?", out)
}

func TestRenderTemplateUnknownTokenStays(t *testing.T) {
	lead := &entity.Lead{Name: "Ana", Niche: "moda"}

	out := RenderTemplate("Oi [name], [preco] especial para [niche]", lead)

	assert.Equal(t, "Oi Ana, [preco] especial para moda", out)
}

// Renderizar duas vezes dá o mesmo resultado: a substituição não altera o
// corpo original do script.
func TestRenderTemplatePure(t *testing.T) {
	lead := &entity.Lead{Name: "Pedro", Niche: "tatuagem"}
	body := "Fala [name]! Curti seu trabalho de [niche]."

	first := RenderTemplate(body, lead)
	second := RenderTemplate(body, lead)

	assert.Equal(t, first, second)
	assert.Equal(t, "Fala [name]! Curti seu trabalho de [niche].", body)
}

func TestRenderTemplateNilLead(t *testing.T) {
	out := RenderTemplate("Olá [name]", nil)
	assert.Equal(t, "Olá [name]", out)
}
