package usecase

import (
	"context"
	"strings"

	"github.com/lucasferraz/prospecta/internal/entity"
)

// ImportLeadsInput é o texto colado pelo operador, uma linha por lead no
// formato "@handle / Nome" (o nome é opcional).
type ImportLeadsInput struct {
	Text     string `json:"text"`
	ListID   string `json:"list_id"`
	ScriptID string `json:"script_id"`
	Niche    string `json:"niche"`
}

type ImportLeadsOutput struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	LeadIDs  []string `json:"lead_ids"`
}

type ImportLeadsUseCase struct {
	leadRepo entity.LeadRepositoryInterface
	listRepo entity.ListRepositoryInterface
}

func NewImportLeadsUseCase(
	leadRepo entity.LeadRepositoryInterface,
	listRepo entity.ListRepositoryInterface,
) *ImportLeadsUseCase {
	return &ImportLeadsUseCase{leadRepo: leadRepo, listRepo: listRepo}
}

// Execute converte o texto colado em leads NEW. Linhas vazias e repetidas
// dentro do mesmo lote são ignoradas, não viram erro.
func (uc *ImportLeadsUseCase) Execute(ctx context.Context, input ImportLeadsInput) (*ImportLeadsOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, &DomainError{Code: CodeValidationError, Message: "texto de importação vazio"}
	}

	if input.ListID != "" {
		if _, err := uc.listRepo.FindByID(ctx, input.ListID); err != nil {
			return nil, &DomainError{Code: CodeListNotFound, Message: "lista não encontrada: " + input.ListID}
		}
	}

	var leads []*entity.Lead
	seen := make(map[string]bool)
	skipped := 0

	for _, line := range strings.Split(input.Text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		handle, name := parseImportLine(line)
		key := strings.ToLower(handle)
		if seen[key] {
			skipped++
			continue
		}
		seen[key] = true

		lead, err := entity.NewLead(name, handle, input.Niche, input.ListID)
		if err != nil {
			skipped++
			continue
		}
		lead.ScriptID = input.ScriptID
		leads = append(leads, lead)
	}

	if len(leads) == 0 {
		return nil, &DomainError{Code: CodeValidationError, Message: "nenhuma linha válida para importar"}
	}

	if err := uc.leadRepo.BulkInsert(ctx, leads); err != nil {
		return nil, &TechnicalError{
			Code:    CodePersistenceFailure,
			Message: "falha ao importar leads: " + err.Error(),
			Err:     err,
		}
	}

	ids := make([]string, 0, len(leads))
	for _, l := range leads {
		ids = append(ids, l.ID)
	}

	return &ImportLeadsOutput{
		Imported: len(leads),
		Skipped:  skipped,
		LeadIDs:  ids,
	}, nil
}

// parseImportLine aceita "@handle / Nome", "@handle - Nome" ou só o handle.
// Sem nome, o próprio handle (sem @) vira o nome.
func parseImportLine(line string) (handle, name string) {
	var rest string
	switch {
	case strings.Contains(line, "/"):
		parts := strings.SplitN(line, "/", 2)
		line, rest = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	case strings.Contains(line, " - "):
		parts := strings.SplitN(line, " - ", 2)
		line, rest = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}

	handle = entity.NormalizeHandle(line)
	name = rest
	if name == "" {
		name = strings.TrimPrefix(handle, "@")
	}
	return handle, name
}
