package domain

// AutomationRule is a declarative "when X then Y" record. Rules are inert
// configuration; no engine evaluates or fires them.
type AutomationRule struct {
	ID      string `json:"id"`
	Trigger string `json:"trigger"`
	Action  string `json:"action"`
	Enabled bool   `json:"enabled"`
}

// AutomationTriggers is the fixed catalog of trigger phrases.
var AutomationTriggers = []string{
	"o status de uma tarefa mudar para 'Concluído'",
	"uma nova tarefa for atribuída a um membro",
	"uma tarefa se aproximar da data de vencimento",
	"uma nova tarefa for criada",
}

// AutomationActions is the fixed catalog of action phrases.
var AutomationActions = []string{
	"arquivar a tarefa automaticamente",
	"enviar uma notificação por e-mail",
	"mudar a prioridade para 'Urgente'",
}

// KnownTrigger reports whether s is in the trigger catalog.
func KnownTrigger(s string) bool {
	return contains(AutomationTriggers, s)
}

// KnownAction reports whether s is in the action catalog.
func KnownAction(s string) bool {
	return contains(AutomationActions, s)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
