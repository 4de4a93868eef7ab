package store

import (
	"time"

	"taskpro-api/internal/domain"
)

func daysFromNow(days int) *time.Time {
	t := time.Now().AddDate(0, 0, days)
	return &t
}

// SeedState returns the bundled first-run dataset: three users, six tasks
// spread over the five default columns, the sample automation rules and
// documents, and one direct-message thread per user pair.
func SeedState() domain.AppState {
	now := time.Now()

	users := map[string]domain.User{
		"user-1": {ID: "user-1", Name: "Ana Silva", AvatarURL: "https://i.pravatar.cc/150?u=user-1", Password: "123"},
		"user-2": {ID: "user-2", Name: "Bruno Costa", AvatarURL: "https://i.pravatar.cc/150?u=user-2", Password: "123"},
		"user-3": {ID: "user-3", Name: "Carla Dias", AvatarURL: "https://i.pravatar.cc/150?u=user-3", Password: "123"},
	}

	tasks := map[string]domain.Task{
		"task-1": {
			ID:          "task-1",
			Title:       "Desenvolver a página de login",
			Description: "Criar a interface e a lógica de autenticação.",
			Status:      "A Fazer",
			Priority:    domain.PriorityHigh,
			DueDate:     daysFromNow(3),
			StartDate:   daysFromNow(0),
			CreatedAt:   now,
			AssigneeIDs: []string{"user-1", "user-3"},
			Subtasks: []domain.Subtask{
				{ID: "sub-1-1", Text: "Desenhar wireframe", Completed: true},
				{ID: "sub-1-2", Text: "Implementar front-end", Completed: false},
				{ID: "sub-1-3", Text: "Conectar com back-end", Completed: false},
			},
			Recurring:          domain.RecurringNone,
			HasReminder:        true,
			ReminderOffset:     1,
			ReminderOffsetUnit: domain.ReminderUnitDays,
		},
		"task-2": {
			ID:          "task-2",
			Title:       "Configurar o banco de dados",
			Status:      "Em Progresso",
			Priority:    domain.PriorityUrgent,
			DueDate:     daysFromNow(5),
			StartDate:   daysFromNow(-2),
			CreatedAt:   now.AddDate(0, 0, -1),
			AssigneeIDs: []string{"user-2"},
			Recurring:   domain.RecurringNone,
		},
		"task-3": {
			ID:          "task-3",
			Title:       "Reunião de alinhamento com o cliente",
			Status:      "Concluído",
			Priority:    domain.PriorityMedium,
			DueDate:     daysFromNow(-1),
			StartDate:   daysFromNow(-1),
			CreatedAt:   now.AddDate(0, 0, -5),
			AssigneeIDs: []string{"user-1"},
			Recurring:   domain.RecurringWeekly,
		},
		"task-4": {
			ID:          "task-4",
			Title:       "Testar a integração da API",
			Description: "Verificar se todos os endpoints estão funcionando corretamente.",
			Status:      "Conclusão Parcial",
			Priority:    domain.PriorityHigh,
			DueDate:     daysFromNow(10),
			StartDate:   daysFromNow(1),
			CreatedAt:   now,
			AssigneeIDs: []string{"user-3"},
			Recurring:   domain.RecurringNone,
		},
		"task-5": {
			ID:        "task-5",
			Title:     "Atualizar a documentação do projeto",
			Status:    "A Fazer",
			Priority:  domain.PriorityLow,
			CreatedAt: now.AddDate(0, 0, -2),
			DueDate:   daysFromNow(15),
			StartDate: daysFromNow(10),
			Recurring: domain.RecurringMonthly,
		},
		"task-6": {
			ID:          "task-6",
			Title:       "Deploy em ambiente de homologação",
			Status:      "Revisão",
			Priority:    domain.PriorityUrgent,
			DueDate:     daysFromNow(1),
			StartDate:   daysFromNow(0),
			CreatedAt:   now,
			AssigneeIDs: []string{"user-2"},
			Recurring:   domain.RecurringNone,
		},
	}

	columns := map[string]domain.Column{
		"col-1": {ID: "col-1", Title: "A Fazer", TaskIDs: []string{"task-1", "task-5"}},
		"col-2": {ID: "col-2", Title: "Em Progresso", TaskIDs: []string{"task-2"}},
		"col-5": {ID: "col-5", Title: "Conclusão Parcial", TaskIDs: []string{"task-4"}},
		"col-3": {ID: "col-3", Title: "Revisão", TaskIDs: []string{"task-6"}},
		"col-4": {ID: "col-4", Title: "Concluído", TaskIDs: []string{"task-3"}},
	}

	msg1At := now.Add(-2 * time.Hour)
	msg2At := now.Add(-90 * time.Minute)
	msg3At := now.Add(-time.Hour)

	return domain.AppState{
		Tasks:       tasks,
		Users:       users,
		Columns:     columns,
		ColumnOrder: []string{"col-1", "col-2", "col-5", "col-3", "col-4"},
		Automations: []domain.AutomationRule{
			{ID: "auto-1", Trigger: "o status de uma tarefa mudar para 'Concluído'", Action: "arquivar a tarefa automaticamente", Enabled: true},
			{ID: "auto-2", Trigger: "uma nova tarefa for atribuída a um membro", Action: "enviar uma notificação por e-mail", Enabled: true},
			{ID: "auto-3", Trigger: "uma tarefa se aproximar da data de vencimento", Action: "mudar a prioridade para 'Urgente'", Enabled: false},
		},
		Documents: []domain.Document{
			{ID: "doc-1", Name: "Planejamento Sprint Q3", Type: domain.DocumentTypeDoc, Content: "## Objetivos da Sprint\n\n- Finalizar o fluxo de checkout.\n- Aumentar a performance da dashboard em 20%.", LastModified: now, SharedWith: []string{"user-1", "user-2"}},
			{ID: "doc-2", Name: "Orçamento de Marketing", Type: domain.DocumentTypeSpreadsheet, Content: "Dados da planilha aqui...", LastModified: now, SharedWith: []string{"user-1"}},
			{ID: "doc-3", Name: "Apresentação para Investidores", Type: domain.DocumentTypePresentation, Content: "Slide 1: Introdução...", LastModified: now, SharedWith: []string{"user-1", "user-2", "user-3"}},
		},
		Conversations: map[string]domain.Conversation{
			"conv-1": {ID: "conv-1", Name: "Ana & Bruno", ParticipantIDs: []string{"user-1", "user-2"}, LastMessage: "Combinado, obrigado!", LastMessageTimestamp: &msg3At},
			"conv-2": {ID: "conv-2", Name: "Ana & Carla", ParticipantIDs: []string{"user-1", "user-3"}},
		},
		ChatMessages: map[string]domain.ChatMessage{
			"msg-1": {ID: "msg-1", ConversationID: "conv-1", SenderID: "user-1", Text: "Bruno, conseguiu revisar o deploy?", Timestamp: msg1At},
			"msg-2": {ID: "msg-2", ConversationID: "conv-1", SenderID: "user-2", Text: "Sim, subo para homologação ainda hoje.", Timestamp: msg2At},
			"msg-3": {ID: "msg-3", ConversationID: "conv-1", SenderID: "user-1", Text: "Combinado, obrigado!", Timestamp: msg3At},
		},
	}
}
