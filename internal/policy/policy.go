// Package policy centralizes authorization decisions. Every role check in
// the system goes through Decide so the rules live in one place instead of
// being scattered across handlers.
package policy

import "github.com/D0uglasSantos/patrimonio-igreja/internal/session"

// Action is a guarded operation.
type Action int

const (
	// ActionRead covers every read endpoint: bens, emprestimos, pastorais,
	// relatórios, dashboard and account self-inspection.
	ActionRead Action = iota
	// ActionMutate covers every create/update/delete and loan operation.
	ActionMutate
	// ActionDeleteUser additionally carries the target user id so that
	// self-deletion can be rejected regardless of role.
	ActionDeleteUser
)

// Decision is an explicit allow/deny with the reason for the denial.
type Decision struct {
	Allow  bool
	Reason string
}

func allow() Decision             { return Decision{Allow: true} }
func deny(reason string) Decision { return Decision{Allow: false, Reason: reason} }

// Decide evaluates whether the session may perform the action. targetID is
// only consulted for ActionDeleteUser.
func Decide(sess *session.Data, action Action, targetID string) Decision {
	if sess == nil {
		return deny("Não autorizado")
	}
	switch action {
	case ActionRead:
		return allow()
	case ActionMutate:
		if sess.TipoUser != "ADM" {
			return deny("Acesso negado. Apenas administradores podem executar esta operação.")
		}
		return allow()
	case ActionDeleteUser:
		if sess.TipoUser != "ADM" {
			return deny("Acesso negado. Apenas administradores podem executar esta operação.")
		}
		if sess.UserID == targetID {
			return deny("Um administrador não pode excluir a própria conta")
		}
		return allow()
	}
	return deny("Operação desconhecida")
}
