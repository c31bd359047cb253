package content

import (
	"context"
	"strings"

	"github.com/sakif/portfolio/internal/model"
)

// InvalidCodeMessage is shown for every failed unlock. The same text is used for
// "no such code" and "lookup failed" so a visitor cannot tell the two apart.
const InvalidCodeMessage = "Invalid PIN."

// GateState is the state of the contact gate.
type GateState int

const (
	Locked GateState = iota
	Unlocked
)

func (s GateState) String() string {
	if s == Unlocked {
		return "unlocked"
	}
	return "locked"
}

// ContactLookup finds the contact row whose access code equals code.
// repository.ContactRepository satisfies it.
type ContactLookup interface {
	FindContactByCode(ctx context.Context, code string) (*model.PrivateContact, error)
}

// ContactGate is a value: Submit returns the next gate instead of mutating this one.
// The zero value is a locked gate.
type ContactGate struct {
	State   GateState
	Contact *model.PrivateContact
	Message string

	// Err is the lookup error behind a failed submit, kept for logging only.
	Err error
}

// Submit tries to unlock the gate with code.
//
//   - blank code: no lookup, gate unchanged (the message is cleared)
//   - already unlocked: no lookup, gate unchanged
//   - lookup returns a contact: Unlocked
//   - anything else: Locked with InvalidCodeMessage
func (g ContactGate) Submit(ctx context.Context, code string, lookup ContactLookup) ContactGate {
	if g.State == Unlocked {
		return g
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return ContactGate{State: Locked}
	}

	contact, err := lookup.FindContactByCode(ctx, code)
	if err != nil || contact == nil {
		return ContactGate{State: Locked, Message: InvalidCodeMessage, Err: err}
	}

	return ContactGate{State: Unlocked, Contact: contact}
}

// Unlocked reports whether contact fields may be shown.
func (g ContactGate) Unlocked() bool {
	return g.State == Unlocked && g.Contact != nil
}
