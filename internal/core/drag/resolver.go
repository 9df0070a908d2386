// Package drag contains the pure classification logic for drag sessions.
// The UI delivers discrete signals (start, drop-on-target, cancel); this
// package turns them into one of the defined move intents. Actual position
// computation and persistence belong to position and app.
package drag

// Outcome classifies how a drop resolves.
type Outcome int

const (
	// OutcomeNone means no active session or an invalid drop target.
	OutcomeNone Outcome = iota
	// OutcomeAppend moves the card to the end of a column.
	OutcomeAppend
	// OutcomeReorder moves the card to another index in its own column.
	OutcomeReorder
	// OutcomeTransfer moves the card into a different column at the
	// target card's index.
	OutcomeTransfer
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAppend:
		return "append"
	case OutcomeReorder:
		return "reorder"
	case OutcomeTransfer:
		return "transfer"
	default:
		return "none"
	}
}

// Resolution is the classified intent of a completed drop.
type Resolution struct {
	Outcome Outcome
	// CardID is the dragged card.
	CardID string
	// ColumnID is the destination column.
	ColumnID string
	// TargetCardID is the card dropped onto, empty for OutcomeAppend.
	TargetCardID string
}

// DropContext carries everything Classify needs about a drop. The caller
// resolves ids against its snapshot before classification.
type DropContext struct {
	CardID       string // dragged card
	CardColumnID string // column currently owning the dragged card
	TargetCard   string // card dropped onto, empty if none
	TargetColumn string // column dropped onto, or the target card's column
}

// Classify maps a drop to its intent. Rules:
//   - drop on a column body appends to that column
//   - drop on a card in the same column reorders within the column
//   - drop on a card in another column transfers to that column
//   - drop on the dragged card itself is a no-op
//   - anything else resolves to none
func Classify(ctx DropContext) Resolution {
	if ctx.CardID == "" || ctx.TargetColumn == "" || ctx.TargetCard == ctx.CardID {
		return Resolution{Outcome: OutcomeNone, CardID: ctx.CardID}
	}
	if ctx.TargetCard == "" {
		return Resolution{
			Outcome:  OutcomeAppend,
			CardID:   ctx.CardID,
			ColumnID: ctx.TargetColumn,
		}
	}
	if ctx.TargetColumn == ctx.CardColumnID {
		return Resolution{
			Outcome:      OutcomeReorder,
			CardID:       ctx.CardID,
			ColumnID:     ctx.TargetColumn,
			TargetCardID: ctx.TargetCard,
		}
	}
	return Resolution{
		Outcome:      OutcomeTransfer,
		CardID:       ctx.CardID,
		ColumnID:     ctx.TargetColumn,
		TargetCardID: ctx.TargetCard,
	}
}

// Session is the drag state machine: Idle -> Dragging -> Idle. Both drop
// and cancel return to Idle; nothing persists across sessions. Session is
// not safe for concurrent use; the UI owns a single instance.
type Session struct {
	cardID string
}

// Start begins a session for cardID. It is rejected when a session is
// already active or cardID is empty.
func (s *Session) Start(cardID string) bool {
	if s.cardID != "" || cardID == "" {
		return false
	}
	s.cardID = cardID
	return true
}

// Active returns the dragged card id, or "" when idle.
func (s *Session) Active() string {
	return s.cardID
}

// Drop ends the session and classifies the result. A drop while idle
// resolves to none.
func (s *Session) Drop(ctx DropContext) Resolution {
	if s.cardID == "" {
		return Resolution{Outcome: OutcomeNone}
	}
	ctx.CardID = s.cardID
	s.cardID = ""
	return Classify(ctx)
}

// Cancel ends the session without an intent.
func (s *Session) Cancel() {
	s.cardID = ""
}
