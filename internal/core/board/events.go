package board

// Event types published on a board's bus.
const (
	EventPawnPlaced     = "pawn.placed"
	EventPawnRemoved    = "pawn.removed"
	EventComponentAdded = "component.added"
	EventPhaseDone      = "board.phase"
)

// Phase names a simulation step direction.
type Phase string

const (
	PhaseNext Phase = "next"
	PhaseBack Phase = "back"
)

// PlacementData is the payload of pawn.placed and pawn.removed.
type PlacementData struct {
	Pawn *Pawn
	At   Point
}

// PhaseData is the payload of board.phase.
type PhaseData struct {
	Phase Phase
	Tick  uint64
	Pawns int
}
