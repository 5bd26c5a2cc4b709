package board

import "errors"

var (
	ErrComponentMissing = errors.New("component missing")
	ErrOutOfBounds      = errors.New("point out of board bounds")
	ErrCellOccupied     = errors.New("cell already occupied")
	ErrNilPawn          = errors.New("nil pawn")
)
