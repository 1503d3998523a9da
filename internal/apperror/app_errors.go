package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrCellOutOfBounds  = errors.New("cell is out of bounds")
	ErrNotParticipant   = errors.New("player is not a participant of the game")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrGameNotFound     = errors.New("game not found")
	ErrNicknameRequired = errors.New("nickname is required before matchmaking")
	ErrAlreadyInGame    = errors.New("player is already in a game")
	ErrAlreadyConnected = errors.New("player is already connected")
)
