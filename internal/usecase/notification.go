package usecase

import "github.com/rocketscienceinc/omok-backend/internal/entity"

const (
	ActionPlayerAssignment = "playerAssignment"
	ActionGameState        = "gameState"
	ActionMessage          = "message"
)

const waitingMessage = "Waiting for another player..."

// Notification is an outbound message addressed to a single connection.
type Notification struct {
	To      string
	Action  string
	Payload any
}

func messageTo(playerID, text string) Notification {
	return Notification{To: playerID, Action: ActionMessage, Payload: text}
}

func assignmentTo(player *entity.Player, slot int) Notification {
	return Notification{
		To:     player.ID,
		Action: ActionPlayerAssignment,
		Payload: entity.Assignment{
			PlayerNumber: slot,
			Nickname:     player.Nickname,
		},
	}
}

// stateTo - the snapshot is detached from the game, so queued messages never see later moves.
func stateTo(playerIDs []string, game *entity.Game) []Notification {
	state := game.State()

	notifications := make([]Notification, 0, len(playerIDs))
	for _, id := range playerIDs {
		notifications = append(notifications, Notification{
			To:      id,
			Action:  ActionGameState,
			Payload: state,
		})
	}

	return notifications
}
