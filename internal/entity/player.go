package entity

import (
	"strings"
	"unicode"
)

const (
	DefaultMaxNicknameLength = 10
	DefaultFallbackPrefix    = "anon_"

	fallbackIDLength = 4
)

// Player is a connection taking part in matchmaking or in a game.
type Player struct {
	ID       string `json:"-"`
	Nickname string `json:"nickname"`
}

// NicknamePolicy - describes how raw nicknames are cleaned up.
type NicknamePolicy struct {
	MaxLength      int
	FallbackPrefix string
}

func DefaultNicknamePolicy() NicknamePolicy {
	return NicknamePolicy{
		MaxLength:      DefaultMaxNicknameLength,
		FallbackPrefix: DefaultFallbackPrefix,
	}
}

// Sanitize - trims the raw nickname, drops non-printable runes and truncates it to MaxLength runes.
// An empty result is replaced with a fallback derived from the player ID.
func (that NicknamePolicy) Sanitize(raw, playerID string) string {
	printable := strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, raw)

	nickname := []rune(strings.TrimSpace(printable))
	if len(nickname) > that.MaxLength {
		nickname = nickname[:that.MaxLength]
	}

	if len(nickname) == 0 {
		return that.Fallback(playerID)
	}

	return string(nickname)
}

func (that NicknamePolicy) Fallback(playerID string) string {
	id := []rune(playerID)
	if len(id) > fallbackIDLength {
		id = id[:fallbackIDLength]
	}

	return that.FallbackPrefix + string(id)
}

// Assignment tells a player which slot it got in a new game.
type Assignment struct {
	PlayerNumber int    `json:"playerNumber"`
	Nickname     string `json:"nickname"`
}
