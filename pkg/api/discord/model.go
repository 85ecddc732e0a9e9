package discord

import "errors"

var ErrUnknownMember = errors.New("unknown member")

type Member struct {
	ID          string
	DisplayName string
}

// Mention formats a user mention the way the chat platform renders it.
func Mention(userID string) string {
	return "<@" + userID + ">"
}
