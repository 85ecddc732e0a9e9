package discord

import "context"

type IEndpoint interface {
	CheckMember(ctx context.Context, guildID, userID string) (bool, error)
	GetMember(ctx context.Context, guildID, userID string) (Member, error)
	SendMessage(ctx context.Context, channelID, content string) error
}
