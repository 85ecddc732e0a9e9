package model

type CreateChallengeRequest struct {
	GuildID string `json:"guild_id"`

	// Difficulty is easy, normal, hard, hardcore, or insane. Empty picks
	// a random difficulty.
	Difficulty string `json:"difficulty"`

	// Length is the challenge duration in minutes. Zero picks a random
	// length.
	Length int `json:"length"`
}

type CreateChallengeResponse struct {
	Goal   int    `json:"goal"`
	Length int    `json:"length"`
	WPM    int    `json:"wpm"`
	Reply  string `json:"reply"`
}

type CurrentChallengeRequest struct {
	GuildID string `json:"guild_id" form:"guild_id"`
}

type CurrentChallengeResponse struct {
	Reply string `json:"reply"`
}

type CompleteChallengeRequest struct {
	GuildID string `json:"guild_id"`
}

type CompleteChallengeResponse struct {
	XP    int    `json:"xp"`
	Reply string `json:"reply"`
}

type CancelChallengeRequest struct {
	GuildID string `json:"guild_id"`
}

type CancelChallengeResponse struct {
	Reply string `json:"reply"`
}
