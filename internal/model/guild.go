package model

type ToggleCommandRequest struct {
	GuildID string `json:"guild_id"`
	Command string `json:"command"`
	Enabled bool   `json:"enabled"`
}

type ToggleCommandResponse struct {
	Reply string `json:"reply"`
}

type SetGuildLanguageRequest struct {
	GuildID  string `json:"guild_id"`
	Language string `json:"language"`
}

type SetGuildLanguageResponse struct {
	Reply string `json:"reply"`
}
