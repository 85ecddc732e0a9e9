package model

type UpdateUserSettingRequest struct {
	// GuildID is empty for account-wide settings such as timezone.
	GuildID string `json:"guild_id"`
	Key     string `json:"key"`
	Value   string `json:"value"`
}

type UpdateUserSettingResponse struct {
	Reply string `json:"reply"`
}

type GetUserStatsRequest struct {
	GuildID string `json:"guild_id" form:"guild_id"`
}

type GetUserStatsResponse struct {
	Stats map[string]int64 `json:"stats"`
}
