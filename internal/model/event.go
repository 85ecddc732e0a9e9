package model

import "time"

type CreateEventRequest struct {
	GuildID     string `json:"guild_id"`
	ChannelID   string `json:"channel_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Colour      int    `json:"colour"`
}

type CreateEventResponse struct {
	ID    int64  `json:"id"`
	Reply string `json:"reply"`
}

type ScheduleEventRequest struct {
	GuildID string    `json:"guild_id"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

type ScheduleEventResponse struct {
	Reply string `json:"reply"`
}

type StartEventRequest struct {
	GuildID string `json:"guild_id"`
}

type StartEventResponse struct {
	Reply string `json:"reply"`
}

type EndEventRequest struct {
	GuildID string `json:"guild_id"`
}

type EndEventResponse struct {
	Reply string `json:"reply"`
}

type DeleteEventRequest struct {
	GuildID string `json:"guild_id"`
}

type DeleteEventResponse struct {
	Reply string `json:"reply"`
}

type UpdateEventInfoRequest struct {
	GuildID     string `json:"guild_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Colour      int    `json:"colour"`
}

type UpdateEventInfoResponse struct {
	Reply string `json:"reply"`
}

type AddEventWordsRequest struct {
	GuildID string `json:"guild_id"`
	Words   int    `json:"words"`
}

type AddEventWordsResponse struct {
	Total int    `json:"total"`
	Reply string `json:"reply"`
}

type SetEventWordsRequest struct {
	GuildID string `json:"guild_id"`
	Words   int    `json:"words"`
}

type SetEventWordsResponse struct {
	Reply string `json:"reply"`
}

type MyEventWordsRequest struct {
	GuildID string `json:"guild_id" form:"guild_id"`
}

type MyEventWordsResponse struct {
	Words int    `json:"words"`
	Reply string `json:"reply"`
}

type EventLeaderboardEntry struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Words int    `json:"words"`
}

type EventLeaderboardRequest struct {
	GuildID string `json:"guild_id" form:"guild_id"`
	Limit   int    `json:"limit" form:"limit"`
}

type EventLeaderboardResponse struct {
	Title   string                  `json:"title"`
	Total   int64                   `json:"total"`
	Entries []EventLeaderboardEntry `json:"entries"`
	Reply   string                  `json:"reply"`
}
