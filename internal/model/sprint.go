package model

import "time"

type CreateSprintRequest struct {
	GuildID   string `json:"guild_id"`
	ChannelID string `json:"channel_id"`

	// Length is the duration in minutes. Zero means the default.
	Length int `json:"length"`

	// In delays the start by this many minutes. At starts the sprint at
	// the next occurrence of this minute past the hour. They are mutually
	// exclusive.
	In int `json:"in"`
	At int `json:"at"`
}

type CreateSprintResponse struct {
	ID      int64     `json:"id"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	Reply   string    `json:"reply"`
}

type JoinSprintRequest struct {
	GuildID string `json:"guild_id"`

	// Type chooses the participation mode: "counted" (default),
	// "no_wordcount", or "same" to carry over the previous final count.
	Type string `json:"type"`

	Initial int    `json:"initial"`
	Project string `json:"project"`
}

type JoinSprintResponse struct {
	Reply string `json:"reply"`
}

type LeaveSprintRequest struct {
	GuildID string `json:"guild_id"`
}

type LeaveSprintResponse struct {
	Reply string `json:"reply"`
}

type CancelSprintRequest struct {
	GuildID string `json:"guild_id"`

	// Moderator is set by the gateway when the invoking member holds
	// message management rights in the guild.
	Moderator bool `json:"moderator"`
}

type CancelSprintResponse struct {
	Reply string `json:"reply"`
}

type EndSprintRequest struct {
	GuildID   string `json:"guild_id"`
	Moderator bool   `json:"moderator"`
}

type EndSprintResponse struct {
	Reply string `json:"reply"`
}

type DeclareWordcountRequest struct {
	GuildID string `json:"guild_id"`
	Words   int    `json:"words"`

	// Delta declares Words as an amount written on top of the current
	// count instead of a new total.
	Delta bool `json:"delta"`
}

type DeclareWordcountResponse struct {
	Written int    `json:"written"`
	Reply   string `json:"reply"`
}

type SprintStatusRequest struct {
	GuildID string `json:"guild_id" form:"guild_id"`
}

type SprintStatusResponse struct {
	Reply string `json:"reply"`
}

type SprintTimeRequest struct {
	GuildID string `json:"guild_id" form:"guild_id"`
}

type SprintTimeResponse struct {
	Reply string `json:"reply"`
}

type SprintPersonalBestRequest struct {
	GuildID string `json:"guild_id" form:"guild_id"`
}

type SprintPersonalBestResponse struct {
	WPM   float64 `json:"wpm"`
	Reply string  `json:"reply"`
}

type NotifySprintRequest struct {
	GuildID string `json:"guild_id"`
	Notify  bool   `json:"notify"`
}

type NotifySprintResponse struct {
	Reply string `json:"reply"`
}

type PurgeNotificationsRequest struct {
	GuildID string `json:"guild_id"`
}

type PurgeNotificationsResponse struct {
	Purged int    `json:"purged"`
	Reply  string `json:"reply"`
}

type SetSprintProjectRequest struct {
	GuildID   string `json:"guild_id"`
	Shortname string `json:"shortname"`
}

type SetSprintProjectResponse struct {
	Reply string `json:"reply"`
}
