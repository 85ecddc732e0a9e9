package entity

import "time"

// Event is a long-running guild wordcount drive. Scheduled times may be zero
// when the event is started and ended by hand; the actual StartedAt and
// EndedAt record what really happened.
type Event struct {
	SnowFlakeBase

	GuildID   string `gorm:"index"`
	ChannelID string
	CreatedBy string

	Title       string
	Description string
	Image       string
	Colour      int

	StartAt time.Time
	EndAt   time.Time

	StartedAt time.Time
	EndedAt   time.Time
}

func (e *Event) IsRunning() bool {
	return !e.StartedAt.IsZero() && e.EndedAt.IsZero()
}

func (e *Event) IsEnded() bool {
	return !e.EndedAt.IsZero()
}

// EventWordcount accumulates one user's words inside an event.
type EventWordcount struct {
	EventID int64  `gorm:"primaryKey"`
	UserID  string `gorm:"primaryKey"`

	Event Event `gorm:"foreignKey:EventID"`

	Words int

	CreatedAt time.Time
	UpdatedAt time.Time
}
