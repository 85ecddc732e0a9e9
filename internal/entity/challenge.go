package entity

import "time"

// Challenge is a personal wpm-for-minutes goal. A user keeps at most one
// uncompleted challenge per guild; completing it awards XP.
type Challenge struct {
	SnowFlakeBase

	UserID  string `gorm:"index:idx_challenges_user"`
	GuildID string `gorm:"index:idx_challenges_user"`

	Description string
	WPM         int
	Length      int
	Goal        int
	XP          int

	CompletedAt time.Time
}

func (c *Challenge) IsCompleted() bool {
	return !c.CompletedAt.IsZero()
}
