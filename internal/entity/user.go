package entity

import "time"

// Setting keys. Global settings are stored with an empty guild id.
const (
	SettingTimezone     = "timezone"
	SettingMaxWPM       = "maxwpm"
	SettingSprintNotify = "sprint_notify"

	// SettingSprintFinal remembers the user's last declared total in the
	// guild so the next sprint can be joined with the same count.
	SettingSprintFinal = "sprint_final"

	// SettingSprintType and SettingSprintProject remember how the user last
	// sprinted in the guild. A join with type "same" restores them along
	// with the final count.
	SettingSprintType    = "sprint_type"
	SettingSprintProject = "sprint_project"
)

// Stat names.
const (
	StatSprintsStarted      = "sprints_started"
	StatSprintsCompleted    = "sprints_completed"
	StatSprintsWon          = "sprints_won"
	StatTotalSprintWords    = "total_words_sprinted"
	StatTotalWords          = "total_words_written"
	StatChallengesCompleted = "challenges_completed"
	StatPointsWon           = "points_won"
)

// Record metrics.
const (
	RecordWPM = "wpm"
)

type UserSetting struct {
	UserID  string `gorm:"primaryKey"`
	GuildID string `gorm:"primaryKey"`
	Key     string `gorm:"primaryKey"`
	Value   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserStat is a monotonically increasing per-guild counter.
type UserStat struct {
	UserID  string `gorm:"primaryKey"`
	GuildID string `gorm:"primaryKey"`
	Name    string `gorm:"primaryKey"`
	Value   int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserRecord is a personal best. It only ever moves upward.
type UserRecord struct {
	UserID  string `gorm:"primaryKey"`
	GuildID string `gorm:"primaryKey"`
	Metric  string `gorm:"primaryKey"`
	Value   float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
