package entity

import "time"

// Guild setting keys. Command toggles use DisabledCommandKey.
const (
	GuildSettingLanguage = "language"
)

// DisabledCommandKey returns the setting key that marks a command as disabled
// inside a guild. Absence of the key means the command is enabled.
func DisabledCommandKey(command string) string {
	return "disabled:" + command
}

type GuildSetting struct {
	GuildID string `gorm:"primaryKey"`
	Key     string `gorm:"primaryKey"`
	Value   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
