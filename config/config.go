package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env string `toml:"env"`

	Database  DatabaseConfigs `toml:"database"`
	ApiServer ServerConfigs   `toml:"api_server"`
	Redis     RedisConfigs    `toml:"redis"`
	Kafka     KafkaConfigs    `toml:"kafka"`
	Discord   DiscordConfigs  `toml:"discord"`
	Sprint    SprintConfigs   `toml:"sprint"`
	Event     EventConfigs    `toml:"event"`
	Runner    RunnerConfigs   `toml:"runner"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr          string `toml:"addr"`
	OutgoingTopic string `toml:"outgoing_topic"`
}

type DiscordConfigs struct {
	BotToken  string `toml:"bot_token"`
	BotID     string `toml:"bot_id"`
	PublicKey string `toml:"public_key"`

	// MessageCharacterLimit is the platform cap on a single message.
	// Announcements longer than this are truncated on whole lines.
	MessageCharacterLimit int `toml:"message_character_limit"`
}

type SprintConfigs struct {
	DefaultLength int `toml:"default_length"`
	MaxLength     int `toml:"max_length"`
	DefaultDelay  int `toml:"default_delay"`
	MaxDelay      int `toml:"max_delay"`

	// Declarations implying a words-per-minute rate above this threshold
	// are rejected. Users can raise their own limit with the maxwpm setting.
	MaxWordsPerMinute int `toml:"max_words_per_minute"`
}

type EventConfigs struct {
	DefaultLeaderboardLimit int `toml:"default_leaderboard_limit"`
	MaxLeaderboardLimit     int `toml:"max_leaderboard_limit"`
	DefaultColour           int `toml:"default_colour"`
}

type RunnerConfigs struct {
	PollInterval time.Duration `toml:"poll_interval"`
}

// Load reads the toml config file. The database password and bot token can
// be overridden with DB_PASSWORD and DISCORD_BOT_TOKEN.
func Load(path string) (Configs, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Configs{}, err
	}

	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}

	if token := os.Getenv("DISCORD_BOT_TOKEN"); token != "" {
		cfg.Discord.BotToken = token
	}

	return cfg, nil
}

func Default() Configs {
	return Configs{
		Env: "local",
		Sprint: SprintConfigs{
			DefaultLength:     20,
			MaxLength:         60,
			DefaultDelay:      2,
			MaxDelay:          60 * 24,
			MaxWordsPerMinute: 150,
		},
		Event: EventConfigs{
			DefaultLeaderboardLimit: 10,
			MaxLeaderboardLimit:     25,
			DefaultColour:           15105570,
		},
		Discord: DiscordConfigs{
			MessageCharacterLimit: 2000,
		},
		Runner: RunnerConfigs{
			PollInterval: 15 * time.Second,
		},
	}
}
