package entity

import (
	"database/sql"
	"time"

	"github.com/inkwell-gg/backend/pkg/enum"
)

// Sprint is a timed writing session inside a guild. A guild has at most one
// sprint that is not yet completed or cancelled; cancellation and completion
// both remove the row.
type Sprint struct {
	SnowFlakeBase

	GuildID   string `gorm:"index"`
	ChannelID string
	CreatedBy string

	StartAt time.Time
	EndAt   time.Time

	// EndReference is the instant words-per-minute figures are measured
	// against. It equals EndAt unless the sprint was ended ahead of
	// schedule, in which case it records the actual end.
	EndReference time.Time

	// Length is the scheduled duration in minutes.
	Length int
}

func (s *Sprint) HasStarted(now time.Time) bool {
	return !now.Before(s.StartAt)
}

func (s *Sprint) IsFinished(now time.Time) bool {
	return !now.Before(s.EndAt)
}

type SprintUserType string

var (
	SprintUserCounted     = enum.New(SprintUserType("counted"))
	SprintUserNoWordcount = enum.New(SprintUserType("no_wordcount"))
)

// SprintUser is one user's participation in a sprint. Rejoining replaces the
// previous row, so (sprint_id, user_id) is unique.
type SprintUser struct {
	SprintID int64  `gorm:"primaryKey"`
	UserID   string `gorm:"primaryKey"`

	Sprint Sprint `gorm:"foreignKey:SprintID"`

	Type SprintUserType

	StartingWords int
	CurrentWords  int

	// EndingWords is the final declared count. Invalid until the user
	// declares after the sprint ends.
	EndingWords sql.NullInt64

	// ProjectID links the declared words to one of the user's projects,
	// if they chose one.
	ProjectID sql.NullInt64

	JoinedAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasDeclared reports whether this participant needs no further input before
// the sprint can be summarized.
func (u *SprintUser) HasDeclared() bool {
	return u.Type == SprintUserNoWordcount || u.EndingWords.Valid
}

// WrittenWords is the number of words produced during the sprint.
func (u *SprintUser) WrittenWords() int {
	if !u.EndingWords.Valid {
		return 0
	}

	return int(u.EndingWords.Int64) - u.StartingWords
}
