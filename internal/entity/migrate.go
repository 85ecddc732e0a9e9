package entity

import (
	"context"

	"github.com/inkwell-gg/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&Sprint{},
		&SprintUser{},
		&Task{},
		&Event{},
		&EventWordcount{},
		&UserSetting{},
		&UserStat{},
		&UserRecord{},
		&GuildSetting{},
		&Project{},
		&Challenge{},
	)
}
