package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/inkwell-gg/backend/config"
	"github.com/inkwell-gg/backend/internal/entity"
	"github.com/inkwell-gg/backend/pkg/logger"
	"github.com/inkwell-gg/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MockContext returns a context carrying test configs, a quiet logger, and a
// fresh in-memory database with all tables migrated.
func MockContext(t *testing.T) context.Context {
	cfg := config.Default()
	cfg.Env = "testing"

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))

	db, err := gorm.Open(
		sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())),
		&gorm.Config{},
	)
	require.NoError(t, err)

	ctx = xcontext.WithDB(ctx, db)
	require.NoError(t, entity.MigrateTable(ctx))

	return ctx
}

// MockContextAsUser is MockContext with the request attributed to a user.
func MockContextAsUser(t *testing.T, userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(t), userID)
}
