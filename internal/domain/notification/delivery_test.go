package notification

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/inkwell-gg/backend/internal/domain"
	"github.com/inkwell-gg/backend/pkg/pubsub"
	"github.com/inkwell-gg/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestDeliverer_Handle(t *testing.T) {
	ctx := testutil.MockContext(t)
	messenger := testutil.NewMockMessenger(nil)
	deliverer := NewDeliverer(messenger)

	msg, err := json.Marshal(domain.Announcement{
		GuildID:   "guild",
		ChannelID: "channel",
		Content:   "The sprint has started!",
	})
	require.NoError(t, err)

	deliverer.Handle(ctx, &pubsub.Pack{Key: []byte("guild"), Msg: msg}, time.Now())
	require.Equal(t, []string{"The sprint has started!"}, messenger.Messages)

	// Garbage and empty packs are skipped without sending anything.
	deliverer.Handle(ctx, &pubsub.Pack{Msg: []byte("not json")}, time.Now())
	deliverer.Handle(ctx, &pubsub.Pack{Msg: []byte("{}")}, time.Now())
	require.Len(t, messenger.Messages, 1)
}
