package discord

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/inkwell-gg/backend/config"
	"github.com/inkwell-gg/backend/pkg/api"
	"github.com/stretchr/testify/require"
)

func Test_Endpoint_SendMessage_TooManyRequest(t *testing.T) {
	endpoint := New(config.DiscordConfigs{})

	resetAt := time.Now().Add(time.Second)
	endpoint.apiGenerator = &api.MockAPIGenerator{
		MockClient: api.MockAPIClient{
			POSTFunc: func(ctx context.Context, opts ...api.Opt) (*api.Response, error) {
				return &api.Response{
					Code:   http.StatusTooManyRequests,
					Header: http.Header{"X-Ratelimit-Reset": []string{strconv.FormatInt(resetAt.Unix(), 10)}},
				}, nil
			},
		},
	}

	// Call API with a response of TooManyRequest.
	err := endpoint.SendMessage(context.Background(), "channel-1", "hello")
	gotResetAt, ok := IsRateLimit(err)
	require.True(t, ok)
	require.Equal(t, resetAt.Unix(), gotResetAt.Unix())

	// The resource must now be limited without another API call.
	err = endpoint.checkLimitingResource(sendMessageResource, "channel-1")
	_, ok = IsRateLimit(err)
	require.True(t, ok)

	// Another channel is not limited.
	require.NoError(t, endpoint.checkLimitingResource(sendMessageResource, "channel-2"))
}
