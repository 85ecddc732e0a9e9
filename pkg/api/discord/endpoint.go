package discord

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/inkwell-gg/backend/config"
	"github.com/inkwell-gg/backend/pkg/api"
	"github.com/puzpuzpuz/xsync"
)

const apiURL = "https://discord.com/api/v10"
const userAgent = "DiscordBot (https://inkwell.gg, 1.0)"

const (
	getMemberResource   = "get_member"
	sendMessageResource = "send_message"
)

type Endpoint struct {
	BotToken string
	BotID    string

	apiGenerator      api.Generator
	rateLimitResource *xsync.MapOf[string, *xsync.MapOf[string, time.Time]]
}

func New(cfg config.DiscordConfigs) *Endpoint {
	return &Endpoint{
		BotToken:          cfg.BotToken,
		BotID:             cfg.BotID,
		apiGenerator:      api.NewGenerator(apiURL),
		rateLimitResource: xsync.NewMapOf[*xsync.MapOf[string, time.Time]](),
	}
}

// CheckMember reports whether the user is still a member of the guild.
func (e *Endpoint) CheckMember(ctx context.Context, guildID, userID string) (bool, error) {
	if err := e.checkLimitingResource(getMemberResource, guildID); err != nil {
		return false, err
	}

	resp, err := e.apiGenerator.New("/guilds/%s/members/%s", guildID, userID).
		Header("User-Agent", userAgent).
		GET(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return false, err
	}

	if err := e.checkTooManyRequest(resp, getMemberResource, guildID); err != nil {
		return false, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return false, errors.New("invalid response")
	}

	// If response has the field of code, an error is returned.
	if _, err := body.GetInt("code"); err == nil {
		return false, nil
	}

	return true, nil
}

// GetMember returns the member record, with the guild nickname if one is
// set, otherwise the account username.
func (e *Endpoint) GetMember(ctx context.Context, guildID, userID string) (Member, error) {
	if err := e.checkLimitingResource(getMemberResource, guildID); err != nil {
		return Member{}, err
	}

	resp, err := e.apiGenerator.New("/guilds/%s/members/%s", guildID, userID).
		Header("User-Agent", userAgent).
		GET(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return Member{}, err
	}

	if err := e.checkTooManyRequest(resp, getMemberResource, guildID); err != nil {
		return Member{}, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return Member{}, errors.New("invalid response")
	}

	if _, err := body.GetInt("code"); err == nil {
		return Member{}, ErrUnknownMember
	}

	name, err := body.GetString("nick")
	if err != nil || name == "" {
		name, err = body.GetString("user.username")
		if err != nil {
			return Member{}, err
		}
	}

	return Member{ID: userID, DisplayName: name}, nil
}

// SendMessage posts a plain text message to the channel.
func (e *Endpoint) SendMessage(ctx context.Context, channelID, content string) error {
	if err := e.checkLimitingResource(sendMessageResource, channelID); err != nil {
		return err
	}

	resp, err := e.apiGenerator.New("/channels/%s/messages", channelID).
		Header("User-Agent", userAgent).
		Body(api.JSON{"content": content}).
		POST(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return err
	}

	if err := e.checkTooManyRequest(resp, sendMessageResource, channelID); err != nil {
		return err
	}

	if resp.Code != http.StatusOK {
		return errors.New("cannot send message")
	}

	return nil
}

func (e *Endpoint) checkLimitingResource(resource, identifier string) error {
	if limit, ok := e.rateLimitResource.Load(resource); ok {
		if resetAt, ok := limit.Load(identifier); ok {
			if resetAt.After(time.Now()) {
				return wrapRateLimit(resetAt.Unix())
			}

			// If the rate limit is reset, delete the limit for this resource.
			limit.Delete(identifier)
		}
	}

	return nil
}

func (e *Endpoint) checkTooManyRequest(resp *api.Response, resource, identifier string) error {
	if resp.Code == http.StatusTooManyRequests {
		resetAt, err := strconv.Atoi(resp.Header.Get("X-Ratelimit-Reset"))
		if err != nil {
			return err
		}

		resourceLimiter, _ := e.rateLimitResource.LoadOrStore(resource, xsync.NewMapOf[time.Time]())
		resourceLimiter.Store(identifier, time.Unix(int64(resetAt), 0))
		return wrapRateLimit(int64(resetAt))
	}

	return nil
}
