package testutil

import (
	"context"
	"sort"

	"github.com/inkwell-gg/backend/pkg/api/discord"
	"github.com/inkwell-gg/backend/pkg/pubsub"
	"github.com/redis/go-redis/v9"
)

// MockRedisClient is an in-memory stand-in for xredis.Client.
type MockRedisClient struct {
	sets map[string]map[string]float64
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{sets: make(map[string]map[string]float64)}
}

func (c *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	_, ok := c.sets[key]
	return ok, nil
}

func (c *MockRedisClient) Del(ctx context.Context, key ...string) error {
	for _, k := range key {
		delete(c.sets, k)
	}

	return nil
}

func (c *MockRedisClient) ZAdd(ctx context.Context, key string, members ...redis.Z) error {
	set, ok := c.sets[key]
	if !ok {
		set = make(map[string]float64)
		c.sets[key] = set
	}

	for _, z := range members {
		set[z.Member.(string)] = z.Score
	}

	return nil
}

func (c *MockRedisClient) ZIncrBy(ctx context.Context, key string, incr int64, member string) error {
	set, ok := c.sets[key]
	if !ok {
		set = make(map[string]float64)
		c.sets[key] = set
	}

	set[member] += float64(incr)
	return nil
}

func (c *MockRedisClient) ZRem(ctx context.Context, key string, member string) error {
	if set, ok := c.sets[key]; ok {
		delete(set, member)
	}

	return nil
}

func (c *MockRedisClient) sorted(key string) []redis.Z {
	set := c.sets[key]
	members := make([]redis.Z, 0, len(set))
	for member, score := range set {
		members = append(members, redis.Z{Member: member, Score: score})
	}

	sort.Slice(members, func(i, j int) bool {
		if members[i].Score != members[j].Score {
			return members[i].Score > members[j].Score
		}

		return members[i].Member.(string) > members[j].Member.(string)
	})

	return members
}

func (c *MockRedisClient) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	members := c.sorted(key)
	if offset >= len(members) {
		return nil, nil
	}

	members = members[offset:]
	if limit < len(members) {
		members = members[:limit]
	}

	return members, nil
}

func (c *MockRedisClient) ZRevRank(
	ctx context.Context, key string, member string,
) (uint64, error) {
	for i, z := range c.sorted(key) {
		if z.Member.(string) == member {
			return uint64(i), nil
		}
	}

	return 0, redis.Nil
}

// MockPublisher records published packs instead of sending them anywhere.
type MockPublisher struct {
	Packs map[string][]*pubsub.Pack
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Packs: make(map[string][]*pubsub.Pack)}
}

func (p *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	p.Packs[topic] = append(p.Packs[topic], pack)
	return nil
}

func (p *MockPublisher) Stop(ctx context.Context) error {
	return nil
}

// MockMessenger implements discord.IEndpoint over a fixed member list. Users
// absent from Members are treated as having left the guild.
type MockMessenger struct {
	Members  map[string]string
	Messages []string
}

func NewMockMessenger(members map[string]string) *MockMessenger {
	if members == nil {
		members = make(map[string]string)
	}

	return &MockMessenger{Members: members}
}

func (m *MockMessenger) CheckMember(ctx context.Context, guildID, userID string) (bool, error) {
	_, ok := m.Members[userID]
	return ok, nil
}

func (m *MockMessenger) GetMember(ctx context.Context, guildID, userID string) (discord.Member, error) {
	name, ok := m.Members[userID]
	if !ok {
		return discord.Member{}, discord.ErrUnknownMember
	}

	return discord.Member{ID: userID, DisplayName: name}, nil
}

func (m *MockMessenger) SendMessage(ctx context.Context, channelID, content string) error {
	m.Messages = append(m.Messages, content)
	return nil
}
