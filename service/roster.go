package service

import (
	"context"
	"fmt"
	"time"

	"tattler-go/db"
	"tattler-go/onebot"
)

const nameCacheTTL = 10 * time.Minute

type memberAPI interface {
	GetGroupInfo(ctx context.Context, groupID int64) (*onebot.GroupInfo, error)
	GetGroupMemberInfo(ctx context.Context, groupID, userID int64) (*onebot.GroupMember, error)
}

// Roster resolves display names. Lookups go through a redis cache so a
// burst of notices from one group does not hammer the platform API; a nil
// redis disables caching.
type Roster struct {
	api   memberAPI
	redis *db.Redis
}

func NewRoster(api memberAPI, redis *db.Redis) *Roster {
	return &Roster{
		api:   api,
		redis: redis,
	}
}

func groupNameKey(groupID int64) string {
	return fmt.Sprintf("roster:group:%d", groupID)
}

func memberNameKey(groupID, userID int64) string {
	return fmt.Sprintf("roster:member:%d:%d", groupID, userID)
}

func (r *Roster) cached(key string) string {
	if r.redis == nil {
		return ""
	}
	name, err := r.redis.Get(key)
	if err != nil {
		return ""
	}
	return name
}

func (r *Roster) cache(key, name string) {
	if r.redis == nil || name == "" {
		return
	}
	r.redis.Set(key, name, nameCacheTTL)
}

// GroupName resolves the display name of a group.
func (r *Roster) GroupName(ctx context.Context, groupID int64) (string, error) {
	key := groupNameKey(groupID)
	if name := r.cached(key); name != "" {
		return name, nil
	}
	info, err := r.api.GetGroupInfo(ctx, groupID)
	if err != nil {
		return "", err
	}
	r.cache(key, info.GroupName)
	return info.GroupName, nil
}

// MemberName resolves a member's display name, preferring the group card
// over the global nickname.
func (r *Roster) MemberName(ctx context.Context, groupID, userID int64) (string, error) {
	key := memberNameKey(groupID, userID)
	if name := r.cached(key); name != "" {
		return name, nil
	}
	member, err := r.api.GetGroupMemberInfo(ctx, groupID, userID)
	if err != nil {
		return "", err
	}
	name := member.Card
	if name == "" {
		name = member.Nickname
	}
	r.cache(key, name)
	return name, nil
}
