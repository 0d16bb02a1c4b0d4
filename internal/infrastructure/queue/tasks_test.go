package queue

import (
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshSitemapTask(t *testing.T) {
	task, err := NewRefreshSitemapTask(RefreshSitemapPayload{Reason: "admin", RequestedBy: "root"})
	require.NoError(t, err)
	assert.Equal(t, TypeRefreshSitemap, task.Type())

	p, err := ParseRefreshSitemapPayload(task)
	require.NoError(t, err)
	assert.Equal(t, "admin", p.Reason)
	assert.Equal(t, "root", p.RequestedBy)
}

func TestParseRefreshSitemapPayloadRejectsGarbage(t *testing.T) {
	_, err := ParseRefreshSitemapPayload(asynq.NewTask(TypeRefreshSitemap, []byte("{")))
	assert.Error(t, err)
}

func TestRedisOpt(t *testing.T) {
	opt := RedisOpt("cache:6379", "pw", 2)
	assert.Equal(t, "cache:6379", opt.Addr)
	assert.Equal(t, 2, opt.DB)
}
