package scheduler

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"tattler-go/db"
)

// CronTask owns named cron jobs whose params survive restarts in redis.
type CronTask struct {
	cron  *cron.Cron
	jobs  map[string]cron.EntryID
	mu    sync.Mutex
	redis *db.Redis
}

func NewCronTask(redis *db.Redis) *CronTask {
	return &CronTask{
		cron:  cron.New(),
		jobs:  make(map[string]cron.EntryID),
		redis: redis,
	}
}

func (m *CronTask) Start() {
	m.cron.Start()
}

func (m *CronTask) Stop() {
	m.cron.Stop()
}

func jobKey(name string) string {
	return fmt.Sprintf("cron:job:%s", name)
}

// AddJob schedules a named job. params must carry the cron spec under
// "spec"; a job with the same name is replaced. Params are persisted so the
// job can be re-registered after a restart.
func (m *CronTask) AddJob(name string, job func(params map[string]string), params map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	spec := params["spec"]
	if spec == "" {
		return fmt.Errorf("cron job %s: spec is required", name)
	}

	id, err := m.cron.AddFunc(spec, func() {
		job(params)
	})
	if err != nil {
		return err
	}
	// delete previous job if exists
	if old, exists := m.jobs[name]; exists {
		m.cron.Remove(old)
	}
	m.jobs[name] = id
	if m.redis != nil {
		m.redis.HSet(jobKey(name), params)
	}
	return nil
}

func (m *CronTask) RemoveJob(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, exists := m.jobs[name]; exists {
		m.cron.Remove(id)
		delete(m.jobs, name)
	}
	if m.redis != nil {
		m.redis.Del(jobKey(name))
	}
}

// Jobs returns the persisted params of every job whose name matches the
// pattern, whether or not it is currently scheduled.
func (m *CronTask) Jobs(pattern string) (jobs []map[string]string) {
	if m.redis == nil {
		return nil
	}
	keys, _ := m.redis.Keys(jobKey(pattern))
	for _, key := range keys {
		val, err := m.redis.HGetAll(key)
		if err != nil {
			continue // skip if there's an error
		}
		jobs = append(jobs, val)
	}
	return
}

// Entry returns the live cron entry of a scheduled job.
func (m *CronTask) Entry(name string) (cron.Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.jobs[name]; ok {
		return m.cron.Entry(id), true
	}
	return cron.Entry{}, false
}
