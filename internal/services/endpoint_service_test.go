package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayvcodr/internal/models"
	"ayvcodr/internal/repositories"
)

type fakeEndpointRepo struct {
	mu        sync.Mutex
	nextID    int
	byAccount map[int]*models.Endpoint
}

func newFakeEndpointRepo() *fakeEndpointRepo {
	return &fakeEndpointRepo{nextID: 1, byAccount: map[int]*models.Endpoint{}}
}

func (r *fakeEndpointRepo) Upsert(endpoint *models.Endpoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byAccount[endpoint.AccountID]; ok {
		existing.Operation = endpoint.Operation
		existing.Status = endpoint.Status
		*endpoint = *existing
		return nil
	}
	endpoint.ID = r.nextID
	r.nextID++
	endpoint.CreatedAt = time.Now()
	endpoint.LastUsed = endpoint.CreatedAt
	cp := *endpoint
	r.byAccount[endpoint.AccountID] = &cp
	return nil
}

func (r *fakeEndpointRepo) GetByAccount(accountID int) (*models.Endpoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.byAccount[accountID]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeEndpointRepo) List() ([]*models.Endpoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*models.Endpoint
	for _, e := range r.byAccount {
		cp := *e
		res = append(res, &cp)
	}
	return res, nil
}

func (r *fakeEndpointRepo) TouchUsage(id int, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.byAccount {
		if e.ID == id {
			e.LastUsed = at
		}
	}
	return nil
}

func (r *fakeEndpointRepo) DeleteByAccount(accountID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byAccount, accountID)
	return nil
}

func (r *fakeEndpointRepo) CountByStatus(status string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, e := range r.byAccount {
		if e.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeCallLogRepo struct {
	mu      sync.Mutex
	entries []*models.APICallLog
	// names эмулирует join с accounts в UsageByUsername
	names map[int]string
}

func (r *fakeCallLogRepo) Create(entry *models.APICallLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = len(r.entries) + 1
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeCallLogRepo) CountByAccount(accountID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, e := range r.entries {
		if e.AccountID == accountID {
			count++
		}
	}
	return count, nil
}

func (r *fakeCallLogRepo) CountTotal() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries), nil
}

func (r *fakeCallLogRepo) AvgLatency() (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return 0, nil
	}
	var sum float64
	for _, e := range r.entries {
		sum += e.LatencyMS
	}
	return sum / float64(len(r.entries)), nil
}

func (r *fakeCallLogRepo) UsageTrend(days int) ([]repositories.DailyUsage, error) {
	return nil, nil
}

func (r *fakeCallLogRepo) UsageByUsername() (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := map[string]int{}
	for _, e := range r.entries {
		name, ok := r.names[e.AccountID]
		if !ok {
			continue
		}
		res[name]++
	}
	return res, nil
}

func (r *fakeCallLogRepo) DeleteByAccount(accountID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*models.APICallLog
	for _, e := range r.entries {
		if e.AccountID != accountID {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

func TestRegisterEndpoint(t *testing.T) {
	svc := NewEndpointService(newFakeEndpointRepo(), &fakeCallLogRepo{})

	t.Run("unknown operation rejected", func(t *testing.T) {
		_, err := svc.RegisterEndpoint(1, "exec_shell")
		assert.Error(t, err)
	})

	t.Run("allowed operation", func(t *testing.T) {
		endpoint, err := svc.RegisterEndpoint(1, "word_count")
		require.NoError(t, err)
		assert.Equal(t, "word_count", endpoint.Operation)
		assert.Equal(t, models.EndpointStatusActive, endpoint.Status)
	})

	t.Run("re-registration replaces binding", func(t *testing.T) {
		first, err := svc.RegisterEndpoint(1, "word_count")
		require.NoError(t, err)
		second, err := svc.RegisterEndpoint(1, "sentiment")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "sentiment", second.Operation)
	})
}

func TestExecuteEndpoint(t *testing.T) {
	logs := &fakeCallLogRepo{}
	svc := NewEndpointService(newFakeEndpointRepo(), logs)

	t.Run("no binding yet", func(t *testing.T) {
		_, err := svc.Execute(1, "/api/alice/custom", map[string]any{"text": "hi"})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	_, err := svc.RegisterEndpoint(1, "word_count")
	require.NoError(t, err)

	result, err := svc.Execute(1, "/api/alice/custom", map[string]any{"text": "one two three"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"word_count": 3}, result)

	t.Run("call is logged", func(t *testing.T) {
		count, err := logs.CountByAccount(1)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Equal(t, "/api/alice/custom", logs.entries[0].Path)
		assert.Equal(t, 200, logs.entries[0].StatusCode)
	})
}

func TestAllowedOperations(t *testing.T) {
	svc := NewEndpointService(newFakeEndpointRepo(), &fakeCallLogRepo{})
	assert.Equal(t, []string{"keywords", "sentiment", "text_length", "word_count"}, svc.AllowedOperations())
}
