package salesforce

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// mockClient implements Client for testing.
type mockClient struct {
	queryFn            func(ctx context.Context, soql string, out any) error
	insertCollectionFn func(ctx context.Context, sObjectName string, records []map[string]any) ([]CollectionResult, error)
	updateOneFn        func(ctx context.Context, sObjectName string, id string, fields map[string]any) error
}

func (m *mockClient) Query(ctx context.Context, soql string, out any) error {
	if m.queryFn != nil {
		return m.queryFn(ctx, soql, out)
	}
	return nil
}

func (m *mockClient) InsertCollection(ctx context.Context, sObjectName string, records []map[string]any) ([]CollectionResult, error) {
	if m.insertCollectionFn != nil {
		return m.insertCollectionFn(ctx, sObjectName, records)
	}
	results := make([]CollectionResult, len(records))
	for i := range records {
		results[i] = CollectionResult{ID: "001" + string(rune('A'+i)), Success: true}
	}
	return results, nil
}

func (m *mockClient) UpdateOne(ctx context.Context, sObjectName string, id string, fields map[string]any) error {
	if m.updateOneFn != nil {
		return m.updateOneFn(ctx, sObjectName, id, fields)
	}
	return nil
}

func TestMockClientImplementsInterface(t *testing.T) {
	t.Parallel()
	var _ Client = (*mockClient)(nil)
}

func TestNewClientReturnsClient(t *testing.T) {
	// Verify the type satisfies the interface.
	var _ Client = (*sfClient)(nil)

	client := NewClient(nil)
	require.NotNil(t, client)
	var _ Client = client //nolint:staticcheck // interface compliance check
}

func TestWithRateLimit(t *testing.T) {
	t.Run("sets limiter", func(t *testing.T) {
		c := NewClient(nil, WithRateLimit(10)).(*sfClient)
		require.NotNil(t, c.limiter)
		assert.Equal(t, rate.Limit(10), c.limiter.Limit())
		assert.Equal(t, 10, c.limiter.Burst())
	})

	t.Run("zero rate skips limiter", func(t *testing.T) {
		c := NewClient(nil, WithRateLimit(0)).(*sfClient)
		assert.Nil(t, c.limiter)
	})

	t.Run("no option means no limiter", func(t *testing.T) {
		c := NewClient(nil).(*sfClient)
		assert.Nil(t, c.limiter)
	})

	t.Run("fractional rate gets burst of 1", func(t *testing.T) {
		c := NewClient(nil, WithRateLimit(0.5)).(*sfClient)
		require.NotNil(t, c.limiter)
		assert.Equal(t, 1, c.limiter.Burst())
	})
}

func TestRateLimiter_CancelledContext(t *testing.T) {
	// Zero burst so Wait always blocks.
	c := &sfClient{
		limiter: rate.NewLimiter(rate.Every(time.Hour), 0),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.wait(ctx)
	assert.Error(t, err)
}

func TestFindLeadByCompany(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		var gotSoql string
		mc := &mockClient{queryFn: func(_ context.Context, soql string, out any) error {
			gotSoql = soql
			*out.(*[]LeadRecord) = []LeadRecord{{ID: "00Q1", Company: "Acme"}}
			return nil
		}}

		rec, err := FindLeadByCompany(context.Background(), mc, "Acme")
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "00Q1", rec.ID)
		assert.Contains(t, gotSoql, "FROM Lead WHERE Company = 'Acme' LIMIT 1")
	})

	t.Run("not found returns nil", func(t *testing.T) {
		mc := &mockClient{}
		rec, err := FindLeadByCompany(context.Background(), mc, "Nobody")
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("escapes single quotes", func(t *testing.T) {
		var gotSoql string
		mc := &mockClient{queryFn: func(_ context.Context, soql string, _ any) error {
			gotSoql = soql
			return nil
		}}

		_, err := FindLeadByCompany(context.Background(), mc, "O'Brien & Sons")
		require.NoError(t, err)
		assert.Contains(t, gotSoql, `O\'Brien & Sons`)
	})

	t.Run("query error is wrapped", func(t *testing.T) {
		mc := &mockClient{queryFn: func(context.Context, string, any) error {
			return assert.AnError
		}}

		_, err := FindLeadByCompany(context.Background(), mc, "Acme")
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "find lead by company"))
	})
}
