package configurator

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nube-alta-cafe/models"
)

func TestSessions_IsolatedPerSession(t *testing.T) {
	sessions := NewSessions()
	product := models.Product{ID: "americano", Name: "Americano", BasePrice: price(4500), Available: true}

	require.NoError(t, sessions.With("a", func(c *Configurator) error {
		c.Open(product, nil, nil)
		return c.SetQuantity(3)
	}))

	require.NoError(t, sessions.With("b", func(c *Configurator) error {
		assert.Equal(t, Idle, c.State())
		return nil
	}))

	require.NoError(t, sessions.With("a", func(c *Configurator) error {
		assert.Equal(t, Editing, c.State())
		assert.Equal(t, 3, c.Quantity())
		return nil
	}))
	assert.Equal(t, 2, sessions.Len())
}

func TestSessions_SerializesSameSession(t *testing.T) {
	sessions := NewSessions()
	product := models.Product{ID: "americano", Name: "Americano", BasePrice: price(4500), Available: true}
	require.NoError(t, sessions.With("a", func(c *Configurator) error {
		c.Open(product, nil, nil)
		return nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sessions.With("a", func(c *Configurator) error { return c.Increment() })
		}()
	}
	wg.Wait()

	require.NoError(t, sessions.With("a", func(c *Configurator) error {
		assert.Equal(t, 11, c.Quantity())
		return nil
	}))
}

func TestSessions_Sweep(t *testing.T) {
	sessions := NewSessions()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	sessions.now = func() time.Time { return now }

	_ = sessions.With("old", func(c *Configurator) error { return nil })
	now = now.Add(time.Hour)
	_ = sessions.With("fresh", func(c *Configurator) error { return nil })

	assert.Equal(t, 1, sessions.Sweep(30*time.Minute))
	assert.Equal(t, 1, sessions.Len())
}
