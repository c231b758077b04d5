package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/isvaryam/assistant/internal/domain"
	"github.com/isvaryam/assistant/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(window int) *Store {
	return NewStore(window, logging.Nop())
}

func TestHistoryUnseenKey(t *testing.T) {
	s := newTestStore(10)
	assert.Empty(t, s.History("nobody"))
	assert.Equal(t, 0, s.Len("nobody"))
}

func TestAppendExchange(t *testing.T) {
	s := newTestStore(10)
	s.AppendExchange("u1", "hello", "hi there")

	hist := s.History("u1")
	require.Len(t, hist, 2)
	assert.Equal(t, domain.Exchange{Role: domain.RoleUser, Content: "hello"}, hist[0])
	assert.Equal(t, domain.Exchange{Role: domain.RoleAssistant, Content: "hi there"}, hist[1])
}

func TestWindowNeverExceeded(t *testing.T) {
	s := newTestStore(10)
	for i := 0; i < 25; i++ {
		s.AppendExchange("u1", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
		assert.LessOrEqual(t, s.Len("u1"), 10)
	}
	assert.Equal(t, 10, s.Len("u1"))
}

func TestOldestEvictedFirst(t *testing.T) {
	s := newTestStore(4)
	s.AppendExchange("u1", "q1", "a1")
	s.AppendExchange("u1", "q2", "a2")
	s.AppendExchange("u1", "q3", "a3")

	hist := s.History("u1")
	require.Len(t, hist, 4)
	// q1/a1 evicted; remaining entries keep original order
	assert.Equal(t, "q2", hist[0].Content)
	assert.Equal(t, "a2", hist[1].Content)
	assert.Equal(t, "q3", hist[2].Content)
	assert.Equal(t, "a3", hist[3].Content)
}

func TestHistoryReturnsCopy(t *testing.T) {
	s := newTestStore(10)
	s.AppendExchange("u1", "q", "a")

	hist := s.History("u1")
	hist[0].Content = "mutated"

	assert.Equal(t, "q", s.History("u1")[0].Content)
}

func TestSessionsIndependent(t *testing.T) {
	s := newTestStore(4)
	s.AppendExchange("u1", "q1", "a1")
	s.AppendExchange("u2", "q2", "a2")

	assert.Equal(t, 2, s.Len("u1"))
	assert.Equal(t, 2, s.Len("u2"))
	assert.ElementsMatch(t, []string{"u1", "u2"}, s.Keys())
}

func TestReset(t *testing.T) {
	s := newTestStore(10)
	s.AppendExchange("u1", "q", "a")
	s.Reset("u1")
	assert.Equal(t, 0, s.Len("u1"))

	// resetting an unknown key is a no-op
	s.Reset("ghost")
}

func TestSmallWindowFallsBackToDefault(t *testing.T) {
	s := newTestStore(0)
	assert.Equal(t, DefaultWindow, s.Window())
}

func TestConcurrentAppends(t *testing.T) {
	s := newTestStore(10)
	var wg sync.WaitGroup

	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			key := fmt.Sprintf("u%d", g%2)
			for i := 0; i < 50; i++ {
				s.AppendExchange(key, "q", "a")
			}
		}(g)
	}
	wg.Wait()

	for _, key := range []string{"u0", "u1"} {
		hist := s.History(key)
		assert.Len(t, hist, 10)
		// user/assistant entries must alternate, never interleave
		for i, e := range hist {
			if i%2 == 0 {
				assert.Equal(t, domain.RoleUser, e.Role)
			} else {
				assert.Equal(t, domain.RoleAssistant, e.Role)
			}
		}
	}
}
