package action

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/nuuslees/internal/types"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue()
	q.Send(Tick{})
	q.Send(Error{Message: "a"})
	q.Send(nil)
	q.Send(Quit{})

	assert.Equal(t, 3, q.Len())

	var got []Action
	for {
		a, ok := q.Next()
		if !ok {
			break
		}
		got = append(got, a)
	}
	assert.Equal(t, []Action{Tick{}, Error{Message: "a"}, Quit{}}, got)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_ReadySignal(t *testing.T) {
	q := NewQueue()

	select {
	case <-q.Ready():
		t.Fatal("empty queue signalled ready")
	default:
	}

	q.Send(Render{})
	q.Send(Render{})

	select {
	case <-q.Ready():
	default:
		t.Fatal("expected ready signal")
	}
	assert.Equal(t, 2, q.Len())
}

func TestQueue_ConcurrentProducers(t *testing.T) {
	q := NewQueue()

	const producers, perProducer = 8, 100
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Send(UpdateReader{Seq: uint64(p*perProducer + i)})
			}
		}(p)
	}
	wg.Wait()

	require.Equal(t, producers*perProducer, q.Len())

	// per-producer order is preserved
	last := make(map[int]int)
	for {
		a, ok := q.Next()
		if !ok {
			break
		}
		seq := int(a.(UpdateReader).Seq)
		p, i := seq/perProducer, seq%perProducer
		if prev, seen := last[p]; seen {
			assert.Greater(t, i, prev)
		}
		last[p] = i
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Tick", Describe(Tick{}))
	assert.Equal(t, "Resize(80, 24)", Describe(Resize{Width: 80, Height: 24}))
	assert.Equal(t, "RemoveTab(2, tab#1.3)", Describe(RemoveTab{Index: 2, Tab: types.TabID{Slot: 1, Gen: 3}}))
	assert.Equal(t, "NewTabArticleViewAll", Describe(NewTabArticleViewAll{}))
}
