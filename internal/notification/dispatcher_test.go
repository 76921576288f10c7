package notification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubMailer struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]error
	block   chan struct{}
}

func (m *stubMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failFor[to]; ok {
		return err
	}
	m.sent = append(m.sent, to)
	return nil
}

func (m *stubMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

func TestDispatcher_DeliversQueued(t *testing.T) {
	mailer := &stubMailer{}
	d := NewDispatcher(mailer, 16, 2, zap.NewNop())

	for i := 0; i < 5; i++ {
		outcome := d.Enqueue(Notification{
			Event:     EventApplicationReceived,
			Recipient: "laura@mail.test",
			Context:   TemplateContext{CandidateName: "Laura"},
		})
		assert.Equal(t, OutcomeQueued, outcome)
	}
	d.Close()

	assert.Len(t, mailer.recipients(), 5)
}

func TestDispatcher_FullQueueDropsWithoutBlocking(t *testing.T) {
	mailer := &stubMailer{block: make(chan struct{})}
	d := NewDispatcher(mailer, 1, 1, zap.NewNop())

	n := Notification{Event: EventApplicationReceived, Recipient: "a@mail.test"}

	// One in flight (blocked in the worker), one in the queue; the rest drop.
	outcomes := map[DeliveryOutcome]int{}
	for i := 0; i < 5; i++ {
		outcomes[d.Enqueue(n)]++
	}
	assert.GreaterOrEqual(t, outcomes[OutcomeDropped], 3)

	close(mailer.block)
	d.Close()
}

func TestDispatcher_SendFailureIsSwallowed(t *testing.T) {
	mailer := &stubMailer{failFor: map[string]error{"down@mail.test": errors.New("smtp 451")}}
	d := NewDispatcher(mailer, 16, 1, zap.NewNop())

	assert.Equal(t, OutcomeQueued, d.Enqueue(Notification{
		Event:     EventRejected,
		Recipient: "down@mail.test",
	}))
	assert.Equal(t, OutcomeQueued, d.Enqueue(Notification{
		Event:     EventRejected,
		Recipient: "ok@mail.test",
	}))
	d.Close()

	// The failed delivery does not stop the queue.
	require.Equal(t, []string{"ok@mail.test"}, mailer.recipients())
}

func TestDispatcher_EnqueueAfterCloseDrops(t *testing.T) {
	mailer := &stubMailer{}
	d := NewDispatcher(mailer, 16, 1, zap.NewNop())
	d.Close()

	outcome := d.Enqueue(Notification{Event: EventHired, Recipient: "laura@mail.test"})
	assert.Equal(t, OutcomeDropped, outcome)
}

func TestDispatcher_ConcurrentEnqueueAndClose(t *testing.T) {
	mailer := &stubMailer{}
	d := NewDispatcher(mailer, 4, 2, zap.NewNop())

	n := Notification{Event: EventHired, Recipient: "laura@mail.test"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				outcome := d.Enqueue(n)
				assert.Contains(t, []DeliveryOutcome{OutcomeQueued, OutcomeDropped}, outcome)
			}
		}()
	}
	d.Close()
	wg.Wait()

	// Intake stays shut after the race.
	assert.Equal(t, OutcomeDropped, d.Enqueue(n))
}

func TestDispatcher_UnknownEventNeverMails(t *testing.T) {
	mailer := &stubMailer{}
	d := NewDispatcher(mailer, 16, 1, zap.NewNop())

	d.Enqueue(Notification{Event: Event("algo_raro"), Recipient: "laura@mail.test"})
	d.Close()

	assert.Empty(t, mailer.recipients())
}
