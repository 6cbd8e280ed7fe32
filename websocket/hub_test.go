package websocket

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPublish_NeverBlocks(t *testing.T) {
	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			Publish(EventPaymentRecorded, map[string]int{"n": i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked with no subscribers")
	}
	assert.Equal(t, 0, ConnectedClients())
}

type recordingWriter struct {
	deadline time.Time
	wrote    []Event
}

func (w *recordingWriter) SetWriteDeadline(t time.Time) error {
	w.deadline = t
	return nil
}

func (w *recordingWriter) WriteJSON(v interface{}) error {
	if w.deadline.IsZero() {
		return errors.New("write without deadline")
	}
	w.wrote = append(w.wrote, v.(Event))
	return nil
}

func TestDeliver_SetsWriteDeadline(t *testing.T) {
	w := &recordingWriter{}
	before := time.Now()

	err := deliver(w, Event{Type: EventReportGenerated})
	assert.NoError(t, err)
	assert.Len(t, w.wrote, 1)
	assert.WithinDuration(t, before.Add(writeWait), w.deadline, time.Second)
}
