package detail

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animabing/animabing/internal/models"
)

type recordingRecorder struct {
	mu      sync.Mutex
	entries []models.Episode
}

func (r *recordingRecorder) Record(item models.ContentItem, ep models.Episode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, ep)
	return nil
}

type eventLog struct {
	mu     sync.Mutex
	events []Event
	at     []time.Duration
	start  time.Time
}

func (l *eventLog) notify(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
	l.at = append(l.at, time.Since(l.start))
}

func (l *eventLog) stages() []Stage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Stage, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.Stage)
	}
	return out
}

func fastDownloader(rec Recorder, open func(string) error) *Downloader {
	d := NewDownloader(rec, nil)
	d.open = open
	d.openDelay = 15 * time.Millisecond
	d.doneDelay = 30 * time.Millisecond
	return d
}

func TestDownloader_Sequence(t *testing.T) {
	var opened []string
	var mu sync.Mutex
	rec := &recordingRecorder{}
	d := fastDownloader(rec, func(url string) error {
		mu.Lock()
		defer mu.Unlock()
		opened = append(opened, url)
		return nil
	})

	log := &eventLog{start: time.Now()}
	ep := models.Episode{ID: "e1", Number: 1, Session: 1, Link: "https://host/e1"}
	seq := d.Start(models.ContentItem{ID: "a1"}, ep, log.notify)

	// the indicator is up before Start returns
	assert.Equal(t, []Stage{StagePreparing}, log.stages())

	select {
	case <-seq.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("sequence did not finish")
	}

	assert.Equal(t, []Stage{StagePreparing, StageOpened, StageDone}, log.stages())
	assert.GreaterOrEqual(t, log.at[1], 15*time.Millisecond)
	assert.GreaterOrEqual(t, log.at[2], 30*time.Millisecond)
	assert.NoError(t, log.events[1].Err)

	mu.Lock()
	assert.Equal(t, []string{"https://host/e1"}, opened)
	mu.Unlock()
	assert.Len(t, rec.entries, 1)
}

func TestDownloader_OpenFailure(t *testing.T) {
	rec := &recordingRecorder{}
	d := fastDownloader(rec, func(string) error { return errors.New("no browser") })

	log := &eventLog{start: time.Now()}
	seq := d.Start(models.ContentItem{ID: "a1"}, models.Episode{Link: "https://x"}, log.notify)
	<-seq.Done()

	require.Len(t, log.events, 3)
	assert.EqualError(t, log.events[1].Err, "no browser")
	assert.Empty(t, rec.entries, "failed opens are not recorded")
}

func TestDownloader_NoLink(t *testing.T) {
	d := fastDownloader(nil, func(string) error {
		t.Error("open should not be called")
		return nil
	})

	log := &eventLog{start: time.Now()}
	seq := d.Start(models.ContentItem{}, models.Episode{Number: 3}, log.notify)
	<-seq.Done()

	assert.ErrorIs(t, log.events[1].Err, ErrNoLink)
}

func TestDownloader_Stop(t *testing.T) {
	d := fastDownloader(nil, func(string) error {
		t.Error("open should not be called after Stop")
		return nil
	})

	log := &eventLog{start: time.Now()}
	seq := d.Start(models.ContentItem{}, models.Episode{Link: "https://x"}, log.notify)
	seq.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []Stage{StagePreparing}, log.stages())
}

func TestDownloaderTimings(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, OpenDelay)
	assert.Equal(t, 3*time.Second, IndicatorDuration)

	d := NewDownloader(nil, nil)
	assert.Equal(t, OpenDelay, d.openDelay)
	assert.Equal(t, IndicatorDuration, d.doneDelay)
}
