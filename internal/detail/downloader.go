package detail

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/browser"

	"github.com/animabing/animabing/internal/models"
)

// Download sequence timings
const (
	// OpenDelay is how long the preparing indicator shows before the link opens
	OpenDelay = 1500 * time.Millisecond
	// IndicatorDuration is how long the indicator stays up in total
	IndicatorDuration = 3 * time.Second
)

// ErrNoLink is reported when the episode carries no download link
var ErrNoLink = errors.New("episode has no download link")

// Stage is a step of the download sequence
type Stage int

const (
	StagePreparing Stage = iota
	StageOpened
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StagePreparing:
		return "preparing"
	case StageOpened:
		return "opened"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Event reports progress of a download sequence
type Event struct {
	Stage   Stage
	Item    models.ContentItem
	Episode models.Episode
	Err     error // set on StageOpened when the link could not be opened
}

// Recorder stores opened links
type Recorder interface {
	Record(item models.ContentItem, ep models.Episode) error
}

// Downloader runs the download sequence: indicator on, link opened in the
// browser after OpenDelay, indicator off after IndicatorDuration.
type Downloader struct {
	open      func(url string) error
	recorder  Recorder
	logger    *slog.Logger
	openDelay time.Duration
	doneDelay time.Duration
}

// NewDownloader creates a Downloader that opens links in the system
// browser. recorder may be nil.
func NewDownloader(recorder Recorder, logger *slog.Logger) *Downloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Downloader{
		open:      browser.OpenURL,
		recorder:  recorder,
		logger:    logger,
		openDelay: OpenDelay,
		doneDelay: IndicatorDuration,
	}
}

// Sequence is a running download sequence
type Sequence struct {
	mu     sync.Mutex
	timers []*time.Timer
	done   chan struct{}
}

// Stop cancels the stages that have not run yet
func (s *Sequence) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.timers {
		t.Stop()
	}
}

// Done is closed after the final stage ran
func (s *Sequence) Done() <-chan struct{} {
	return s.done
}

// Start begins the sequence. notify is called for every stage: once
// synchronously with StagePreparing, then from timer goroutines.
func (d *Downloader) Start(item models.ContentItem, ep models.Episode, notify func(Event)) *Sequence {
	seq := &Sequence{done: make(chan struct{})}
	notify(Event{Stage: StagePreparing, Item: item, Episode: ep})

	openTimer := time.AfterFunc(d.openDelay, func() {
		notify(Event{Stage: StageOpened, Item: item, Episode: ep, Err: d.openLink(item, ep)})
	})
	doneTimer := time.AfterFunc(d.doneDelay, func() {
		notify(Event{Stage: StageDone, Item: item, Episode: ep})
		close(seq.done)
	})

	seq.mu.Lock()
	seq.timers = []*time.Timer{openTimer, doneTimer}
	seq.mu.Unlock()
	return seq
}

func (d *Downloader) openLink(item models.ContentItem, ep models.Episode) error {
	if ep.Link == "" {
		d.logger.Warn("no download link", "content_id", item.ID, "number", ep.Number)
		return ErrNoLink
	}

	if err := d.open(ep.Link); err != nil {
		d.logger.Error("failed to open download link", "link", ep.Link, "error", err)
		return err
	}

	if d.recorder != nil {
		if err := d.recorder.Record(item, ep); err != nil {
			d.logger.Warn("failed to record download", "error", err)
		}
	}

	d.logger.Info("opened download link", "content_id", item.ID, "number", ep.Number, "session", ep.Session)
	return nil
}
