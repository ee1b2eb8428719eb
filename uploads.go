package kodaklens

import (
	"sync"
	"time"

	"github.com/kodaklens/kodaklens/caption"
	"github.com/kodaklens/kodaklens/exif"
	"github.com/kodaklens/kodaklens/story"
)

// Upload is the outcome of one accepted upload attempt.
type Upload struct {
	Generation uint64
	FileName   string // as sent by the browser
	MIMEType   string
	PreviewURL string // public path of the processed JPEG
	Width      int
	Height     int
	EXIF       exif.Data
	Summary    exif.Summary
	Captions   caption.Result
	Template   story.Template
	ReportID   string // set once the upload has been analyzed
	UploadedAt time.Time
}

type uploadSlot struct {
	issued    uint64 // newest generation handed out
	committed bool
	upload    Upload
	touched   time.Time
}

// UploadTracker keeps the latest upload per uploader session. Every attempt
// takes a generation from Begin; Commit only succeeds for the newest one, so
// a slow older upload can never replace the preview of a newer attempt.
type UploadTracker struct {
	mu    sync.Mutex
	slots map[string]*uploadSlot
	ttl   time.Duration
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

// NewUploadTracker creates a tracker that forgets sessions idle for ttl.
// Call Close to stop the background sweep.
func NewUploadTracker(ttl time.Duration) *UploadTracker {
	t := &UploadTracker{
		slots: make(map[string]*uploadSlot),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	go t.cleanup()
	return t
}

// Begin starts an upload attempt for uploader and returns its generation.
func (t *UploadTracker) Begin(uploader string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.slots[uploader]
	if !ok {
		s = &uploadSlot{}
		t.slots[uploader] = s
	}
	s.issued++
	s.touched = t.now()
	return s.issued
}

// Commit stores u for uploader if gen is still the newest attempt. It
// reports whether the upload was kept.
func (t *UploadTracker) Commit(uploader string, gen uint64, u Upload) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.slots[uploader]
	if !ok || s.issued != gen {
		return false
	}
	u.Generation = gen
	s.upload = u
	s.committed = true
	s.touched = t.now()
	return true
}

// Latest returns the last committed upload for uploader.
func (t *UploadTracker) Latest(uploader string) (Upload, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.slots[uploader]
	if !ok || !s.committed {
		return Upload{}, false
	}
	return s.upload, true
}

// Update applies fn to the committed upload for uploader, if there is one.
func (t *UploadTracker) Update(uploader string, fn func(*Upload)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.slots[uploader]
	if !ok || !s.committed {
		return false
	}
	fn(&s.upload)
	s.touched = t.now()
	return true
}

// Len returns the number of tracked sessions.
func (t *UploadTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.slots)
}

func (t *UploadTracker) sweep() {
	cutoff := t.now().Add(-t.ttl)
	t.mu.Lock()
	for id, s := range t.slots {
		if s.touched.Before(cutoff) {
			delete(t.slots, id)
		}
	}
	t.mu.Unlock()
}

func (t *UploadTracker) cleanup() {
	interval := t.ttl
	if interval > time.Hour {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			t.sweep()
		}
	}
}

// Close stops the background sweep. It is safe to call more than once.
func (t *UploadTracker) Close() {
	t.once.Do(func() { close(t.stop) })
}
