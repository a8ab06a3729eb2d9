// Package briefing coordinates one article's journey: summarize it, read the
// summary aloud, and share it. It owns the user-visible state and publishes
// a Snapshot to subscribers after every change.
package briefing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"briefcast/internal/speech/playback"
	"briefcast/internal/summary"

	"github.com/sirupsen/logrus"
)

const (
	MessageGenerationFailed = "Failed to generate summary. Please check your connection or try again later."

	// MinArticleLength is exclusive: the trimmed text must be longer.
	MinArticleLength = 100

	ShareTitle = "Audio News Briefing"

	defaultShareResetDelay = 2 * time.Second
)

var (
	ErrNotReady         = errors.New("not ready")
	ErrGenerationFailed = errors.New(MessageGenerationFailed)
	ErrClosed           = errors.New("briefing is closed")
	ErrNothingToShare   = errors.New("no summary to share")
	// ErrShareCancelled is returned by a Sharer when the user dismisses it.
	ErrShareCancelled   = errors.New("share cancelled")
	ErrShareUnavailable = errors.New("sharing is not available")
)

type GenerationStatus int

const (
	GenerationIdle GenerationStatus = iota
	GenerationLoading
)

func (s GenerationStatus) String() string {
	if s == GenerationLoading {
		return "loading"
	}
	return "idle"
}

type ShareStatus int

const (
	ShareIdle ShareStatus = iota
	ShareCopied
)

func (s ShareStatus) String() string {
	if s == ShareCopied {
		return "copied"
	}
	return "idle"
}

// Player is the playback surface the briefing drives.
type Player interface {
	Play(text string) error
	Pause() error
	Stop() error
	Status() playback.Status
	OnChange(l playback.Listener) func()
}

// Sharer hands text to a native share target.
type Sharer interface {
	Share(ctx context.Context, title, text string) error
}

type Clipboard interface {
	WriteText(text string) error
}

// Snapshot is an immutable copy of the briefing state.
type Snapshot struct {
	Version     uint64
	ArticleText string
	Summary     string
	Generation  GenerationStatus
	Playback    playback.Status
	Error       string
	Share       ShareStatus
	CanGenerate bool
	CanPlay     bool
}

type Option func(*Briefing)

func WithSharer(s Sharer) Option {
	return func(b *Briefing) { b.sharer = s }
}

func WithClipboard(c Clipboard) Option {
	return func(b *Briefing) { b.clipboard = c }
}

// WithShareResetDelay sets how long Share Status stays copied.
func WithShareResetDelay(d time.Duration) Option {
	return func(b *Briefing) {
		if d > 0 {
			b.resetDelay = d
		}
	}
}

type Briefing struct {
	summarizer summary.Summarizer
	player     Player
	sharer     Sharer
	clipboard  Clipboard
	resetDelay time.Duration

	// cancelled by Close, aborting in-flight generation
	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	version     uint64
	articleText string
	summary     string
	generation  GenerationStatus
	playback    playback.Status
	errMsg      string
	share       ShareStatus
	shareSeq    uint64
	shareTimer  *time.Timer
	closed      bool

	subscribers  map[int]func(Snapshot)
	nextSubID    int
	detachPlayer func()
}

func New(s summary.Summarizer, p Player, opts ...Option) *Briefing {
	ctx, cancel := context.WithCancel(context.Background())
	b := &Briefing{
		summarizer:  s,
		player:      p,
		resetDelay:  defaultShareResetDelay,
		ctx:         ctx,
		cancel:      cancel,
		subscribers: make(map[int]func(Snapshot)),
		playback:    p.Status(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.detachPlayer = p.OnChange(b.onPlayback)
	return b
}

// Subscribe registers fn for every future Snapshot and returns a func that
// removes it.
func (b *Briefing) Subscribe(fn func(Snapshot)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return func() {}
	}
	id := b.nextSubID
	b.nextSubID++
	b.subscribers[id] = fn

	return func() {
		b.mu.Lock()
		delete(b.subscribers, id)
		b.mu.Unlock()
	}
}

func (b *Briefing) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *Briefing) SetArticleText(text string) {
	b.update(func() bool {
		if b.articleText == text {
			return false
		}
		b.articleText = text
		return true
	})
}

func (b *Briefing) CanGenerate() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.canGenerateLocked()
}

func (b *Briefing) CanPlay() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.canPlayLocked()
}

// GenerateSummaryAndPlay summarizes the current article and starts reading
// the result. Only one generation runs at a time; a call made while one is
// loading, or with too little text, returns ErrNotReady without contacting
// the summarizer.
func (b *Briefing) GenerateSummaryAndPlay(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	if !b.canGenerateLocked() {
		b.mu.Unlock()
		return ErrNotReady
	}
	// loading claims the single flight; the summary is cleared after Stop
	b.generation = GenerationLoading
	b.errMsg = ""
	b.mu.Unlock()

	if err := b.player.Stop(); err != nil {
		logrus.WithError(err).Warn("failed to stop previous playback")
	}
	status := b.player.Status()

	b.mu.Lock()
	b.playback = status
	b.summary = ""
	text := b.articleText
	b.version++
	b.mu.Unlock()
	b.publish()

	result, err := b.summarize(ctx, text)

	b.mu.Lock()
	if b.closed {
		b.generation = GenerationIdle
		b.mu.Unlock()
		logrus.Debug("briefing closed during generation, dropping result")
		return ErrClosed
	}
	b.generation = GenerationIdle
	if err != nil {
		b.errMsg = MessageGenerationFailed
	} else {
		b.summary = result
	}
	b.version++
	b.mu.Unlock()
	b.publish()

	if err != nil {
		logrus.WithError(err).Error("summary generation failed")
		return fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	// playback problems are reported through the snapshot error
	if err := b.Play(); err != nil {
		logrus.WithError(err).Warn("automatic playback did not start")
	}
	return nil
}

func (b *Briefing) summarize(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(b.ctx, cancel)
	defer stop()

	result, err := b.summarizer.Summarize(ctx, text)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(result) == "" {
		return "", summary.ErrEmptySummary
	}
	return result, nil
}

// Play reads the summary aloud, resuming if paused.
func (b *Briefing) Play() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	if !b.canPlayLocked() {
		b.mu.Unlock()
		return ErrNotReady
	}
	text := b.summary
	b.mu.Unlock()

	return b.player.Play(text)
}

func (b *Briefing) Pause() error {
	if !b.CanPlay() {
		return ErrNotReady
	}
	return b.player.Pause()
}

// Stop always reaches the player, whatever the state.
func (b *Briefing) Stop() error {
	return b.player.Stop()
}

// TogglePlayback pauses while playing and plays otherwise.
func (b *Briefing) TogglePlayback() error {
	if b.player.Status() == playback.StatusPlaying {
		return b.Pause()
	}
	return b.Play()
}

// ShareSummary offers the summary to the native sharer, falling back to the
// clipboard when there is none or it fails. A cancelled share is not an
// error but still falls back.
func (b *Briefing) ShareSummary(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	text := b.summary
	b.mu.Unlock()

	if text == "" {
		return ErrNothingToShare
	}

	if b.sharer != nil {
		err := b.sharer.Share(ctx, ShareTitle, text)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrShareCancelled) {
			logrus.Info("share cancelled by user")
		} else {
			logrus.WithError(err).Warn("native share failed, copying instead")
		}
	}

	if b.clipboard == nil {
		return ErrShareUnavailable
	}
	if err := b.clipboard.WriteText(text); err != nil {
		logrus.WithError(err).Error("failed to copy summary")
		return fmt.Errorf("%w: %v", ErrShareUnavailable, err)
	}

	b.markCopied()
	return nil
}

func (b *Briefing) markCopied() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.share = ShareCopied
	b.shareSeq++
	seq := b.shareSeq
	if b.shareTimer != nil {
		b.shareTimer.Stop()
	}
	b.shareTimer = time.AfterFunc(b.resetDelay, func() {
		b.update(func() bool {
			if b.shareSeq != seq || b.share != ShareCopied {
				return false
			}
			b.share = ShareIdle
			b.shareTimer = nil
			return true
		})
	})
	b.version++
	b.mu.Unlock()

	b.publish()
}

// Close stops playback, abandons any in-flight generation and detaches all
// subscribers. It is safe to call more than once.
func (b *Briefing) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.cancel()
	if b.shareTimer != nil {
		b.shareTimer.Stop()
		b.shareTimer = nil
	}
	b.subscribers = make(map[int]func(Snapshot))
	detach := b.detachPlayer
	b.mu.Unlock()

	detach()
	return b.player.Stop()
}

func (b *Briefing) onPlayback(status playback.Status, err error) {
	b.update(func() bool {
		b.playback = status
		if err != nil {
			b.errMsg = err.Error()
		}
		return true
	})
}

// update applies fn under the lock and publishes when it reports a change.
func (b *Briefing) update(fn func() bool) {
	b.mu.Lock()
	if b.closed || !fn() {
		b.mu.Unlock()
		return
	}
	b.version++
	b.mu.Unlock()

	b.publish()
}

func (b *Briefing) publish() {
	b.mu.Lock()
	snap := b.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(b.subscribers))
	for _, fn := range b.subscribers {
		subs = append(subs, fn)
	}
	b.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (b *Briefing) snapshotLocked() Snapshot {
	return Snapshot{
		Version:     b.version,
		ArticleText: b.articleText,
		Summary:     b.summary,
		Generation:  b.generation,
		Playback:    b.playback,
		Error:       b.errMsg,
		Share:       b.share,
		CanGenerate: b.canGenerateLocked(),
		CanPlay:     b.canPlayLocked(),
	}
}

func (b *Briefing) canGenerateLocked() bool {
	return utf8.RuneCountInString(strings.TrimSpace(b.articleText)) > MinArticleLength &&
		b.generation != GenerationLoading
}

func (b *Briefing) canPlayLocked() bool {
	return b.summary != "" && b.generation != GenerationLoading
}
