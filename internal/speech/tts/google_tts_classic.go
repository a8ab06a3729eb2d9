package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

const (
	defaultGoogleVoice = "en-US-Neural2-F"
	// the API rejects inputs over 5000 bytes
	googleChunkBytes  = 4800
	synthesizeTimeout = 30 * time.Second
)

var (
	speakerOnce sync.Once
	speakerRate beep.SampleRate
	speakerErr  error
)

type GoogleClassicTTSEngine struct {
	client *texttospeech.Client
	ctx    context.Context
	voice  string
	volume float64

	current *googleRun
	mu      sync.Mutex
}

type googleRun struct {
	utterance *Utterance
	cancel    context.CancelFunc
	ctrl      *beep.Ctrl
	paused    bool
}

func newGoogleClassicTTSEngine(ctx context.Context, config Config) (*GoogleClassicTTSEngine, error) {
	var opts []option.ClientOption
	if config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.CredentialsFile))
	}

	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS client: %w", err)
	}

	voice := config.Voice
	if voice == "" || voice == "default" {
		voice = defaultGoogleVoice
	}
	volume := config.Volume
	if volume == 0 {
		volume = 1.0
	}

	return &GoogleClassicTTSEngine{
		client: client,
		ctx:    ctx,
		voice:  voice,
		volume: volume,
	}, nil
}

func (g *GoogleClassicTTSEngine) Speak(u *Utterance) error {
	if err := validUtterance(u); err != nil {
		return err
	}

	g.mu.Lock()
	if g.current != nil {
		g.mu.Unlock()
		return ErrBusy
	}
	runCtx, cancel := context.WithCancel(g.ctx)
	run := &googleRun{utterance: u, cancel: cancel}
	g.current = run
	voice, volume := g.voice, g.volume
	g.mu.Unlock()

	u.Emit(EventStart, nil)
	go g.play(runCtx, run, voice, volume)

	return nil
}

func (g *GoogleClassicTTSEngine) play(ctx context.Context, run *googleRun, voice string, volume float64) {
	chunks := splitIntoChunks(run.utterance.Text, googleChunkBytes)
	streamers := make([]beep.Streamer, 0, len(chunks))

	for i, chunk := range chunks {
		audio, err := g.synthesize(ctx, chunk, voice, volume, run.utterance)
		if err != nil {
			g.finish(run, fmt.Errorf("failed to synthesize chunk %d: %w", i, err))
			return
		}

		streamer, format, err := mp3.Decode(io.NopCloser(bytes.NewReader(audio)))
		if err != nil {
			g.finish(run, fmt.Errorf("failed to decode chunk %d: %w", i, err))
			return
		}

		rate, err := initSpeaker(format)
		if err != nil {
			g.finish(run, err)
			return
		}
		if format.SampleRate != rate {
			streamers = append(streamers, beep.Resample(4, format.SampleRate, rate, streamer))
		} else {
			streamers = append(streamers, streamer)
		}
	}

	ctrl := &beep.Ctrl{Streamer: beep.Seq(streamers...)}

	g.mu.Lock()
	if g.current != run {
		g.mu.Unlock()
		return
	}
	ctrl.Paused = run.paused
	run.ctrl = ctrl
	g.mu.Unlock()

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		// runs on the speaker goroutine with the speaker locked
		go g.finish(run, nil)
	})))
}

func (g *GoogleClassicTTSEngine) synthesize(ctx context.Context, text, voice string, volume float64, u *Utterance) ([]byte, error) {
	audioCfg := &texttospeechpb.AudioConfig{
		AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		VolumeGainDb:  volumeGainDb(volume),
	}

	// Chirp voices don't support speakingRate/pitch, skip them
	if !strings.Contains(strings.ToLower(voice), "chirp") {
		audioCfg.SpeakingRate = math.Min(math.Max(rateOrDefault(u.Rate), 0.25), 4.0)
		audioCfg.Pitch = math.Min(math.Max((rateOrDefault(u.Pitch)-1)*20, -20), 20)
	}

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: languageCode(voice),
			Name:         voice,
		},
		AudioConfig: audioCfg,
	}

	ctx, cancel := context.WithTimeout(ctx, synthesizeTimeout)
	defer cancel()

	resp, err := g.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.AudioContent, nil
}

// finish reports the end of a run unless it was already cancelled.
func (g *GoogleClassicTTSEngine) finish(run *googleRun, err error) {
	g.mu.Lock()
	if g.current != run {
		g.mu.Unlock()
		return
	}
	g.current = nil
	g.mu.Unlock()
	run.cancel()

	if err != nil {
		logrus.WithError(err).Warn("google tts playback failed")
		run.utterance.Emit(EventError, err)
		return
	}
	run.utterance.Emit(EventEnd, nil)
}

func (g *GoogleClassicTTSEngine) Cancel() error {
	g.mu.Lock()
	run := g.current
	if run == nil {
		g.mu.Unlock()
		return nil
	}
	g.current = nil
	ctrl := run.ctrl
	g.mu.Unlock()

	run.cancel()
	if ctrl != nil {
		speaker.Lock()
		ctrl.Streamer = nil
		speaker.Unlock()
	}

	run.utterance.Emit(EventEnd, nil)
	return nil
}

func (g *GoogleClassicTTSEngine) Pause() error {
	return g.setPaused(true)
}

func (g *GoogleClassicTTSEngine) Resume() error {
	return g.setPaused(false)
}

func (g *GoogleClassicTTSEngine) setPaused(paused bool) error {
	g.mu.Lock()
	run := g.current
	if run == nil || run.paused == paused {
		g.mu.Unlock()
		return nil
	}
	run.paused = paused
	ctrl := run.ctrl
	g.mu.Unlock()

	if ctrl != nil {
		speaker.Lock()
		ctrl.Paused = paused
		speaker.Unlock()
	}

	if paused {
		run.utterance.Emit(EventPause, nil)
	} else {
		run.utterance.Emit(EventResume, nil)
	}
	return nil
}

func (g *GoogleClassicTTSEngine) IsSpeaking() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current != nil
}

func (g *GoogleClassicTTSEngine) SetVoice(voice string) error {
	if voice == "" || voice == "default" {
		g.mu.Lock()
		g.voice = defaultGoogleVoice
		g.mu.Unlock()
		return nil
	}

	voices, err := g.GetAvailableVoices()
	if err != nil {
		return err
	}
	matched, err := MatchVoice(voice, voices)
	if err != nil {
		return err
	}

	g.mu.Lock()
	g.voice = matched
	g.mu.Unlock()
	return nil
}

func (g *GoogleClassicTTSEngine) SetVolume(volume float64) error {
	if volume < 0 || volume > 2.0 {
		return fmt.Errorf("volume must be between 0 and 2.0")
	}
	g.mu.Lock()
	g.volume = volume
	g.mu.Unlock()
	return nil
}

func (g *GoogleClassicTTSEngine) GetAvailableVoices() ([]string, error) {
	resp, err := g.client.ListVoices(g.ctx, &texttospeechpb.ListVoicesRequest{})
	if err != nil {
		return nil, err
	}
	voices := []string{}
	for _, v := range resp.Voices {
		voices = append(voices, v.Name)
	}
	return voices, nil
}

// initSpeaker opens the audio device once, at the rate of the first stream.
func initSpeaker(format beep.Format) (beep.SampleRate, error) {
	speakerOnce.Do(func() {
		speakerRate = format.SampleRate
		speakerErr = speaker.Init(speakerRate, speakerRate.N(time.Second/10))
	})
	return speakerRate, speakerErr
}

// volumeGainDb maps a linear volume (1.0 = unchanged) to the API's dB gain.
func volumeGainDb(volume float64) float64 {
	if volume <= 0 {
		return -96
	}
	return math.Min(math.Max(20*math.Log10(volume), -96), 16)
}

// languageCode takes "en-US" from a voice name like "en-US-Neural2-F".
func languageCode(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) < 2 {
		return "en-US"
	}
	return parts[0] + "-" + parts[1]
}

// splitIntoChunks cuts text into pieces of at most limit bytes, preferring
// sentence ends, then spaces, and never splitting a UTF-8 sequence.
func splitIntoChunks(text string, limit int) []string {
	var chunks []string
	for len(text) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		if i := lastBreak(text[:cut]); i > 0 {
			cut = i
		}
		if cut == 0 {
			_, cut = utf8.DecodeRuneInString(text)
		}

		if c := strings.TrimSpace(text[:cut]); c != "" {
			chunks = append(chunks, c)
		}
		text = text[cut:]
	}
	if c := strings.TrimSpace(text); c != "" {
		chunks = append(chunks, c)
	}
	return chunks
}

// lastBreak returns the offset just past the last sentence end in s, else
// just past the last space, else 0.
func lastBreak(s string) int {
	if i := strings.LastIndexAny(s, ".!?。！？"); i > 0 {
		_, size := utf8.DecodeRuneInString(s[i:])
		return i + size
	}
	return strings.LastIndexAny(s, " \t\n") + 1
}
