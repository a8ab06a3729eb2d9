package tts

import (
	"io"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNewEngine(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{name: "mock", config: Config{Type: "mock"}},
		{name: "unknown type", config: Config{Type: "festival"}, wantErr: "unsupported TTS engine type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := NewEngine(tt.config)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("NewEngine() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewEngine() error = %v", err)
			}
			if engine == nil {
				t.Fatal("NewEngine() returned nil engine")
			}
		})
	}
}

func TestGetAvailableEnginesIncludesGoogleWithCredentials(t *testing.T) {
	engines := GetAvailableEngines(Config{CredentialsFile: "/tmp/creds.json"})
	found := false
	for _, e := range engines {
		if e == EngineTypeGoogleClassic {
			found = true
		}
	}
	if !found {
		t.Errorf("GetAvailableEngines() = %v, want googleclassic", engines)
	}
	if got := getBestEngineForPlatform(Config{CredentialsFile: "/tmp/creds.json"}); got != EngineTypeGoogleClassic {
		t.Errorf("getBestEngineForPlatform() = %s, want googleclassic", got)
	}
}

func TestESpeakArgs(t *testing.T) {
	u := NewUtterance("hello there")
	u.Rate = 0.9
	u.Pitch = 1.1

	args, stdin := espeakArgs(u, Config{Voice: "en-gb", Volume: 1.0})

	want := []string{"-v", "en-gb", "-s", "157", "-p", "55", "-a", "100", "--stdin"}
	if strings.Join(args, " ") != strings.Join(want, " ") {
		t.Errorf("espeakArgs() = %v, want %v", args, want)
	}

	buf := new(strings.Builder)
	if _, err := io.Copy(buf, stdin); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "hello there" {
		t.Errorf("stdin = %q", buf.String())
	}
}

func TestESpeakArgsClampsPitchAndVolume(t *testing.T) {
	u := NewUtterance("x")
	u.Pitch = 3.0

	args, _ := espeakArgs(u, Config{Volume: 5})
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-p 99") {
		t.Errorf("pitch not clamped: %s", joined)
	}
	if !strings.Contains(joined, "-a 200") {
		t.Errorf("volume not clamped: %s", joined)
	}
	if strings.Contains(joined, "-v") {
		t.Errorf("unexpected voice flag: %s", joined)
	}
}

func TestParseESpeakVoices(t *testing.T) {
	output := `Pty Language       Age/Gender VoiceName          File                 Other Languages
 5  af              --/M      Afrikaans          gmw/af
 5  en-gb           --/M      English_(Great_Britain) gmw/en            (en 2)

`
	got := parseESpeakVoices(output)
	want := []string{"Afrikaans", "English_(Great_Britain)"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("parseESpeakVoices() = %v, want %v", got, want)
	}
}

func TestSayArgs(t *testing.T) {
	u := NewUtterance("hello")
	u.Rate = 0.9

	args, _ := sayArgs(u, Config{Voice: "Samantha"})
	want := "-v Samantha -r 157 -f -"
	if got := strings.Join(args, " "); got != want {
		t.Errorf("sayArgs() = %q, want %q", got, want)
	}
}

func TestParseSayVoices(t *testing.T) {
	output := `Albert              en_US    # Hello! My name is Albert.
Bad News            en_US    # Hello! My name is Bad News.
Samantha            en_US    # Hello, my name is Samantha.
`
	got := parseSayVoices(output)
	want := []string{"Albert", "Bad News", "Samantha"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("parseSayVoices() = %v, want %v", got, want)
	}
}

func TestGoogleHelpers(t *testing.T) {
	if got := languageCode("en-GB-Neural2-A"); got != "en-GB" {
		t.Errorf("languageCode() = %q", got)
	}
	if got := languageCode("weird"); got != "en-US" {
		t.Errorf("languageCode(weird) = %q", got)
	}
	if got := volumeGainDb(1.0); got != 0 {
		t.Errorf("volumeGainDb(1.0) = %v, want 0", got)
	}
	if got := volumeGainDb(0); got != -96 {
		t.Errorf("volumeGainDb(0) = %v, want -96", got)
	}

}

func TestSplitIntoChunks(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"short", "Hello world.", 100, []string{"Hello world."}},
		{"multibyte never split", strings.Repeat("é", 10), 5, []string{"éé", "éé", "éé", "éé", "éé"}},
		{"sentence end", "One two. Three four five.", 17, []string{"One two.", "Three four five."}},
		{"space", "alpha beta gamma", 12, []string{"alpha beta", "gamma"}},
		{"cjk sentences", "天气很好。明天下雨。", 20, []string{"天气很好。", "明天下雨。"}},
		{"empty", "", 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitIntoChunks(tt.text, tt.limit)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("splitIntoChunks() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitIntoChunksByteBudget(t *testing.T) {
	// 5600 characters but 16800 bytes
	text := strings.Repeat("这是一个很长的新闻摘要句子。", 400)

	chunks := splitIntoChunks(text, googleChunkBytes)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want several", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > googleChunkBytes {
			t.Errorf("chunk %d is %d bytes, limit %d", i, len(c), googleChunkBytes)
		}
		if !utf8.ValidString(c) {
			t.Errorf("chunk %d is not valid UTF-8", i)
		}
	}
	if strings.Join(chunks, "") != text {
		t.Error("chunks do not reassemble the text")
	}
}
