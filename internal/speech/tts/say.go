package tts

import (
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// sayArgs builds arguments for the macOS say command. Rate is words per
// minute around a default of 175. say has no pitch or volume flags.
func sayArgs(u *Utterance, config Config) ([]string, io.Reader) {
	args := []string{}

	if config.Voice != "" {
		args = append(args, "-v", config.Voice)
	}

	rate := int(175 * rateOrDefault(u.Rate))
	args = append(args, "-r", strconv.Itoa(rate))

	args = append(args, "-f", "-")
	return args, strings.NewReader(u.Text)
}

func sayVoices(sayPath string) ([]string, error) {
	output, err := exec.Command(sayPath, "-v", "?").Output()
	if err != nil {
		return nil, err
	}
	return parseSayVoices(string(output)), nil
}

// "Samantha            en_US    # Hello, my name is Samantha."
var sayVoiceLine = regexp.MustCompile(`^(.+?)\s{2,}\S+\s+#`)

func parseSayVoices(output string) []string {
	voices := make([]string, 0)

	for _, line := range strings.Split(output, "\n") {
		m := sayVoiceLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		voices = append(voices, strings.TrimSpace(m[1]))
	}

	return voices
}
