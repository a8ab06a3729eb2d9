package tts

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

var ErrVoiceNotFound = errors.New("voice not found")

// MatchVoice resolves a user-typed voice name against the engine's list.
// An exact case-insensitive match wins, otherwise the closest fuzzy match.
func MatchVoice(query string, voices []string) (string, error) {
	for _, v := range voices {
		if strings.EqualFold(v, query) {
			return v, nil
		}
	}

	ranks := fuzzy.RankFindFold(query, voices)
	if len(ranks) == 0 {
		return "", fmt.Errorf("%w: %s", ErrVoiceNotFound, query)
	}
	sort.Sort(ranks)
	return ranks[0].Target, nil
}

// FilterVoices returns the voices that fuzzily contain query.
func FilterVoices(query string, voices []string) []string {
	if strings.TrimSpace(query) == "" {
		return voices
	}
	return fuzzy.FindFold(query, voices)
}
