package domain

import "strings"

// MatchTopic reports whether topic matches pattern. A "*" segment in the
// pattern matches exactly one topic segment, so "currency.*" matches
// "currency.new" but not "currency.new.extra".
func MatchTopic(pattern, topic string) bool {
	patternParts := strings.Split(pattern, ".")
	topicParts := strings.Split(topic, ".")
	if len(patternParts) != len(topicParts) {
		return false
	}
	for i := range patternParts {
		if patternParts[i] == "*" {
			continue
		}
		if patternParts[i] != topicParts[i] {
			return false
		}
	}
	return true
}
