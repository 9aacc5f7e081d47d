// Package reply produces canned "AI analyst" replies to user comments.
// It is template substitution driven by keyword matching, never a real
// model call; tests depend on the topic selection being deterministic.
package reply

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// DefaultThinkingDelay is how long a reply is held back after the
// triggering comment, to simulate the analyst "thinking". A UX timing
// contract, not a correctness one.
const DefaultThinkingDelay = 1500 * time.Millisecond

// FallbackTopic is substituted when no keyword matches the comment.
const FallbackTopic = "this issue"

// topics is scanned in declared order; the first case-insensitive
// substring match wins.
var topics = []string{
	"strategic partnerships", "military cooperation", "economic implications",
	"diplomatic relations", "regional stability", "technological advancement",
	"security concerns", "climate impact", "policy development", "international dynamics",
}

// templates each contain exactly one {TOPIC} placeholder.
var templates = []string{
	"Thank you for your insightful comment. Your point about {TOPIC} adds an important dimension to this analysis. Have you considered how this might influence future developments in this domain?",
	"Your perspective is valuable. I'd like to add that recent developments in {TOPIC} seem to align with your assessment. Our analysts have been monitoring similar patterns.",
	"Interesting observation. While there's merit to your view on {TOPIC}, our data suggests some nuance might be needed regarding the timeframe and scale of impact. Would you agree?",
	"Your expertise in {TOPIC} is evident. I'd be interested to hear more about how you see this evolving over the next 6-12 months given the current geopolitical landscape.",
	"Your comment highlights an often overlooked aspect of {TOPIC}. This is precisely the kind of critical thinking that enhances our collective understanding of complex issues.",
}

// Synthesizer fills a randomly chosen template with the topic matched
// in the comment text. Synthesize is safe for concurrent use; reply
// timers for separate comments may fire at the same time.
type Synthesizer struct {
	mu    sync.Mutex
	rng   *rand.Rand
	delay time.Duration
}

// NewSynthesizer returns a Synthesizer drawing templates from rng.
// delay <= 0 falls back to DefaultThinkingDelay.
func NewSynthesizer(rng *rand.Rand, delay time.Duration) *Synthesizer {
	if delay <= 0 {
		delay = DefaultThinkingDelay
	}
	return &Synthesizer{rng: rng, delay: delay}
}

// Topic returns the first declared keyword appearing in comment,
// case-insensitively, or FallbackTopic when none does.
func (s *Synthesizer) Topic(comment string) string {
	lower := strings.ToLower(comment)
	for _, topic := range topics {
		if strings.Contains(lower, strings.ToLower(topic)) {
			return topic
		}
	}
	return FallbackTopic
}

// Synthesize builds the reply text for a comment.
func (s *Synthesizer) Synthesize(comment string) string {
	s.mu.Lock()
	template := templates[s.rng.Intn(len(templates))]
	s.mu.Unlock()
	return strings.Replace(template, "{TOPIC}", s.Topic(comment), 1)
}

// Delay is how long callers should hold a reply back.
func (s *Synthesizer) Delay() time.Duration {
	return s.delay
}
