package persona

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

// Engine turns raw user messages into persona-shaped prompts and raw AI
// replies into final user-facing replies. All methods are pure apart from
// the random pick inside Fallback; the backing tables are immutable after
// NewEngine returns, so one Engine is safely shared across requests.
type Engine struct {
	knowledge []KnowledgeEntry
	directory []resourceMapping
	generic   []string
}

// NewEngine builds an Engine over the static knowledge tables. Call once
// at startup and share the instance.
func NewEngine() *Engine {
	return &Engine{
		knowledge: knowledgeBase,
		directory: resourceDirectory,
		generic:   genericFallbacks,
	}
}

const promptTemplate = `You are Ash, the assistant for a local community support charity in the UK.

Tone rules:
- Speak in the first person, warmly and plainly. No jargon, no lecturing.
- Never give medical or legal advice; signpost to a professional service instead.
- Keep replies short enough to read comfortably on a phone.

Services you can mention: %s.

The person you are helping says:
%s`

// knownServices is the static service list baked into every prompt.
var knownServices = []string{
	"Citizens Advice",
	"Shelter Housing Advice",
	"NHS 111",
	"Mind",
	"Samaritans",
	"Turn2us Benefits Calculator",
	"Community Hub Drop-In",
}

// firstPersonPattern detects whether a reply already speaks in the first
// person. Replies that don't get the empathetic opener prepended.
var firstPersonPattern = regexp.MustCompile(`(?i)\b(i|i'm|i've|i'll|me|my)\b`)

const (
	empatheticOpener = "I hear you, and I'm really glad you reached out. "

	solidaritySentence = " Whatever you're carrying right now, you don't have to face it on your own. " +
		"This community is here for you."

	resourceLeadIn = "\n\nYou might also find these services helpful: "
)

// Enhance wraps a raw user message in the persona's instructional template.
// Deterministic and total: any message, including an empty one, produces a
// valid prompt.
func (e *Engine) Enhance(userMessage string) string {
	return fmt.Sprintf(promptTemplate, strings.Join(knownServices, ", "), userMessage)
}

// PostProcess decorates a raw AI reply based on the original user message:
// an empathetic opener when the reply lacks any first-person marker, a
// solidarity sentence when the message reads as support-seeking, and a
// deduplicated list of matched service names when it reads as
// resource-seeking. Total; never fails.
func (e *Engine) PostProcess(aiReply, originalMessage string) string {
	reply := aiReply
	if !firstPersonPattern.MatchString(reply) {
		reply = empatheticOpener + reply
	}

	lowered := strings.ToLower(originalMessage)

	if e.seeksSupport(lowered) && !strings.Contains(reply, solidaritySentence) {
		reply += solidaritySentence
	}

	if resources := e.matchResources(lowered); len(resources) > 0 {
		reply += resourceLeadIn + strings.Join(resources, ", ") + "."
	}

	return reply
}

// Fallback returns the canned reply for the first knowledge base topic
// whose keyword appears in the message, or one of the generic warm replies
// when nothing matches. Total; never returns an empty string.
func (e *Engine) Fallback(userMessage string) string {
	lowered := strings.ToLower(userMessage)
	for _, entry := range e.knowledge {
		if strings.Contains(lowered, entry.Topic) {
			return entry.Response
		}
	}
	return e.generic[rand.Intn(len(e.generic))]
}

func (e *Engine) seeksSupport(loweredMessage string) bool {
	for _, kw := range supportKeywords {
		if strings.Contains(loweredMessage, kw) {
			return true
		}
	}
	return false
}

// matchResources unions the resource lists of every matched keyword in
// directory declaration order, dropping duplicates.
func (e *Engine) matchResources(loweredMessage string) []string {
	var matched []string
	seen := map[string]bool{}
	for _, mapping := range e.directory {
		if !strings.Contains(loweredMessage, mapping.Keyword) {
			continue
		}
		for _, name := range mapping.Resources {
			if seen[name] {
				continue
			}
			seen[name] = true
			matched = append(matched, name)
		}
	}
	return matched
}
