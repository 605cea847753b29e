package convctx

import (
	"fmt"
	"regexp"
	"strings"

	"BrewMasterAI/app/services/chat/internal/agent/intent"
)

// Turn is one utterance of the conversation, oldest-first in a history slice.
type Turn struct {
	Role    string
	Content string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultHistoryLimit bounds how many trailing turns feed the prompt context.
const DefaultHistoryLimit = 5

var (
	contextKeywords = []string{
		"continue", "also", "and", "what about", "how about",
		"yes", "no", "okay", "sure", "thanks", "thank you",
		"previous", "earlier", "before", "last time",
		"again", "still", "more", "else", "other",
	}

	confirmationPhrases = []string{
		"yes", "yeah", "yep", "sure", "okay", "ok", "add it", "add that",
		"take it", "i'll take that", "yes please", "sounds good", "perfect",
	}

	productContextKeywords = []string{
		"this", "that", "it", "the one", "same", "different", "another",
		"previous", "last", "earlier", "mentioned", "discussed",
		"compare", "vs", "versus", "difference between",
		"similar", "like that", "alternative",
	}

	referenceKeywords = []string{
		"this product", "that coffee", "the beans", "same order",
		"my order", "my coffee", "my purchase", "what i bought",
	}
)

// ShouldUseChatHistory decides whether the prompt needs conversational
// context. Pure function of (query, intent).
func ShouldUseChatHistory(query string, it intent.Intent) bool {
	q := strings.ToLower(query)

	if it == intent.OrderTaking {
		return true
	}
	if containsAny(q, confirmationPhrases) {
		return true
	}
	// short queries rarely stand on their own
	if len(strings.Fields(query)) <= 3 {
		return true
	}
	if containsAny(q, contextKeywords) {
		return true
	}
	if it == intent.Refund {
		return true
	}
	return false
}

// ShouldResolveProductContext decides whether prior product references must be
// resolved from the history. Pure function of (query, intent).
func ShouldResolveProductContext(query string, it intent.Intent) bool {
	q := strings.ToLower(query)

	if it == intent.OrderTaking {
		return true
	}
	if containsAny(q, confirmationPhrases) {
		return true
	}
	if it == intent.Sales {
		if containsAny(q, productContextKeywords) || containsAny(q, referenceKeywords) {
			return true
		}
	}
	if it == intent.Refund && containsAny(q, referenceKeywords) {
		return true
	}
	if containsAny(q, productContextKeywords) {
		return true
	}
	return false
}

// HistoryContext formats the last limit turns, oldest first, for prompt
// embedding. Empty history yields "".
func HistoryContext(history []Turn, limit int) string {
	if len(history) == 0 {
		return ""
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	recent := history
	if len(recent) > limit {
		recent = recent[len(recent)-limit:]
	}

	lines := []string{"Recent Conversation History:"}
	for _, turn := range recent {
		switch turn.Role {
		case RoleUser:
			lines = append(lines, "Customer: "+turn.Content)
		case RoleAssistant:
			lines = append(lines, "Assistant: "+turn.Content)
		}
	}
	return strings.Join(lines, "\n")
}

var (
	productMentionPattern = regexp.MustCompile(`\*\*([^*]+)\*\*\s*\(ID:\s*(\d+)\)\s*-\s*[₹$]([0-9.,]+)`)
	cartMentionPattern    = regexp.MustCompile(`ADD TO CART.*Product ID\s*(\d+)`)
)

// ProductReference scans the trailing history, most recent turn first, for
// assistant messages carrying product citations or cart directives, and
// renders them as a referenced-product block. Scanning stops at the first
// turn that yields any match; matches are never merged across turns. No match
// within the window returns "".
func ProductReference(query string, history []Turn) string {
	if len(history) == 0 {
		return ""
	}

	q := strings.ToLower(query)
	isConfirmation := containsAny(q, []string{"yes", "yeah", "yep", "sure", "okay", "ok", "add it", "add that", "take it"})
	hasReference := containsAny(q, []string{"it", "that", "this", "the item", "the product"})
	if !isConfirmation && !hasReference {
		return ""
	}

	window := history
	if len(window) > DefaultHistoryLimit {
		window = window[len(window)-DefaultHistoryLimit:]
	}

	for i := len(window) - 1; i >= 0; i-- {
		turn := window[i]
		if turn.Role != RoleAssistant {
			continue
		}

		productMatches := productMentionPattern.FindAllStringSubmatch(turn.Content, -1)
		cartMatches := cartMentionPattern.FindAllStringSubmatch(turn.Content, -1)
		if len(productMatches) == 0 && len(cartMatches) == 0 {
			continue
		}

		lines := []string{"Referenced Product from Previous Message:"}
		for _, m := range productMatches {
			lines = append(lines, fmt.Sprintf("- %s (ID: %s) - ₹%s", strings.TrimSpace(m[1]), m[2], m[3]))
		}
		for _, m := range cartMatches {
			lines = append(lines, "- Previous cart instruction for Product ID: "+m[1])
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

// Format assembles retrieved passages, chat context and product context into
// the single context block handed to the prompt synthesizer.
func Format(passages []string, chatContext, productContext string) string {
	var parts []string

	if len(passages) > 0 {
		parts = append(parts, "Retrieved Information:")
		parts = append(parts, passages...)
	}
	if chatContext != "" {
		parts = append(parts, "\nPrevious Conversation:", chatContext)
	}
	if productContext != "" {
		parts = append(parts, "\nProduct Information:", productContext)
	}
	return strings.Join(parts, "\n")
}

func containsAny(query string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(query, kw) {
			return true
		}
	}
	return false
}
