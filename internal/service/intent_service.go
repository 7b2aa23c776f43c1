package service

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/dto"
)

var (
	sectionPattern = regexp.MustCompile(`\b(1[12])\s*[-_ ]?\s*([a-eA-E])\b`)
	classPattern   = regexp.MustCompile(`\bclass\s*(1[12])\b`)
)

// streamGroups maps spoken stream names onto catalog group codes.
var streamGroups = map[string]string{
	"science":    "hsc-sci",
	"commerce":   "hsc-commerces",
	"business":   "hsc-commerces",
	"arts":       "hsc-arts",
	"humanities": "hsc-arts",
}

// dayNames maps day spellings onto the short codes entries use.
var dayNames = map[string]string{
	"sunday":    "Sun",
	"sun":       "Sun",
	"monday":    "Mon",
	"mon":       "Mon",
	"tuesday":   "Tue",
	"tue":       "Tue",
	"wednesday": "Wed",
	"wed":       "Wed",
	"thursday":  "Thu",
	"thu":       "Thu",
}

// subjectKeywords are the subject mentions the resolver scans for, longest
// match first so "mathematics" wins over "math".
var subjectKeywords = []string{
	"mathematics", "math",
	"biology", "bio",
	"chemistry", "chem",
	"physics",
	"ict",
	"english",
	"bangla",
	"accounting",
	"economics",
	"statistics",
	"civics",
	"history",
	"geography",
	"logic",
	"finance",
	"management",
}

// IntentService resolves free-text prompts into structured commands with
// keyword and pattern heuristics. It never calls out to a model; the
// conversational surface stays deterministic and offline.
type IntentService struct {
	logger *zap.Logger
}

// NewIntentService creates a resolver. A nil logger falls back to a no-op.
func NewIntentService(logger *zap.Logger) *IntentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntentService{logger: logger}
}

// Resolve extracts the intent and its slots from a prompt. Unrecognised
// prompts come back with the unknown intent rather than an error.
func (s *IntentService) Resolve(prompt string) dto.Command {
	lower := strings.ToLower(prompt)
	cmd := dto.Command{Intent: s.detectIntent(lower)}

	if m := sectionPattern.FindStringSubmatch(lower); m != nil {
		cmd.SectionCode = m[1] + strings.ToLower(m[2])
	}
	if m := classPattern.FindStringSubmatch(lower); m != nil {
		cmd.ClassName = "Class " + m[1]
	}
	for stream, code := range streamGroups {
		if strings.Contains(lower, stream) {
			cmd.GroupCode = code
			break
		}
	}
	for _, kw := range subjectKeywords {
		if containsWord(lower, kw) {
			cmd.Subject = kw
			break
		}
	}
	for name, code := range dayNames {
		if containsWord(lower, name) {
			cmd.AvoidDay = code
			break
		}
	}

	// A reschedule without both a subject and a day cannot be executed.
	if cmd.Intent == dto.IntentReschedule && (cmd.Subject == "" || cmd.AvoidDay == "") {
		cmd.Intent = dto.IntentUnknown
	}

	s.logger.Debug("prompt resolved",
		zap.String("intent", cmd.Intent),
		zap.String("section", cmd.SectionCode),
		zap.String("subject", cmd.Subject),
		zap.String("avoid_day", cmd.AvoidDay))
	return cmd
}

func (s *IntentService) detectIntent(lower string) string {
	switch {
	case strings.Contains(lower, "regenerate") || strings.Contains(lower, "rebuild"):
		return dto.IntentRegenerateRoutine
	case strings.Contains(lower, "reschedule") ||
		strings.Contains(lower, "avoid") ||
		strings.Contains(lower, "move") && !strings.Contains(lower, "remove"):
		return dto.IntentReschedule
	case strings.Contains(lower, "create") ||
		strings.Contains(lower, "generate") ||
		strings.Contains(lower, "make") ||
		strings.Contains(lower, "build"):
		return dto.IntentCreateRoutine
	case strings.Contains(lower, "show") ||
		strings.Contains(lower, "display") ||
		strings.Contains(lower, "view") ||
		strings.Contains(lower, "see"):
		return dto.IntentShowRoutine
	case strings.Contains(lower, "save") ||
		strings.Contains(lower, "persist") ||
		strings.Contains(lower, "store"):
		return dto.IntentSaveRoutine
	default:
		return dto.IntentUnknown
	}
}

// containsWord reports a whole-word match, so "history" does not trigger on
// "prehistoric".
func containsWord(haystack, word string) bool {
	idx := 0
	for {
		pos := strings.Index(haystack[idx:], word)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(word)
		beforeOK := start == 0 || !isWordChar(haystack[start-1])
		afterOK := end == len(haystack) || !isWordChar(haystack[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
