// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_analysis

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	internal_hinglish "github.com/rapidaai/api/caller-api/internal/hinglish"
	internal_transcript "github.com/rapidaai/api/caller-api/internal/transcript"
)

// =============================================================================
// Conversation scoring
// =============================================================================

// Dimension weights. They sum to 1.0; constraint compliance dominates
// because those rules are exactly the live-pipeline invariants.
const (
	weightConstraint       = 0.30
	weightTopic            = 0.20
	weightPriceEcho        = 0.10
	weightBrevity          = 0.05
	weightRepetition       = 0.05
	weightProductKnowledge = 0.10
	weightNegotiation      = 0.10
	weightCharacter        = 0.10
)

// defaultTopicKeywords detects which enquiry topics the call covered.
var defaultTopicKeywords = map[string][]string{
	"price":        {`rate`, `price`, `kitna`, `kitne`, `hazaar`, `rupay`, `₹`, `\d{4,}`},
	"warranty":     {`warranty`, `guarantee`, `saal ki`},
	"installation": {`install`, `lagwa`, `fitting`, `pipe`},
	"delivery":     {`deliver`, `bhej`, `ghar pe`, `din mein`, `kab tak`},
	"exchange":     {`exchange`, `puran[ae]`, `old`},
}

// productTerms gauges whether the agent talks like someone who knows the
// product category.
var productTerms = map[string][]string{
	"AC": {`ton`, `star`, `inverter`, `split`, `window`, `compressor`,
		`copper`, `aluminium`, `cooling`, `BEE`, `ISEER`},
	"washing_machine": {`front.?load`, `top.?load`, `kg`, `capacity`,
		`drum`, `RPM`, `spin`, `motor`, `automatic`},
	"fridge": {`litre`, `double.?door`, `single.?door`, `side.?by.?side`,
		`convertible`, `compressor`, `freezer`, `frost.?free`},
	"laptop": {`processor`, `RAM`, `SSD`, `i[357]`, `battery`, `screen`,
		`inch`, `GPU`, `Ryzen`, `display`},
}

var negotiationPatterns = []string{
	`online`,
	`2-3 shops|doosri dukaan|aur.*shop`,
	`best price|final price|achha price|kam.*ho`,
	`kuch discount|offer|combo`,
}

var outOfCharacterRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(I am an? AI|language model|I cannot|as an assistant)\b`),
	regexp.MustCompile(`(?i)\b(sure!|absolutely!|great question)\b`),
	regexp.MustCompile(`(?i)\b(thank you for|I appreciate|happy to help)\b`),
	regexp.MustCompile(`(?i)["“”][^"“”]*["“”]`),
}

var (
	digitPriceRe = regexp.MustCompile(`(\d[\d,]*)\s*(?:ka|mein|rupay|₹|hai)`)
	wordPriceRe  = regexp.MustCompile(`(\w+)\s+hazaar`)
)

// echoableContexts mark numbers the agent is expected to repeat back:
// prices, warranty years, delivery days, tonnage. Incidental numbers
// (addresses, percentages) are ignored.
var echoableContexts = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d[\d,]*)\s*(?:ka\b|mein\b|rupay|₹|hai\b|lagega|denge|hoga|milega)`),
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:saal|year|varsh)`),
	regexp.MustCompile(`(?i)(\d+)\s*(?:din|day|hafte|week)`),
	regexp.MustCompile(`(?i)(\d[\d,]*)\s*(?:se|and|to|aur|ya)\s*(\d[\d,]*)`),
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*ton`),
}

// Scores is the per-conversation score breakdown.
type Scores struct {
	Overall          float64     `json:"overall_score"`
	Constraint       float64     `json:"constraint_score"`
	Topic            float64     `json:"topic_score"`
	PriceEcho        float64     `json:"price_echo_score"`
	Brevity          float64     `json:"brevity_score"`
	Repetition       float64     `json:"repetition_score"`
	ProductKnowledge float64     `json:"product_knowledge_score"`
	Negotiation      float64     `json:"negotiation_score"`
	Character        float64     `json:"character_score"`
	TopicsCovered    []string    `json:"topics_covered"`
	PerTurn          []TurnCheck `json:"per_turn"`
	TurnCount        int         `json:"turn_count"`
	Flags            []string    `json:"flags,omitempty"`
}

// NumberEcho is one tracked number and where it came from.
type NumberEcho struct {
	Number   string  `json:"number"`
	Value    float64 `json:"value"`
	UserText string  `json:"user_text"`
}

// NumberEchoes is the echo audit over a whole conversation.
type NumberEchoes struct {
	CorrectNumberEchoed bool         `json:"correct_number_echoed"`
	Echoed              []NumberEcho `json:"echoed"`
	Missed              []NumberEcho `json:"missed"`
}

// ConversationScorer scores transcripts across quality dimensions.
type ConversationScorer struct {
	checker       *ConstraintChecker
	topicKeywords map[string][]*regexp.Regexp
}

// NewConversationScorer builds a scorer with the default topic catalog.
func NewConversationScorer(checker *ConstraintChecker) *ConversationScorer {
	compiled := make(map[string][]*regexp.Regexp, len(defaultTopicKeywords))
	for topic, patterns := range defaultTopicKeywords {
		for _, p := range patterns {
			compiled[topic] = append(compiled[topic], regexp.MustCompile(`(?i)`+p))
		}
	}
	return &ConversationScorer{checker: checker, topicKeywords: compiled}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// ScoreConversation computes the weighted overall score. A transcript with
// zero agent turns scores 0.0 with a flag rather than an error.
func (s *ConversationScorer) ScoreConversation(messages []internal_transcript.Message, productType string) Scores {
	var agentMsgs []internal_transcript.Message
	for _, m := range messages {
		if m.Role == internal_transcript.RoleAgent {
			agentMsgs = append(agentMsgs, m)
		}
	}
	if len(agentMsgs) == 0 {
		return Scores{
			TopicsCovered: []string{},
			PerTurn:       []TurnCheck{},
			Flags:         []string{"no_assistant_messages"},
		}
	}

	perTurn := make([]TurnCheck, 0, len(agentMsgs))
	constraintSum := 0.0
	for _, m := range agentMsgs {
		check := s.checker.CheckAll(m.Text)
		perTurn = append(perTurn, check)
		constraintSum += check.Score
	}
	constraint := constraintSum / float64(len(perTurn))

	topics := s.DetectTopics(messages)
	topic := math.Min(float64(len(topics))/3.0, 1.0)

	priceEcho := s.CheckPriceEcho(messages)
	brevity := brevityScore(agentMsgs)
	repetition := noRepetitionScore(agentMsgs)
	productKnowledge := s.ScoreProductKnowledge(messages, productType)
	negotiation := s.ScoreNegotiationEffectiveness(messages)
	character := s.ScoreCharacterMaintenance(messages)

	overall := constraint*weightConstraint +
		topic*weightTopic +
		priceEcho*weightPriceEcho +
		brevity*weightBrevity +
		repetition*weightRepetition +
		productKnowledge*weightProductKnowledge +
		negotiation*weightNegotiation +
		character*weightCharacter

	return Scores{
		Overall:          round3(overall),
		Constraint:       round3(constraint),
		Topic:            round3(topic),
		PriceEcho:        round3(priceEcho),
		Brevity:          round3(brevity),
		Repetition:       round3(repetition),
		ProductKnowledge: round3(productKnowledge),
		Negotiation:      round3(negotiation),
		Character:        round3(character),
		TopicsCovered:    topics,
		PerTurn:          perTurn,
		TurnCount:        len(agentMsgs),
	}
}

// DetectTopics returns the sorted set of enquiry topics present anywhere in
// the transcript.
func (s *ConversationScorer) DetectTopics(messages []internal_transcript.Message) []string {
	var all strings.Builder
	for _, m := range messages {
		all.WriteString(m.Text)
		all.WriteByte(' ')
	}
	text := all.String()

	var topics []string
	for topic, patterns := range s.topicKeywords {
		for _, re := range patterns {
			if re.MatchString(text) {
				topics = append(topics, topic)
				break
			}
		}
	}
	sort.Strings(topics)
	return topics
}

// CheckPriceEcho checks whether the agent restated the first price the
// counterpart quoted, within the next two turns. Accepts the digit form,
// the full verbalized form, or just the thousands word. Returns a neutral
// 0.5 when no price has been quoted yet.
func (s *ConversationScorer) CheckPriceEcho(messages []internal_transcript.Message) float64 {
	for i, msg := range messages {
		if msg.Role != internal_transcript.RoleCaller {
			continue
		}

		priceNum := 0
		if m := digitPriceRe.FindStringSubmatch(msg.Text); m != nil {
			if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil && n >= 1000 {
				priceNum = n
			}
		}
		if priceNum == 0 {
			if m := wordPriceRe.FindStringSubmatch(strings.ToLower(msg.Text)); m != nil {
				if n, ok := internal_hinglish.NumberForWord(m[1]); ok {
					priceNum = n * 1000
				}
			}
		}
		if priceNum == 0 {
			continue
		}

		priceStr := strconv.Itoa(priceNum)
		hindiForm := ""
		if priceNum < 100000 {
			hindiForm = strings.ToLower(internal_hinglish.NumberToWords(priceNum))
		}
		thousandsWord := ""
		if priceNum >= 1000 {
			thousandsWord = internal_hinglish.OnesWord(priceNum / 1000)
		}

		for j := i + 1; j < len(messages) && j < i+3; j++ {
			if messages[j].Role != internal_transcript.RoleAgent {
				continue
			}
			resp := strings.ToLower(messages[j].Text)
			if strings.Contains(resp, priceStr) ||
				(hindiForm != "" && strings.Contains(resp, hindiForm)) ||
				(thousandsWord != "" && strings.Contains(resp, thousandsWord)) {
				return 1.0
			}
		}
		return 0.0
	}
	return 0.5 // no price given yet
}

// CheckNumberEchoes audits every echoable number the counterpart stated:
// did the agent repeat it back in the following turns, in digits or words?
func (s *ConversationScorer) CheckNumberEchoes(messages []internal_transcript.Message) NumberEchoes {
	result := NumberEchoes{Echoed: []NumberEcho{}, Missed: []NumberEcho{}}

	for i, msg := range messages {
		if msg.Role != internal_transcript.RoleCaller {
			continue
		}

		type tracked struct {
			raw string
			val float64
		}
		seen := map[string]bool{}
		var nums []tracked
		for _, re := range echoableContexts {
			for _, m := range re.FindAllStringSubmatch(msg.Text, -1) {
				for _, g := range m[1:] {
					if g == "" || g[0] < '0' || g[0] > '9' {
						continue
					}
					g = strings.TrimRight(g, ".,;:")
					clean := strings.ReplaceAll(g, ",", "")
					val, err := strconv.ParseFloat(clean, 64)
					if err != nil || seen[g] {
						continue
					}
					seen[g] = true
					nums = append(nums, tracked{raw: g, val: val})
				}
			}
		}
		if len(nums) == 0 {
			continue
		}

		var responses []string
		for j := i + 1; j < len(messages) && j < i+4; j++ {
			if messages[j].Role == internal_transcript.RoleAgent {
				responses = append(responses, strings.ToLower(messages[j].Text))
			}
		}
		if len(responses) == 0 {
			continue
		}
		combined := strings.Join(responses, " ")

		for _, n := range nums {
			clean := strings.ReplaceAll(n.raw, ",", "")
			forms := []string{clean, n.raw}
			if n.val == math.Trunc(n.val) && n.val > 0 && n.val < 100000 {
				intVal := int(n.val)
				forms = append(forms, strings.ToLower(internal_hinglish.NumberToWords(intVal)))
				if intVal >= 1000 {
					if tw := internal_hinglish.OnesWord(intVal / 1000); tw != "" {
						forms = append(forms, tw)
					}
				}
			}

			found := false
			for _, f := range forms {
				if f != "" && strings.Contains(combined, f) {
					found = true
					break
				}
			}

			entry := NumberEcho{Number: n.raw, Value: n.val, UserText: clip(msg.Text, 80)}
			if found {
				result.Echoed = append(result.Echoed, entry)
			} else {
				result.Missed = append(result.Missed, entry)
			}
		}
	}

	result.CorrectNumberEchoed = len(result.Missed) == 0 && len(result.Echoed) > 0
	return result
}

// CheckCallReadiness reports whether enough ground was covered to hang up:
// a price plus at least two other topics.
func (s *ConversationScorer) CheckCallReadiness(messages []internal_transcript.Message) bool {
	topics := s.DetectTopics(messages)
	hasPrice := false
	for _, t := range topics {
		if t == "price" {
			hasPrice = true
		}
	}
	return hasPrice && len(topics) >= 3
}

func brevityScore(agentMsgs []internal_transcript.Message) float64 {
	total := 0
	for _, m := range agentMsgs {
		total += len([]rune(m.Text))
	}
	avg := float64(total) / float64(len(agentMsgs))
	switch {
	case avg < 100:
		return 1.0
	case avg < 200:
		return 0.7
	case avg < 300:
		return 0.4
	default:
		return 0.0
	}
}

func wordSet(text string) map[string]bool {
	out := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		out[w] = true
	}
	return out
}

func noRepetitionScore(agentMsgs []internal_transcript.Message) float64 {
	if len(agentMsgs) < 2 {
		return 1.0
	}
	repetitions := 0
	for i := 1; i < len(agentMsgs); i++ {
		prev := wordSet(agentMsgs[i-1].Text)
		curr := wordSet(agentMsgs[i].Text)
		if len(curr) == 0 {
			continue
		}
		shared := 0
		for w := range curr {
			if prev[w] {
				shared++
			}
		}
		if float64(shared)/float64(len(curr)) > 0.6 {
			repetitions++
		}
	}
	return math.Max(0.0, 1.0-float64(repetitions)/float64(len(agentMsgs)))
}

// ScoreProductKnowledge checks whether the agent uses category-appropriate
// vocabulary. 1 term = 0.3, 2 = 0.6, 3+ = 1.0.
func (s *ConversationScorer) ScoreProductKnowledge(messages []internal_transcript.Message, productType string) float64 {
	text := agentText(messages)
	if text == "" {
		return 0.0
	}

	terms, ok := productTerms[productType]
	if !ok {
		terms = productTerms["AC"]
	}
	matches := 0
	for _, p := range terms {
		if regexp.MustCompile(`(?i)` + p).MatchString(text) {
			matches++
		}
	}
	switch {
	case matches >= 3:
		return 1.0
	case matches >= 2:
		return 0.6
	case matches >= 1:
		return 0.3
	default:
		return 0.0
	}
}

// ScoreNegotiationEffectiveness checks for price anchoring, comparison
// shopping and polite haggling. 1 tactic = 0.3, 2 = 0.7, 3+ = 1.0.
func (s *ConversationScorer) ScoreNegotiationEffectiveness(messages []internal_transcript.Message) float64 {
	text := agentText(messages)
	if text == "" {
		return 0.0
	}

	matches := 0
	for _, p := range negotiationPatterns {
		if regexp.MustCompile(`(?i)` + p).MatchString(text) {
			matches++
		}
	}
	switch {
	case matches >= 3:
		return 1.0
	case matches >= 2:
		return 0.7
	case matches >= 1:
		return 0.3
	default:
		return 0.0
	}
}

// ScoreCharacterMaintenance penalizes turns where the Hindi caller persona
// slips into AI self-references or English customer-service phrasing.
func (s *ConversationScorer) ScoreCharacterMaintenance(messages []internal_transcript.Message) float64 {
	var agentMsgs []internal_transcript.Message
	for _, m := range messages {
		if m.Role == internal_transcript.RoleAgent {
			agentMsgs = append(agentMsgs, m)
		}
	}
	if len(agentMsgs) == 0 {
		return 0.0
	}

	violations := 0
	for _, m := range agentMsgs {
		for _, re := range outOfCharacterRes {
			if re.MatchString(m.Text) {
				violations++
				break // max one violation per turn
			}
		}
	}
	if violations == 0 {
		return 1.0
	}
	return math.Max(0.0, 1.0-float64(violations)/float64(len(agentMsgs)))
}

func agentText(messages []internal_transcript.Message) string {
	var b strings.Builder
	for _, m := range messages {
		if m.Role == internal_transcript.RoleAgent {
			b.WriteString(m.Text)
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(b.String())
}
