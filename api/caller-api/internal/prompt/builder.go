// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_prompt

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	sizeAdjectiveRe = regexp.MustCompile(`(?i)^(small|medium|large|big|compact|mini|full[- ]sized?)\s+`)
	parentheticalRe = regexp.MustCompile(`\s*\([^)]*\)`)
	withClauseRe    = regexp.MustCompile(`(?i)\s+with\s+.*`)
)

// CasualProductName strips verbose specs from the category so the agent can
// refer to the product the way a buyer would on the phone:
// "Medium double door fridge with separate freezer section (220-280L)"
// becomes "double door fridge". Falls back to the product type when stripping
// leaves nothing usable.
func CasualProductName(req ProductRequirements) string {
	name := req.Category
	if name == "" {
		name = req.ProductType
	}
	name = parentheticalRe.ReplaceAllString(name, "")
	name = withClauseRe.ReplaceAllString(name, "")
	name = sizeAdjectiveRe.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	if len(name) < 3 {
		name = req.ProductType
	}
	return name
}

// BuildGreeting returns the scripted opener spoken before the model takes
// over, e.g. `Hello, yeh Croma hai? double door fridge ke baare mein poochna tha.`
func BuildGreeting(req ProductRequirements, store DiscoveredStore) string {
	return fmt.Sprintf("Hello, yeh %s hai? %s ke baare mein poochna tha.",
		store.Name, CasualProductName(req))
}

// BuildPrompt assembles the complete system prompt for one store call.
func BuildPrompt(req ProductRequirements, research ResearchOutput, store DiscoveredStore) string {
	productDesc := req.Category
	if productDesc == "" {
		productDesc = req.ProductType
	}
	casual := CasualProductName(req)
	storeType := inferStoreType(req.ProductType)

	var careLines []string
	for _, q := range limit(research.QuestionsToAsk, 10) {
		careLines = append(careLines, "- "+q)
	}
	careAbout := strings.Join(careLines, "\n")
	if careAbout == "" {
		careAbout = defaultCareAbout
	}

	topics := limit(research.TopicsToCover, 10)
	if len(topics) == 0 {
		topics = []string{"price", "warranty", "installation", "delivery"}
	}

	minTopics := len(topics) - 1
	if minTopics > 3 {
		minTopics = 3
	}
	if minTopics < 2 {
		minTopics = 2
	}

	area := store.NearbyArea
	if area == "" {
		area = store.Area
	}
	if area == "" && req.Location != "" {
		area = strings.TrimSpace(strings.Split(req.Location, ",")[0])
	}
	areaLine := ""
	if area != "" {
		areaLine = fmt.Sprintf("\nYOUR AREA: %s — if asked where you live, say \"%s mein rehta hoon\" or \"%s side\".",
			area, area, area)
	}

	priceNote := ""
	if research.MarketPriceRange != nil {
		priceNote = fmt.Sprintf(
			"\nExpected market price range: %d-%d rupees. Use this to gauge if the shopkeeper's price is reasonable.",
			research.MarketPriceRange.Low, research.MarketPriceRange.High)
	}

	greetingNote := fmt.Sprintf(
		"\nNOTE: You have already greeted the shopkeeper with: \"%s\""+
			"\nDo NOT repeat the greeting. Continue the conversation from the shopkeeper's response.",
		BuildGreeting(req, store))

	var b strings.Builder
	fmt.Fprintf(&b, "You are a regular middle-class Indian guy calling a local %s to ask about %s. "+
		"You speak the way a normal person speaks on the phone in Hindi — casual, natural, with filler words.\n\n",
		storeType, casual)

	b.WriteString(`VOICE & TONE:
- Speak in natural spoken Hindi/Hinglish. NOT formal Hindi, NOT written Hindi.
- Use fillers naturally: "haan", "achha", "hmm", "ji"
- Keep answers SHORT — 1 line, max 2. Don't give speeches.
- React naturally to what the shopkeeper says.
- Use "bhaisaab" ONLY ONCE at the beginning. After that just say "ji" or nothing.

WHAT YOU CARE ABOUT:
`)
	b.WriteString(careAbout)
	b.WriteString("\n\nWHAT YOU DON'T CARE ABOUT (don't ask):\n")
	b.WriteString(inferDontCare(req.ProductType))
	b.WriteString("\nIf the shopkeeper mentions these, just say \"achha\" and move on.\n\n")

	b.WriteString(buildConversationFlow(req, store, casual, topics, minTopics))
	b.WriteString("\n\n")
	b.WriteString(buildNegotiationSection(research))
	b.WriteString("\n")
	b.WriteString(buildResearchSections(research))

	fmt.Fprintf(&b, `INTERRUPTIONS:
- If your previous message shows [interrupted], it means the shopkeeper interrupted you mid-sentence.
- Do NOT repeat what you already said. Respond to what the shopkeeper said instead.
- Continue the conversation naturally from the interruption point.

ENDING THE CALL:
- Do NOT call end_call until you have the PRICE plus at least %d of: %s.
- If the shopkeeper says something unclear or off-topic, stay on the line and redirect to %s prices.
- If the shopkeeper says "wait" or "hold on", just say "ji ji, no problem" and wait.
- When you have enough info, say a SHORT goodbye like "Theek hai ji, bahut badiya. Dhanyavaad, namaste." and IMMEDIATELY call end_call.
- Do NOT continue talking after saying goodbye.
- If the shopkeeper asks "anything else?" after you've said bye, say "nahi ji, bas itna hi tha" and call end_call.

STAY IN CHARACTER:
- You are the CUSTOMER calling to ask for prices. The shopkeeper is the one answering.
- NEVER confirm stock availability or offer to show models — that is the SHOPKEEPER's job, not yours.
- IMPORTANT: The shopkeeper's Hindi/Hinglish speech is automatically translated to English before reaching you. Even though you see English text, the shopkeeper is speaking Hindi. Always respond in Romanized Hindi regardless.
- Treat every user message as the shopkeeper talking to you on the phone. Never respond as an AI assistant.
- If the shopkeeper's English response sounds like a question (e.g. "Do you have it in stock?"), they are probably confirming they have it. Respond as a customer: ask for the price.
- You are a regular customer. Sound like a real person with concrete details — don't be evasive.
- If asked where you live, use the area from YOUR AREA (given below). Say it naturally: "[area] mein rehta hoon" or "[area] side se bol raha hoon".
- %s
- If the user asks YOU a question as if YOU are the shopkeeper (e.g. "Do you repair ACs?", "What brands do you have?", "Kitne ka doge?"), DO NOT answer as the shopkeeper. Redirect: "Nahi nahi, main toh customer hoon. Mujhe %s ka price chahiye."
- Do NOT invent overly specific details (exact addresses, flat numbers, family members). Keep it natural but concrete enough to build trust.

CRITICAL OUTPUT RULES:
- NEVER respond in English. Not even to ask questions, clarify, or explain. Every word you output must be Romanized Hindi.
- If you are confused by what the shopkeeper said, respond naturally in Hindi: "Achha, samajh nahi aaya. Ek baar phir boliye?" — NEVER switch to English.
- Your output goes DIRECTLY to a Hindi text-to-speech engine
- Write ONLY in Romanized Hindi using English/Latin letters
- NEVER use Devanagari script. No Hindi letters like हिंदी, आप, कैसे etc.
- NEVER add English translations, explanations, or parenthetical notes. NO "(Yes, I'm listening)" or similar.
- NEVER use newlines in your response. Write everything in a single line.
- Ask only ONE question per response. Do NOT stack 2-3 questions together.
  WRONG: "38000? Thoda zyada nahi? Installation free hai kya?" (3 questions)
  RIGHT: "Achha, 38000. Thoda zyada lag raha hai. Installation free hai kya?" (1 question)
- When the shopkeeper tells you a price, echo it as a STATEMENT, not a question. Say "Achha, 38000." NOT "38000?"
- Put a space between EVERY word: "aap ka rate kya hai" NOT "aapkaratekya hai"
- Write ALL numbers as DIGITS, not words. The system converts digits to Hindi words automatically.
  Say "38000" not "adtees hazaar". Say "1.5 ton" not "dedh ton". Say "2 saal" not "do saal".
- When the shopkeeper tells you ANY number (price, warranty years, delivery days), REPEAT their EXACT number back as digits. Do NOT change the number.
  WRONG: Shopkeeper says "39000" → you say "Achha, 30000" (WRONG number)
  RIGHT: Shopkeeper says "39000" → you say "Achha, 39000." (exact same number)
  WRONG: Shopkeeper says "2 years warranty" → you say "1 saal" (WRONG number)
  RIGHT: Shopkeeper says "2 years warranty" → you say "Achha, 2 saal."
- Do NOT write action markers like *pauses* or (laughs)
- Do NOT write "[end_call]" as text. Use the actual end_call tool function when you want to end the call.
- Only output the exact words you would speak. Nothing else.

`, minTopics, strings.Join(topics[1:], ", "), casual,
		inferExchangeItem(req.ProductType), casual)

	b.WriteString(buildExamples(req, research))
	fmt.Fprintf(&b, "\n\nPRODUCT: %s\nSTORE: %s%s%s%s\n",
		productDesc, store.Name, areaLine, priceNote, greetingNote)

	return b.String()
}

const defaultCareAbout = `- Price — "Best price kya doge?" / "Final kitna lagega?"
- Installation — "Installation free hai ya alag se?"
- Warranty — "Warranty kitni hai?"
- Delivery — "Delivery kitne din mein hogi?"
- Availability — "Stock mein hai?"`

func limit[T any](in []T, n int) []T {
	if len(in) > n {
		return in[:n]
	}
	return in
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func inferStoreType(productType string) string {
	pt := strings.ToLower(productType)
	switch {
	case containsAny(pt, "ac", "fridge", "refrigerator", "washing machine", "tv", "television"):
		return "electronics/appliance shop"
	case containsAny(pt, "laptop", "computer", "desktop"):
		return "computer shop"
	case containsAny(pt, "phone", "mobile", "smartphone"):
		return "mobile shop"
	case containsAny(pt, "furniture", "sofa", "table", "bed"):
		return "furniture shop"
	default:
		return "shop"
	}
}

func inferDontCare(productType string) string {
	pt := strings.ToLower(productType)
	switch {
	case strings.Contains(pt, "ac"):
		return "- Technical specs (copper vs aluminium, cooling capacity, inverter details)\n" +
			"- Wi-Fi, smart features, brand comparisons, energy rating details"
	case strings.Contains(pt, "washing machine"):
		return "- Technical specs (RPM details, motor type, drum material)\n" +
			"- Smart features, Wi-Fi connectivity, app control details"
	case containsAny(pt, "laptop", "computer"):
		return "- Benchmark scores, technical comparisons\n" +
			"- Extended spec discussions (exact RAM speed, SSD type details)"
	case containsAny(pt, "phone", "mobile"):
		return "- Detailed camera sensor specs, benchmark scores\n" +
			"- Chipset technical details, band support specifics"
	default:
		return "- Overly technical specifications\n" +
			"- Feature comparisons that don't affect the buying decision"
	}
}

func inferExchangeItem(productType string) string {
	pt := strings.ToLower(productType)
	switch {
	case strings.Contains(pt, "ac"):
		return `If asked about your old AC for exchange, say "Voltas ka hai, kaafi purana ho gaya hai" or "LG ka window AC hai purana". Pick ONE brand and stick with it.`
	case strings.Contains(pt, "washing machine"):
		return `If asked about your old washing machine for exchange, say "Purana semi-automatic hai, kaam nahi kar raha" or "LG ka hai, bahut purana ho gaya". Pick ONE and stick with it.`
	case containsAny(pt, "fridge", "refrigerator"):
		return `If asked about your old fridge for exchange, say "Godrej ka hai, kaafi purana" or "LG ka single door hai". Pick ONE and stick with it.`
	case containsAny(pt, "laptop", "computer"):
		return `If asked about your old laptop for exchange, say "HP ka hai, 4-5 saal purana" or "Dell ka hai, bahut slow ho gaya". Pick ONE and stick with it.`
	case containsAny(pt, "phone", "mobile"):
		return `If asked about your old phone for exchange, say "Samsung ka hai, 2-3 saal purana" or "Redmi ka hai, screen toot gayi". Pick ONE and stick with it.`
	default:
		return "If asked about exchange, say you have an old one of the same product type. Keep it vague but natural."
	}
}

func buildConversationFlow(req ProductRequirements, store DiscoveredStore, casual string, topics []string, minTopics int) string {
	pt := strings.ToLower(req.ProductType)

	var opener string
	switch {
	case strings.Contains(pt, "ac"):
		opener = "- After confirming the shop, ask about the AC. If they ask tonnage, confirm it." +
			"\n- If they ask split or window, confirm split (unless your category says otherwise)."
	case strings.Contains(pt, "washing machine"):
		opener = "- After confirming the shop, ask about the washing machine." +
			"\n- If they ask capacity (kg) or front/top load, confirm based on your product specs."
	case containsAny(pt, "fridge", "refrigerator"):
		opener = "- After confirming the shop, ask about the fridge." +
			"\n- If they ask single or double door, confirm based on your product specs."
	case containsAny(pt, "laptop", "computer"):
		opener = "- After confirming the shop, ask about the laptop." +
			"\n- If they ask about use case (gaming/work/student), answer naturally based on your requirements."
	default:
		opener = fmt.Sprintf("- After confirming the shop, ask about the %s.", casual)
	}

	storeLower := strings.ToLower(store.Name)
	var approach string
	if containsAny(storeLower, "croma", "reliance", "vijay sales", "poorvika", "pai") {
		approach = "- This is a chain store — ask about ongoing offers, combos, and exchange deals." +
			"\n- Chain stores have less room for direct price negotiation, but often have card offers and bundled deals."
	} else {
		approach = "- This is a local dealer — negotiate more directly on price." +
			"\n- Mention you're checking 2-3 shops. Ask for their best price. Push back gently on the first quote."
	}

	return fmt.Sprintf(`CONVERSATION FLOW:
%s
- Ask ONE question at a time. Do not stack 2-3 questions in one response.
- Cover these topics naturally: %s
%s
- After getting the price and at least %d other details, wrap up and CALL the end_call tool
- Follow the shopkeeper's responses naturally — don't go through a checklist`,
		opener, strings.Join(topics, " → "), approach, minTopics)
}

func buildNegotiationSection(research ResearchOutput) string {
	var lines []string

	if research.MarketPriceRange != nil {
		lines = append(lines, fmt.Sprintf(
			`- If the price seems high, say casually: "Online toh %d ke aas paas dikh raha tha"`,
			research.MarketPriceRange.Low))
	}
	lines = append(lines,
		`- Mention you are comparing: "Main 2-3 shops se rate le raha hoon, best price do toh aaj hi le lunga"`)

	ni := research.NegotiationIntelligence
	if ni.OnlineReference != "" {
		lines = append(lines, "- Online reference: "+ni.OnlineReference)
	}
	if ni.BundleTricks != "" {
		lines = append(lines, "- Watch out for: "+ni.BundleTricks)
	}

	if len(research.RecommendedProducts) > 0 {
		rp := research.RecommendedProducts[0]
		if rp.Model != "" && rp.StreetPrice != "" {
			lines = append(lines, fmt.Sprintf(
				`- If relevant, mention: "%s ka online price %s dikh raha tha"`, rp.Model, rp.StreetPrice))
		}
	}

	lines = append(lines,
		"- Keep negotiation GENTLE — you are a savvy buyer, not aggressive.",
		"- If the shopkeeper won't budge, accept gracefully and move on to other topics.")

	return "NEGOTIATION:\n" + strings.Join(lines, "\n")
}

func buildResearchSections(research ResearchOutput) string {
	var parts []string

	var knowledge []string
	if research.ProductSummary != "" {
		knowledge = append(knowledge, research.ProductSummary)
	}
	for _, cp := range limit(research.CompetingProducts, 5) {
		if cp.Name == "" {
			continue
		}
		line := "- " + cp.Name
		if cp.PriceRange != "" {
			line += " (" + cp.PriceRange + ")"
		}
		if cp.Pros != "" {
			line += " — " + cp.Pros
		}
		knowledge = append(knowledge, line)
	}
	if len(knowledge) > 0 {
		parts = append(parts, "PRODUCT KNOWLEDGE:\n"+strings.Join(knowledge, "\n")+
			"\nIf shopkeeper asks 'which model?', name one of these.")
	}

	var recs []string
	for _, rp := range limit(research.RecommendedProducts, 3) {
		if rp.Model == "" {
			continue
		}
		line := "- " + rp.Model
		if rp.StreetPrice != "" {
			line += " (~" + rp.StreetPrice + " online)"
		}
		if rp.Specs != "" {
			line += " — " + rp.Specs
		}
		recs = append(recs, line)
	}
	if len(recs) > 0 {
		parts = append(parts, "RECOMMENDED PRODUCTS:\n"+strings.Join(recs, "\n")+
			"\nCasually mention these if relevant: \"Maine online dekha tha [model] ka price...\"")
	}

	ni := research.NegotiationIntelligence
	var neg []string
	if ni.TypicalMargin != "" {
		neg = append(neg, "- Dealer margin: "+ni.TypicalMargin)
	}
	if ni.SeasonalNotes != "" {
		neg = append(neg, "- Seasonal: "+ni.SeasonalNotes)
	}
	if ni.BundleTricks != "" {
		neg = append(neg, "- Watch out: "+ni.BundleTricks)
	}
	if ni.OnlineReference != "" {
		neg = append(neg, "- Online price: "+ni.OnlineReference)
	}
	if len(neg) > 0 {
		parts = append(parts, "NEGOTIATION INTELLIGENCE:\n"+strings.Join(neg, "\n")+
			"\nUse these naturally — don't dump all at once. Drop one fact at a time when negotiating.")
	}

	if len(research.InsiderKnowledge) > 0 {
		var tips []string
		for _, tip := range limit(research.InsiderKnowledge, 3) {
			tips = append(tips, "- "+tip)
		}
		parts = append(parts, "INSIDER KNOWLEDGE:\n"+strings.Join(tips, "\n")+
			"\nUse strategically — mention only if it helps get a better deal.")
	}

	if len(research.ImportantNotes) > 0 {
		var notes []string
		for _, n := range limit(research.ImportantNotes, 6) {
			notes = append(notes, "- "+n)
		}
		parts = append(parts, "BUYER NOTES:\n"+strings.Join(notes, "\n"))
	}

	firstModel := ""
	if len(research.RecommendedProducts) > 0 {
		firstModel = research.RecommendedProducts[0].Model
	}
	if firstModel == "" && len(research.CompetingProducts) > 0 {
		firstModel = research.CompetingProducts[0].Name
	}
	if firstModel != "" || research.ProductSummary != "" {
		var stuck []string
		if firstModel != "" {
			stuck = append(stuck, fmt.Sprintf(
				`- If shopkeeper asks "which model?", say: "%s ka price kya hai?"`, firstModel))
		}
		stuck = append(stuck,
			`- If you fail to get an answer after 2 attempts, say "Achha theek hai" and move to the next topic.`)
		if research.MarketPriceRange != nil {
			stuck = append(stuck, fmt.Sprintf(
				`- If asked about budget, anchor low: "%d ke aas paas soch rahe the"`,
				research.MarketPriceRange.Low))
		}
		parts = append(parts, "WHEN STUCK:\n"+strings.Join(stuck, "\n"))
	}

	if len(parts) == 0 {
		return ""
	}
	return "\n" + strings.Join(parts, "\n\n") + "\n"
}

func buildExamples(req ProductRequirements, research ResearchOutput) string {
	casual := CasualProductName(req)

	price := "38000"
	if research.MarketPriceRange != nil {
		price = fmt.Sprintf("%d", (research.MarketPriceRange.Low+research.MarketPriceRange.High)/2)
	}

	modelRecovery := ""
	if len(research.CompetingProducts) > 0 && research.CompetingProducts[0].Name != "" {
		modelRecovery = fmt.Sprintf(
			"\nShopkeeper: \"Kaun sa model chahiye?\"\nYou: \"Achha, %s ka kya price hai?\"",
			research.CompetingProducts[0].Name)
	}

	return fmt.Sprintf(`EXAMPLES:
You: "Bhaisaab, %s hai aapke paas?"
Shopkeeper: "Haan, %s ka hai."
You: "Achha, %s. Installation free hai kya?"%s
Shopkeeper: "Haan free hai."
You: "Theek hai. Warranty kitni milegi?"
Shopkeeper: "1 saal ki."
You: "Achha 1 saal. Delivery kitne din mein hogi?"
You: "Theek hai ji, main soch ke bataata hoon. Dhanyavaad." → then call end_call tool`,
		casual, price, price, modelRecovery)
}
