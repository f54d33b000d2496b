// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReq(category string) ProductRequirements {
	return ProductRequirements{ProductType: "AC", Category: category, Location: "Bangalore"}
}

func testStore() DiscoveredStore {
	return DiscoveredStore{Name: "Croma", Area: "Koramangala"}
}

func testResearch() ResearchOutput {
	return ResearchOutput{
		QuestionsToAsk: []string{"Price kya hai?"},
		TopicsToCover:  []string{"price", "warranty", "delivery"},
	}
}

func TestCasualProductName(t *testing.T) {
	tests := []struct {
		name     string
		req      ProductRequirements
		expected string
	}{
		{"strips parenthetical", testReq("double door fridge (220-280L)"), "double door fridge"},
		{"strips size adjective", testReq("Medium double door fridge"), "double door fridge"},
		{"preserves tonnage", testReq("1.5 ton split AC"), "1.5 ton split AC"},
		{"strips with clause", testReq("double door fridge with separate freezer section (220-280L)"), "double door fridge"},
		{"full verbose category", testReq("Medium double door fridge with separate freezer section (220-280L)"), "double door fridge"},
		{"short result falls back to product type", testReq("AC"), "AC"},
		{"short category unchanged", testReq("split AC"), "split AC"},
		{
			"empty category uses product type",
			ProductRequirements{ProductType: "washing machine"},
			"washing machine",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CasualProductName(tt.req))
		})
	}
}

func TestBuildGreeting(t *testing.T) {
	greeting := BuildGreeting(
		testReq("Medium double door fridge with separate freezer section (220-280L)"),
		DiscoveredStore{Name: "Reliance Digital"})
	assert.Contains(t, greeting, "double door fridge")
	assert.NotContains(t, greeting, "(220-280L)")
	assert.NotContains(t, greeting, "Medium")

	greeting = BuildGreeting(testReq("split AC"), DiscoveredStore{Name: "Vijay Sales"})
	assert.True(t, strings.HasPrefix(greeting, "Hello, yeh Vijay Sales hai?"))
	assert.Contains(t, greeting, "ke baare mein poochna tha.")
}

func TestBuildPrompt_ProductKnowledge(t *testing.T) {
	research := testResearch()
	research.ProductSummary = "Samsung and LG dominate the split AC market."
	research.CompetingProducts = []CompetingProduct{
		{Name: "Samsung AR18CY5ARWK", PriceRange: "35000-40000", Pros: "energy efficient"},
		{Name: "LG PS-Q19YNZE", PriceRange: "38000-42000", Pros: "low noise"},
		{Name: "Daikin MTKL50U", PriceRange: "40000-45000", Pros: "best cooling"},
	}

	prompt := BuildPrompt(testReq("1.5 ton split AC"), research, testStore())
	assert.Contains(t, prompt, "PRODUCT KNOWLEDGE:")
	assert.Contains(t, prompt, "Samsung AR18CY5ARWK")
	assert.Contains(t, prompt, "LG PS-Q19YNZE")
	assert.Contains(t, strings.ToLower(prompt), "which model?")
}

func TestBuildPrompt_BuyerNotes(t *testing.T) {
	research := testResearch()
	research.ImportantNotes = []string{
		"Check copper condenser vs aluminium",
		"Installation charges vary 1500-3000",
	}
	prompt := BuildPrompt(testReq("split AC"), research, testStore())
	assert.Contains(t, prompt, "BUYER NOTES:")
	assert.Contains(t, prompt, "copper condenser")
}

func TestBuildPrompt_WhenStuck(t *testing.T) {
	research := testResearch()
	research.ProductSummary = "Popular segment."
	research.CompetingProducts = []CompetingProduct{
		{Name: "Samsung AR18CY5ARWK", PriceRange: "35000-40000", Pros: "good"},
	}
	research.MarketPriceRange = &PriceRange{Low: 35000, High: 45000}

	prompt := BuildPrompt(testReq("1.5 ton split AC"), research, testStore())
	assert.Contains(t, prompt, "WHEN STUCK:")
	assert.Contains(t, prompt, "Samsung AR18CY5ARWK")
	assert.Contains(t, prompt, "35000")
}

func TestBuildPrompt_EmptyResearchOmitsSections(t *testing.T) {
	prompt := BuildPrompt(testReq("split AC"), testResearch(), testStore())
	assert.NotContains(t, prompt, "PRODUCT KNOWLEDGE:")
	assert.NotContains(t, prompt, "BUYER NOTES:")
	assert.NotContains(t, prompt, "WHEN STUCK:")
	assert.NotContains(t, prompt, "RECOMMENDED PRODUCTS:")
	assert.Contains(t, prompt, "PRODUCT:")
}

func TestBuildPrompt_CompetingProductsCappedAtFive(t *testing.T) {
	research := testResearch()
	for i := 0; i < 8; i++ {
		research.CompetingProducts = append(research.CompetingProducts,
			CompetingProduct{Name: fmt.Sprintf("Model%d", i), PriceRange: "10000", Pros: "ok"})
	}
	prompt := BuildPrompt(testReq("AC"), research, testStore())
	assert.Contains(t, prompt, "Model0")
	assert.Contains(t, prompt, "Model4")
	assert.NotContains(t, prompt, "Model5")
}

func TestBuildPrompt_NotesCappedAtSix(t *testing.T) {
	research := testResearch()
	for i := 0; i < 9; i++ {
		research.ImportantNotes = append(research.ImportantNotes, fmt.Sprintf("Note %d", i))
	}
	prompt := BuildPrompt(testReq("AC"), research, testStore())
	assert.Contains(t, prompt, "Note 0")
	assert.Contains(t, prompt, "Note 5")
	assert.NotContains(t, prompt, "Note 6")
}

func TestBuildPrompt_CasualNameInSpokenSections(t *testing.T) {
	research := testResearch()
	research.ProductSummary = "Popular segment."
	req := testReq("Medium double door fridge with separate freezer section (220-280L)")

	prompt := BuildPrompt(req, research, testStore())
	idx := strings.Index(prompt, "PRODUCT:")
	require.Greater(t, idx, 0)
	spoken := prompt[:idx]

	assert.NotContains(t, spoken, "(220-280L)")
	assert.NotContains(t, spoken, "Medium double door fridge with")
	assert.Contains(t, spoken, "double door fridge")
}

func TestBuildPrompt_VerboseCategoryInProductLine(t *testing.T) {
	req := testReq("Medium double door fridge with separate freezer section (220-280L)")
	prompt := BuildPrompt(req, testResearch(), testStore())

	var productLine string
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, "PRODUCT:") {
			productLine = line
			break
		}
	}
	require.NotEmpty(t, productLine)
	assert.Contains(t, productLine, "Medium double door fridge with separate freezer section (220-280L)")
}

func TestBuildPrompt_ModelRecoveryInExamples(t *testing.T) {
	research := testResearch()
	research.CompetingProducts = []CompetingProduct{
		{Name: "Samsung AR18CY5ARWK", PriceRange: "35000-40000", Pros: "good"},
	}
	prompt := BuildPrompt(testReq("1.5 ton split AC"), research, testStore())
	assert.Contains(t, prompt, "Kaun sa model chahiye?")
	assert.Contains(t, prompt, "Samsung AR18CY5ARWK ka kya price hai?")
}

func TestBuildPrompt_GreetingNote(t *testing.T) {
	prompt := BuildPrompt(testReq("split AC"), testResearch(), testStore())
	assert.Contains(t, prompt, "NOTE: You have already greeted")
	assert.Contains(t, prompt, "Do NOT repeat the greeting")

	parts := strings.SplitN(prompt, "NOTE:", 2)
	require.Len(t, parts, 2)
	assert.Contains(t, parts[1], "Croma")
}

func TestBuildPrompt_GreetingNoteUsesCasualName(t *testing.T) {
	prompt := BuildPrompt(
		testReq("Medium double door fridge with separate freezer section (220-280L)"),
		testResearch(), DiscoveredStore{Name: "Reliance"})
	parts := strings.SplitN(prompt, "NOTE:", 2)
	require.Len(t, parts, 2)
	assert.Contains(t, parts[1], "double door fridge")
	assert.NotContains(t, parts[1], "(220-280L)")
}

func TestBuildPrompt_RecommendedProducts(t *testing.T) {
	research := testResearch()
	research.RecommendedProducts = []RecommendedProduct{
		{Model: "Samsung AR18CY5ARWK", StreetPrice: "36000", Specs: "1.5T 5-star inverter"},
		{Model: "LG PS-Q19YNZE", StreetPrice: "39000", Specs: "1.5T AI dual inverter"},
	}
	prompt := BuildPrompt(testReq("1.5 ton split AC"), research, testStore())
	assert.Contains(t, prompt, "RECOMMENDED PRODUCTS:")
	assert.Contains(t, prompt, "Samsung AR18CY5ARWK")
	assert.Contains(t, prompt, "36000")
	assert.Contains(t, strings.ToLower(prompt), "online dekha")
}

func TestBuildPrompt_NegotiationIntelligence(t *testing.T) {
	research := testResearch()
	research.NegotiationIntelligence = NegotiationIntelligence{
		TypicalMargin:   "8-12% on split ACs",
		SeasonalNotes:   "Prices dip after summer",
		OnlineReference: "36500 on Amazon",
	}
	prompt := BuildPrompt(testReq("split AC"), research, testStore())
	assert.Contains(t, prompt, "NEGOTIATION INTELLIGENCE:")
	assert.Contains(t, prompt, "8-12% on split ACs")
}

func TestBuildPrompt_ChainStoreGetsOfferApproach(t *testing.T) {
	prompt := BuildPrompt(testReq("split AC"), testResearch(), DiscoveredStore{Name: "Croma Koramangala"})
	assert.Contains(t, prompt, "chain store")

	prompt = BuildPrompt(testReq("split AC"), testResearch(), DiscoveredStore{Name: "Gupta Electronics"})
	assert.Contains(t, prompt, "local dealer")
}

func TestBuildPrompt_CriticalOutputRulesAlwaysPresent(t *testing.T) {
	prompt := BuildPrompt(testReq("split AC"), testResearch(), testStore())
	assert.Contains(t, prompt, "CRITICAL OUTPUT RULES:")
	assert.Contains(t, prompt, "NEVER use Devanagari script")
	assert.Contains(t, prompt, "Write ALL numbers as DIGITS")
	assert.Contains(t, prompt, "end_call")
}
