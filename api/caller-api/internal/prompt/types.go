// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_prompt assembles the caller persona instructions for one
// outbound call. Pure string templating from intake and research data, no
// model calls.
package internal_prompt

// ProductRequirements captures what the buyer wants.
type ProductRequirements struct {
	ProductType     string            `json:"product_type"`
	Category        string            `json:"category"`
	BrandPreference string            `json:"brand_preference,omitempty"`
	Specs           map[string]string `json:"specs,omitempty"`
	BudgetRange     *PriceRange       `json:"budget_range,omitempty"`
	Location        string            `json:"location,omitempty"`
	Preferences     []string          `json:"preferences,omitempty"`
}

// PriceRange is an inclusive rupee range.
type PriceRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// DiscoveredStore is one shop to call.
type DiscoveredStore struct {
	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Area       string `json:"area,omitempty"`
	City       string `json:"city,omitempty"`
	NearbyArea string `json:"nearby_area,omitempty"`
}

// CompetingProduct is a market alternative surfaced by research.
type CompetingProduct struct {
	Name       string `json:"name"`
	PriceRange string `json:"price_range,omitempty"`
	Pros       string `json:"pros,omitempty"`
}

// RecommendedProduct is a research top pick with its online street price.
type RecommendedProduct struct {
	Model       string `json:"model"`
	StreetPrice string `json:"street_price,omitempty"`
	Specs       string `json:"specs,omitempty"`
}

// NegotiationIntelligence holds haggling leverage gathered by research.
type NegotiationIntelligence struct {
	TypicalMargin   string `json:"typical_margin,omitempty"`
	SeasonalNotes   string `json:"seasonal_notes,omitempty"`
	BundleTricks    string `json:"bundle_tricks,omitempty"`
	OnlineReference string `json:"online_reference,omitempty"`
}

// ResearchOutput is the product research behind a call.
type ResearchOutput struct {
	ProductSummary          string                  `json:"product_summary,omitempty"`
	MarketPriceRange        *PriceRange             `json:"market_price_range,omitempty"`
	QuestionsToAsk          []string                `json:"questions_to_ask,omitempty"`
	TopicsToCover           []string                `json:"topics_to_cover,omitempty"`
	ImportantNotes          []string                `json:"important_notes,omitempty"`
	CompetingProducts       []CompetingProduct      `json:"competing_products,omitempty"`
	RecommendedProducts     []RecommendedProduct    `json:"recommended_products,omitempty"`
	NegotiationIntelligence NegotiationIntelligence `json:"negotiation_intelligence,omitempty"`
	InsiderKnowledge        []string                `json:"insider_knowledge,omitempty"`
}
