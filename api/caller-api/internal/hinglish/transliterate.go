// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_hinglish

import "strings"

// The LLM occasionally leaks Devanagari into otherwise Romanized output
// ("usका price"). The speech engine is configured for Romanized Hindi, so
// every Devanagari code point must be rewritten before synthesis.

const (
	devanagariLo = 'ऀ'
	devanagariHi = 'ॿ'
)

// independent vowels
var vowels = map[rune]string{
	'अ': "a", 'आ': "aa", 'इ': "i", 'ई': "ee", 'उ': "u", 'ऊ': "oo",
	'ऋ': "ri", 'ए': "e", 'ऐ': "ai", 'ओ': "o", 'औ': "au", 'ऑ': "o",
	'ॐ': "om",
}

// consonants carry the inherent short vowel; every entry ends in 'a'.
var consonants = map[rune]string{
	'क': "ka", 'ख': "kha", 'ग': "ga", 'घ': "gha", 'ङ': "na",
	'च': "cha", 'छ': "chha", 'ज': "ja", 'झ': "jha", 'ञ': "na",
	'ट': "ta", 'ठ': "tha", 'ड': "da", 'ढ': "dha", 'ण': "na",
	'त': "ta", 'थ': "tha", 'द': "da", 'ध': "dha", 'न': "na",
	'प': "pa", 'फ': "pha", 'ब': "ba", 'भ': "bha", 'म': "ma",
	'य': "ya", 'र': "ra", 'ल': "la", 'ळ': "la", 'व': "va",
	'श': "sha", 'ष': "sha", 'स': "sa", 'ह': "ha",
	'\u0958': "qa", '\u0959': "kha", '\u095A': "ga", '\u095B': "za",
	'\u095C': "da", '\u095D': "rha", '\u095E': "fa", '\u095F': "ya",
}

// nukta is the combining dot (U+093C). Nukta consonants arrive either
// precomposed (U+0958..U+095F) or as base consonant + combining nukta;
// both must render the same.
const nukta = '\u093C'

var nuktaForms = map[rune]rune{
	'क': '\u0958', 'ख': '\u0959', 'ग': '\u095A', 'ज': '\u095B',
	'ड': '\u095C', 'ढ': '\u095D', 'फ': '\u095E', 'य': '\u095F',
}

// dependent vowel signs (matras) and the virama. When one of these follows a
// consonant it replaces the inherent vowel, so the consonant's trailing 'a'
// must not be voiced.
var matras = map[rune]string{
	'ा': "aa", 'ि': "i", 'ी': "ee", 'ु': "u", 'ू': "oo",
	'ृ': "ri", 'ॅ': "a", 'े': "e", 'ै': "ai",
	'ॉ': "o", 'ो': "o", 'ौ': "au",
	'्': "", // virama: bare consonant, no vowel at all
}

// combining signs that add a sound without touching the inherent vowel
var signs = map[rune]string{
	'ं': "n", 'ँ': "n", 'ः': "h",
	'\u093C': "", 'ऽ': "",
}

var digits = map[rune]string{
	'०': "0", '१': "1", '२': "2", '३': "3", '४': "4",
	'५': "5", '६': "6", '७': "7", '८': "8", '९': "9",
}

var punctuation = map[rune]string{
	'।': ".", '॥': ".",
}

func isDevanagari(r rune) bool {
	return r >= devanagariLo && r <= devanagariHi
}

// TransliterateDevanagari rewrites every Devanagari code point in text into
// Latin letters; all other characters pass through untouched. Devanagari
// characters with no table entry are dropped, best effort, never an error.
func TransliterateDevanagari(text string) string {
	if !strings.ContainsFunc(text, isDevanagari) {
		return text
	}

	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))

	for i, r := range runes {
		if !isDevanagari(r) {
			b.WriteRune(r)
			continue
		}
		if m, ok := consonants[r]; ok {
			next := i + 1
			if next < len(runes) && runes[next] == nukta {
				if composed, has := nuktaForms[r]; has {
					m = consonants[composed]
				}
				next++ // the nukta itself maps to "" via signs
			}
			// A following matra or virama replaces the inherent vowel.
			if next < len(runes) {
				if _, follows := matras[runes[next]]; follows {
					m = strings.TrimSuffix(m, "a")
				}
			}
			b.WriteString(m)
			continue
		}
		if m, ok := matras[r]; ok {
			b.WriteString(m)
			continue
		}
		if m, ok := vowels[r]; ok {
			b.WriteString(m)
			continue
		}
		if m, ok := signs[r]; ok {
			b.WriteString(m)
			continue
		}
		if m, ok := digits[r]; ok {
			b.WriteString(m)
			continue
		}
		if m, ok := punctuation[r]; ok {
			b.WriteString(m)
			continue
		}
		// unknown Devanagari code point: drop it
	}
	return b.String()
}
