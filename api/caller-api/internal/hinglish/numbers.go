// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_hinglish converts numerals and stray Devanagari into the
// Romanized Hindi the speech engine expects. Hindi number words are irregular
// through 99, so 1-99 is a lookup table, and the language groups magnitudes
// as hazaar/lakh/crore rather than thousand/million.
package internal_hinglish

import (
	"regexp"
	"strconv"
	"strings"
)

// ZeroWord is spoken for a bare 0. "zero" is what Hindi speakers actually
// say on the phone; "shunya" would sound bookish.
const ZeroWord = "zero"

// ones holds Romanized Hindi number words for 1..99. Hindi number words are
// irregular throughout; none of these can be derived from tens+ones.
var ones = map[int]string{
	1: "ek", 2: "do", 3: "teen", 4: "chaar", 5: "paanch",
	6: "chhah", 7: "saat", 8: "aath", 9: "nau", 10: "das",
	11: "gyaarah", 12: "baarah", 13: "terah", 14: "chaudah", 15: "pandrah",
	16: "solah", 17: "satrah", 18: "athaarah", 19: "unnees", 20: "bees",
	21: "ikkees", 22: "baaees", 23: "teyees", 24: "chaubees", 25: "pachchees",
	26: "chhabbees", 27: "sattaaees", 28: "attaaees", 29: "untees", 30: "tees",
	31: "ikatees", 32: "battees", 33: "taintees", 34: "chauntees", 35: "paintees",
	36: "chhatees", 37: "saintees", 38: "adtees", 39: "untaalees", 40: "chaalees",
	41: "iktaalees", 42: "bayaalees", 43: "taintaalees", 44: "chavaalees", 45: "paintaalees",
	46: "chhiyaalees", 47: "saintaalees", 48: "adtaalees", 49: "unchaas", 50: "pachaas",
	51: "ikyaavan", 52: "baavan", 53: "tirpan", 54: "chauvan", 55: "pachpan",
	56: "chhappan", 57: "sattaavan", 58: "athaavan", 59: "unsath", 60: "saath",
	61: "iksath", 62: "baasath", 63: "tirsath", 64: "chausath", 65: "painsath",
	66: "chhiyaasath", 67: "sadsath", 68: "adsath", 69: "unhattar", 70: "sattar",
	71: "ikhattar", 72: "bahattar", 73: "tihattar", 74: "chauhattar", 75: "pachhattar",
	76: "chhihattar", 77: "satattar", 78: "athattar", 79: "unaasi", 80: "assi",
	81: "ikyaasi", 82: "bayaasi", 83: "tiraasi", 84: "chauraasi", 85: "pachaasi",
	86: "chhiyaasi", 87: "sataasi", 88: "athaasi", 89: "navaasi", 90: "nabbe",
	91: "ikyaanave", 92: "baanave", 93: "tiraanave", 94: "chauraanave", 95: "pachaanave",
	96: "chhiyaanave", 97: "sattaanave", 98: "athaanave", 99: "ninyanbe",
}

// wordToNumber is the reverse lookup, e.g. "adtees" -> 38. Used by the call
// analyzer to recognize prices spoken in words.
var wordToNumber = func() map[string]int {
	m := make(map[string]int, len(ones))
	for n, w := range ones {
		m[w] = n
	}
	return m
}()

// OnesWord returns the 1-99 Hindi word for n, or "" when out of range.
func OnesWord(n int) string {
	return ones[n]
}

// NumberForWord returns the value of a 1-99 Hindi number word.
func NumberForWord(word string) (int, bool) {
	n, ok := wordToNumber[strings.ToLower(word)]
	return n, ok
}

// NumberToWords converts an integer into spoken Hindi.
//
// Magnitudes decompose as crore (1,00,00,000), lakh (1,00,000) and hazaar
// (1,000). A value ending in exactly 500 uses the idiomatic half-step:
// 1500 is "dedh hazaar", 2500 is "dhaai hazaar", and anything else is
// "saadhe <thousands> hazaar" ("saadhe saintees hazaar" for 37500).
func NumberToWords(n int) string {
	if n < 0 {
		return "minus " + NumberToWords(-n)
	}

	var parts []string
	if n >= 10000000 {
		parts = append(parts, NumberToWords(n/10000000), "crore")
		n %= 10000000
	}
	if n >= 100000 {
		parts = append(parts, NumberToWords(n/100000), "lakh")
		n %= 100000
	}
	if n >= 1000 {
		t, r := n/1000, n%1000
		if r == 500 {
			switch t {
			case 1:
				parts = append(parts, "dedh", "hazaar")
			case 2:
				parts = append(parts, "dhaai", "hazaar")
			default:
				parts = append(parts, "saadhe", NumberToWords(t), "hazaar")
			}
			n = 0
		} else {
			parts = append(parts, NumberToWords(t), "hazaar")
			n = r
		}
	}
	if n >= 100 {
		parts = append(parts, ones[n/100], "sau")
		n %= 100
	}
	if n > 0 {
		parts = append(parts, ones[n])
	}
	if len(parts) == 0 {
		return ZeroWord
	}
	return strings.Join(parts, " ")
}

// decimalToWords handles numerals with a fractional part. Only two decimal
// idioms exist in spoken Hindi: 1.5 is "dedh" and 2.5 is "dhaai". Everything
// else degrades to "<integer> point <digit> <digit>...".
func decimalToWords(intPart int, frac string) string {
	if frac == "5" {
		switch intPart {
		case 1:
			return "dedh"
		case 2:
			return "dhaai"
		}
	}
	parts := []string{NumberToWords(intPart), "point"}
	for _, d := range frac {
		if d == '0' {
			parts = append(parts, ZeroWord)
		} else {
			parts = append(parts, ones[int(d-'0')])
		}
	}
	return strings.Join(parts, " ")
}

// numberRe matches standalone numerals in free text: plain digit runs,
// comma-grouped amounts ("36,000") and decimals ("1.5"). The word
// boundaries deliberately skip digits glued to letters ("5star"); those
// are spacing defects, not numerals, and are handled by the spacing pass.
var numberRe = regexp.MustCompile(`\b\d[\d,]*(?:\.\d+)?\b`)

// ReplaceNumbers rewrites every numeral in text into Hindi words. A match
// that fails to parse is left as literal digits; this function never fails.
func ReplaceNumbers(text string) string {
	if !strings.ContainsAny(text, "0123456789") {
		return text
	}
	return numberRe.ReplaceAllStringFunc(text, func(m string) string {
		clean := strings.ReplaceAll(m, ",", "")
		if i := strings.IndexByte(clean, '.'); i >= 0 {
			intPart, err := strconv.Atoi(clean[:i])
			if err != nil {
				return m
			}
			return decimalToWords(intPart, clean[i+1:])
		}
		n, err := strconv.Atoi(clean)
		if err != nil {
			return m
		}
		return NumberToWords(n)
	})
}
