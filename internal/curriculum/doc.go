// Package curriculum builds the ordered list of syllables a learner practises
// in one session.
//
// A curriculum is the cross product of a fixed vowel alphabet and a fixed
// consonant alphabet in both orders (consonant+vowel and vowel+consonant),
// minus a blocklist of inappropriate strings, shuffled with Fisher–Yates.
// Every session gets its own shuffle. The resulting Curriculum is cyclic:
// advancing past the last syllable wraps back to the first.
package curriculum
