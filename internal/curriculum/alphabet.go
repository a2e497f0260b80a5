package curriculum

// Vowels of the Turkish alphabet, upper case.
var Vowels = []string{"A", "E", "I", "İ", "O", "Ö", "U", "Ü"}

// Consonants practised in syllables, upper case.
var Consonants = []string{
	"B", "C", "Ç", "D", "F", "G", "H", "K", "L",
	"M", "N", "P", "R", "S", "Ş", "T", "V", "Y", "Z",
}

// blocked holds inappropriate strings that must never be shown to a learner.
// Only two-character entries can collide with generated syllables; longer
// ones are kept so the list can be shared with longer units later.
var blocked = map[string]struct{}{
	"AM":  {},
	"GÖT": {},
	"SİK": {},
	"PİÇ": {},
	"YAR": {},
	"MEM": {},
	"ÇİŞ": {},
	"KAK": {},
	"BOK": {},
}

// IsBlocked reports whether text is on the blocklist.
func IsBlocked(text string) bool {
	_, ok := blocked[text]
	return ok
}

// Combinations returns every consonant+vowel string followed by every
// vowel+consonant string, before blocklist filtering.
func Combinations() []string {
	out := make([]string, 0, 2*len(Vowels)*len(Consonants))
	for _, c := range Consonants {
		for _, v := range Vowels {
			out = append(out, c+v)
		}
	}
	for _, v := range Vowels {
		for _, c := range Consonants {
			out = append(out, v+c)
		}
	}
	return out
}
