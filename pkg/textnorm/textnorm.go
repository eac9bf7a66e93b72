package textnorm

import (
	"strings"

	"golang.org/x/text/width"
)

// Normalize приводит заголовок к виду для сравнения:
// полноширинные латиница/цифры/скобки -> обычные, регистр -> нижний, пробелы по краям обрезаются
// "（恵）ＴＯＰＦＯＲＭ" -> "(恵)topform"
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(width.Fold.String(s)))
}

// ContainsAny returns true if the normalized text contains any of the normalized needles
func ContainsAny(text string, needles []string) bool {
	norm := Normalize(text)
	for _, n := range needles {
		n = Normalize(n)
		if n != "" && strings.Contains(norm, n) {
			return true
		}
	}
	return false
}

// ContainsAll returns true if every needle is present, in any order.
// An empty needle list never matches.
func ContainsAll(text string, needles []string) bool {
	if len(needles) == 0 {
		return false
	}
	norm := Normalize(text)
	for _, n := range needles {
		n = Normalize(n)
		if n == "" || !strings.Contains(norm, n) {
			return false
		}
	}
	return true
}

// HasPrefixAny проверяет, начинается ли нормализованный текст с одного из префиксов
// Префиксы не обрезаются: "恵 " отличается от "恵"
func HasPrefixAny(text string, prefixes []string) bool {
	norm := strings.ToLower(width.Fold.String(text))
	for _, p := range prefixes {
		p = strings.ToLower(width.Fold.String(p))
		if p != "" && strings.HasPrefix(norm, p) {
			return true
		}
	}
	return false
}
