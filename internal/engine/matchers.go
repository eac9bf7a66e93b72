package engine

import (
	"github.com/aceboy1016/ishihara-booking/pkg/textnorm"
)

// TitleMatcher именованные предикаты над свободным текстом названий событий.
// Вся работа со строками названий сосредоточена здесь.
type TitleMatcher struct {
	dayOffKeywords     []string
	unavailableMarkers []string
	holdTokens         []string
}

// NewTitleMatcher создает набор предикатов
func NewTitleMatcher(dayOffKeywords, unavailableMarkers, holdTokens []string) *TitleMatcher {
	return &TitleMatcher{
		dayOffKeywords:     dayOffKeywords,
		unavailableMarkers: unavailableMarkers,
		holdTokens:         holdTokens,
	}
}

// IsDayOffEvent название события на весь день означает выходной тренера
func (m *TitleMatcher) IsDayOffEvent(title string) bool {
	return textnorm.ContainsAny(title, m.dayOffKeywords)
}

// IsUnavailableMarker название содержит ручную отметку "予約不可"
func (m *TitleMatcher) IsUnavailableMarker(title string) bool {
	return textnorm.ContainsAny(title, m.unavailableMarkers)
}

// IsFacilityHold название совпадает с шаблоном "枠抑え" тренера:
// все токены присутствуют, порядок и регистр не важны
func (m *TitleMatcher) IsFacilityHold(title string) bool {
	return textnorm.ContainsAll(title, m.holdTokens)
}
