package compose_booking_request

import (
	"fmt"
	"strings"
	"time"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
)

var weekdays = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// renderMessage текст заявки для отправки тренеру в мессенджере
// Слоты должны быть отсортированы по времени
func renderMessage(slots []domain.SelectedSlot, rules domain.BusinessRules, trainerName string) string {
	if len(slots) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("【予約希望】\n")

	if len(slots) == 1 {
		b.WriteString(formatSlot(slots[0], rules))
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "上記の時間で%sトレーナーのパーソナルトレーニング予約は可能でしょうか？\n", trainerName)
	} else {
		for _, s := range slots {
			b.WriteString("・")
			b.WriteString(formatSlot(s, rules))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "上記候補の中で%sトレーナーのパーソナルトレーニング予約が可能な日時はございますでしょうか？\n", trainerName)
	}

	b.WriteString("よろしくお願いいたします。")
	return b.String()
}

// formatSlot "2026/10/06(火) 14:00〜15:00 @恵比寿"
func formatSlot(s domain.SelectedSlot, rules domain.BusinessRules) string {
	start := s.Start.In(rules.Timezone)
	end := s.End().In(rules.Timezone)

	name := string(s.Location)
	if spec, ok := rules.Location(s.Location); ok && spec.DisplayName != "" {
		name = spec.DisplayName
	}

	return fmt.Sprintf("%s(%s) %s〜%s @%s",
		start.Format("2006/01/02"), weekdays[start.Weekday()],
		start.Format(domain.TimeFormat), formatEnd(end), name)
}

// formatEnd час окончания без ведущего нуля
func formatEnd(t time.Time) string {
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}
