package classifier

import (
	"strings"

	"community_help/internal/model"
)

// Keyword lists are static configuration loaded once at process start.
// Order is fixed; the first matching list decides the urgency.

var emergencyKeywords = []string{
	"accident", "fire", "blood", "hospital", "unconscious",
	"emergency", "urgent", "dying", "collapse", "critical",
	"ambulance", "heart attack", "stroke", "drowning",
	"earthquake", "flood", "trapped", "severe", "life-threatening",
	"choking", "bleeding", "injury", "injured", "wound",
	"electrocution", "poison", "overdose", "suicide", "assault",
	"violence", "gunshot", "stabbing", "burning", "explosion",
}

var mediumKeywords = []string{
	"food", "medicine", "support", "need help", "assistance",
	"shelter", "clothes", "clothing", "water", "electricity",
	"medical", "doctor", "prescription", "transport", "repair",
	"broken", "leak", "sick", "ill", "fever", "pain",
	"homeless", "hungry", "stranded", "lost", "disabled",
	"elderly", "child", "baby", "pregnant", "medication",
}

// PredictUrgency classifies a help request description into one of the
// three urgency levels by case-insensitive substring matching. Emergency
// keywords are checked first and win over any medium keyword also present;
// a description matching neither list is Low.
func PredictUrgency(description string) model.Urgency {
	text := strings.ToLower(description)

	for _, keyword := range emergencyKeywords {
		if strings.Contains(text, keyword) {
			return model.UrgencyEmergency
		}
	}

	for _, keyword := range mediumKeywords {
		if strings.Contains(text, keyword) {
			return model.UrgencyMedium
		}
	}

	return model.UrgencyLow
}
