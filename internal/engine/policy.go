package engine

import (
	"fmt"

	"github.com/Arslan1Ali/Daily-Reminder/internal/model"
	"github.com/Arslan1Ali/Daily-Reminder/internal/notify"
)

// BuildAlert maps an escalation level to its delivery content. Levels are
// threshold-matched: everything at or above 3 gets the urgent treatment.
func BuildAlert(t model.Task, level int) notify.Alert {
	a := notify.Alert{
		TaskID: t.ID,
		Level:  level,
		Title:  t.Title,
		Tag:    string(t.ID),
	}

	switch {
	case level >= 3:
		a.Title = "URGENT: " + t.Title
		a.Body = fmt.Sprintf("Urgent! %s is overdue. Complete it immediately!", t.Title)
		a.Voice = model.VoiceParams{Rate: 0.85, Pitch: 0.7, Volume: 1.0}
	case level == 2:
		a.Body = fmt.Sprintf("Attention: you have not completed %s. Please do it now.", t.Title)
		a.Voice = model.VoiceParams{Rate: 1.1, Pitch: 0.9, Volume: 1.0}
	default:
		a.Body = fmt.Sprintf("Reminder: %s", t.Title)
		a.Voice = model.VoiceParams{Rate: 1.0, Pitch: 1.0, Volume: 1.0}
	}
	return a
}
