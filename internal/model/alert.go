package model

import "time"

// AlertState is the per-task escalation record. Level 0 means the task has
// not been alerted today. Level > 0 implies LastAlertAt is set.
type AlertState struct {
	Level       int       `json:"level"`
	LastAlertAt time.Time `json:"lastAlertAt"`
}

// AlertStates is the whole aggregate keyed by task id. It is read and
// written as a single document; the engine is its only writer.
type AlertStates map[TaskID]AlertState

func (s AlertStates) Clone() AlertStates {
	out := make(AlertStates, len(s))
	for id, st := range s {
		out[id] = st
	}
	return out
}

// VoiceParams are the spoken-alert synthesis hints for an escalation level.
type VoiceParams struct {
	Rate   float64 `json:"rate"`
	Pitch  float64 `json:"pitch"`
	Volume float64 `json:"volume"`
}
