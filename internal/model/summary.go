package model

import "time"

// ErrorGroup aggregates error lines sharing one normalized signature.
type ErrorGroup struct {
	Signature     string    `json:"signature"`
	Level         string    `json:"level"`
	Count         int       `json:"count"`
	FirstSeen     time.Time `json:"firstSeen"`
	LastSeen      time.Time `json:"lastSeen"`
	SamplePods    []string  `json:"samplePods"`
	SampleMessage string    `json:"sampleMessage"`
}

// RestartEvent is one crash/restart condition for a pod, collapsed per reason.
type RestartEvent struct {
	Pod           string    `json:"pod"`
	Namespace     string    `json:"namespace"`
	Reason        string    `json:"reason"`
	Occurrences   int       `json:"occurrences"`
	LastSeen      time.Time `json:"lastSeen"`
	SampleMessage string    `json:"sampleMessage"`
}
