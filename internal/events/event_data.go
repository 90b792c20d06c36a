package events

import (
	"encoding/json"
)

// EventData is the interface that all event data types must implement
// This allows for type-safe event data while maintaining flexibility
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// GenerationProgressData contains data for GenerationProgress events
type GenerationProgressData struct {
	Phase   string `json:"phase"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
}

// EventType returns the event type for GenerationProgressData
func (d *GenerationProgressData) EventType() EventType {
	return GenerationProgress
}

// GenerationCompletedData contains data for GenerationCompleted events
type GenerationCompletedData struct {
	ResultID       string  `json:"result_id"`
	Method         string  `json:"method"`
	TotalEV        float64 `json:"total_ev"`
	Recommendation string  `json:"recommendation"`
}

// EventType returns the event type for GenerationCompletedData
func (d *GenerationCompletedData) EventType() EventType {
	return GenerationCompleted
}

// HistoryImportedData contains data for HistoryImported events
type HistoryImportedData struct {
	Imported int `json:"imported"`
	Total    int `json:"total"`
}

// EventType returns the event type for HistoryImportedData
func (d *HistoryImportedData) EventType() EventType {
	return HistoryImported
}

// BackupCompletedData contains data for BackupCompleted events
type BackupCompletedData struct {
	Files    int    `json:"files"`
	Bucket   string `json:"bucket"`
	Duration string `json:"duration"`
}

// EventType returns the event type for BackupCompletedData
func (d *BackupCompletedData) EventType() EventType {
	return BackupCompleted
}

// ErrorEventData contains data for ErrorOccurred events
type ErrorEventData struct {
	Error   string                 `json:"error"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// EventType returns the event type for ErrorEventData
func (d *ErrorEventData) EventType() EventType {
	return ErrorOccurred
}

// ToMap converts typed EventData to the bus's map payload form.
func ToMap(data EventData) map[string]interface{} {
	if data == nil {
		return nil
	}
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	var result map[string]interface{}
	if err := json.Unmarshal(jsonBytes, &result); err != nil {
		return nil
	}
	return result
}
