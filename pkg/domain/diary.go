package domain

import "time"

// DiaryEntry is a health diary record from the diary service.
type DiaryEntry struct {
	ID        string    `json:"id"`
	Mood      string    `json:"mood,omitempty"`
	Note      string    `json:"note,omitempty"`
	WeightKg  float64   `json:"weight_kg,omitempty"`
	HeartRate int       `json:"heart_rate,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
