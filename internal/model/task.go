package model

import "time"

// Task is one entry of a day's to-do list.
type Task struct {
	ID        string    `json:"id" yaml:"id"`
	DateKey   string    `json:"date" yaml:"date"`
	Text      string    `json:"text" yaml:"text"`
	Completed bool      `json:"completed" yaml:"completed"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
}
