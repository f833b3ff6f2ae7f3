package models

// JournalEntry is one day's reflection with a self-rated discipline score (1-10).
type JournalEntry struct {
	Date            string `json:"date"` // YYYY-MM-DD
	Content         string `json:"content"`
	DisciplineScore int    `json:"disciplineScore"`
	Timestamp       int64  `json:"timestamp"` // Unix milliseconds
}
