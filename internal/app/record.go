package app

import (
	"encoding/json"
	"time"

	"level-assessment-service/internal/domain"
)

// localRecord is the JSON shape of one cached result.
type localRecord struct {
	ID          int64          `json:"id"`
	Level       string         `json:"level"`
	Description string         `json:"description"`
	Score       int            `json:"score"`
	Variant     domain.Variant `json:"variant"`
	Date        string         `json:"date"`
	Answers     []localAnswer  `json:"answers"`
}

type localAnswer struct {
	Question int    `json:"question"`
	Answer   int    `json:"answer"`
	Correct  bool   `json:"correct"`
	Section  string `json:"section"`
}

func encodeResults(results []domain.Result) (string, error) {
	records := make([]localRecord, len(results))
	for i, r := range results {
		answers := make([]localAnswer, len(r.Answers))
		for j, a := range r.Answers {
			answers[j] = localAnswer{Question: a.QuestionIndex, Answer: a.SelectedIndex, Correct: a.IsCorrect, Section: a.Section}
		}
		records[i] = localRecord{
			ID:          r.ID,
			Level:       r.Level,
			Description: r.Description,
			Score:       r.CorrectCount,
			Variant:     r.Variant,
			Date:        r.TakenAt.Format(time.RFC3339Nano),
			Answers:     answers,
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeResults(raw string) ([]domain.Result, error) {
	var records []localRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, err
	}
	results := make([]domain.Result, len(records))
	for i, rec := range records {
		takenAt, _ := time.Parse(time.RFC3339Nano, rec.Date)
		answers := make([]domain.Answer, len(rec.Answers))
		for j, a := range rec.Answers {
			answers[j] = domain.Answer{
				QuestionIndex: a.Question,
				SelectedIndex: a.Answer,
				IsCorrect:     a.Correct,
				Section:       a.Section,
				Variant:       rec.Variant,
			}
		}
		results[i] = domain.Result{
			ID:           rec.ID,
			Level:        rec.Level,
			Description:  rec.Description,
			CorrectCount: rec.Score,
			Variant:      rec.Variant,
			TakenAt:      takenAt,
			Answers:      answers,
		}
	}
	return results, nil
}
