package game

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// highscoreKeep is how many scores the table retains.
const highscoreKeep = 20

// HighscoreTable is the persisted list of best scores, held descending.
type HighscoreTable struct {
	Scores []int
	path   string
}

// LoadHighscores reads the JSON table at path. Any failure yields an empty
// table: a corrupt or missing file costs old scores but never blocks play.
func LoadHighscores(path string) *HighscoreTable {
	t := &HighscoreTable{path: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t
	}
	if err := json.Unmarshal(raw, &t.Scores); err != nil {
		t.Scores = nil
	}
	return t
}

// Submit records a finished run, keeps the best highscoreKeep entries in
// descending order, and writes the table back out.
func (t *HighscoreTable) Submit(score int) error {
	t.Scores = append(t.Scores, score)
	sort.Slice(t.Scores, func(i, j int) bool { return t.Scores[i] > t.Scores[j] })
	if len(t.Scores) > highscoreKeep {
		t.Scores = t.Scores[:highscoreKeep]
	}
	return t.save()
}

// Top returns up to n best scores.
func (t *HighscoreTable) Top(n int) []int {
	if n > len(t.Scores) {
		n = len(t.Scores)
	}
	return t.Scores[:n]
}

func (t *HighscoreTable) save() error {
	if t.path == "" {
		return nil
	}
	raw, err := json.MarshalIndent(t.Scores, "", "  ")
	if err != nil {
		return fmt.Errorf("encode highscores: %w", err)
	}
	if err := os.WriteFile(t.path, raw, 0o644); err != nil {
		return fmt.Errorf("write highscores to %s: %w", t.path, err)
	}
	return nil
}
