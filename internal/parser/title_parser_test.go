package parser

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/balkashynov/hwk/internal/models"
)

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     string
	}{
		{"deadline suffix", "Math homework: solve problems 1-10 due tomorrow", "Math homework: solve problems 1-10"},
		{"trailing comma", "Math homework: solve problems 1-10, due tomorrow", "Math homework: solve problems 1-10"},
		{"polite prefix", "Please read chapter 5 by Friday.", "read chapter 5"},
		{"copula suffix", "Essay on the Civil War is due next week!", "Essay on the Civil War"},
		{"homework prefix", "Homework solve the worksheet before class", "solve the worksheet"},
		{"students prefix", "Students need to finish the lab report", "need to finish the lab report"},
		{"trailing punctuation", "Finish worksheet;", "Finish worksheet"},
		{"nothing to strip", "Practice piano scales", "Practice piano scales"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTitle(tt.sentence))
		})
	}
}

func TestCleanTitle_LongTitles(t *testing.T) {
	first := strings.Repeat("a", 60)
	withClause := first + ", " + strings.Repeat("c", 60)
	assert.Equal(t, first, CleanTitle(withClause))

	noClause := strings.Repeat("x", 150)
	got := CleanTitle(noClause)
	assert.Equal(t, MaxTitleLength, utf8.RuneCountInString(got))

	short := strings.Repeat("z", MaxTitleLength)
	assert.Equal(t, short, CleanTitle(short))
}

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		input string
		want  models.Priority
		ok    bool
	}{
		{"low", models.PriorityLow, true},
		{"1", models.PriorityLow, true},
		{"Medium", models.PriorityMedium, true},
		{"med", models.PriorityMedium, true},
		{"2", models.PriorityMedium, true},
		{" HIGH ", models.PriorityHigh, true},
		{"3", models.PriorityHigh, true},
		{"urgent", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizePriority(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}
