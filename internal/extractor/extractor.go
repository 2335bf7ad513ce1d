// Package extractor finds homework assignments in free-form text.
//
// Text is split into sentences; every sentence that (together with the one
// after it) mentions an assignment indicator becomes a candidate with a
// title, subject, deadline, priority, type and confidence score. Weak
// candidates are dropped, near-duplicate titles are collapsed and the rest
// is ranked by confidence.
package extractor

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/balkashynov/hwk/internal/lexicon"
	"github.com/balkashynov/hwk/internal/logging"
	"github.com/balkashynov/hwk/internal/models"
	"github.com/balkashynov/hwk/internal/parser"
)

const (
	// DefaultMinConfidence is the score a candidate must exceed to be kept
	DefaultMinConfidence = 0.3
	// DefaultDuplicateThreshold is the title similarity above which a
	// candidate counts as a duplicate of one already kept
	DefaultDuplicateThreshold = 0.7

	minSentenceLength = 10
	minTitleLength    = 5
	shortTitleLength  = 10
)

var sentenceSplitRegex = regexp.MustCompile(`[.!?]+`)

// Assignment is a candidate found in text. It is never modified after
// extraction; accepting it copies it into a new task.
type Assignment struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Subject     models.Subject        `json:"subject"`
	Priority    models.Priority       `json:"priority"`
	Deadline    time.Time             `json:"deadline"`
	Type        models.AssignmentType `json:"type"`
	Confidence  float64               `json:"confidence"`
}

// ToTask promotes the assignment into an unsaved task
func (a Assignment) ToTask() models.Task {
	return models.Task{
		Title:       a.Title,
		Description: a.Description,
		Subject:     a.Subject,
		Priority:    a.Priority,
		Deadline:    a.Deadline,
		Source:      models.SourceAI,
	}
}

// Extractor holds the tuning knobs; it keeps no state between calls.
type Extractor struct {
	now                func() time.Time
	log                *logging.Logger
	minConfidence      float64
	duplicateThreshold float64
}

// Option configures an Extractor
type Option func(*Extractor)

// WithClock sets the time source used to resolve relative deadlines
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

// WithLogger sets the logger
func WithLogger(log *logging.Logger) Option {
	return func(e *Extractor) { e.log = log.Named("extractor") }
}

// WithMinConfidence overrides DefaultMinConfidence
func WithMinConfidence(threshold float64) Option {
	return func(e *Extractor) { e.minConfidence = threshold }
}

// WithDuplicateThreshold overrides DefaultDuplicateThreshold
func WithDuplicateThreshold(threshold float64) Option {
	return func(e *Extractor) { e.duplicateThreshold = threshold }
}

// New creates an Extractor
func New(opts ...Option) *Extractor {
	e := &Extractor{
		now:                time.Now,
		log:                logging.Nop(),
		minConfidence:      DefaultMinConfidence,
		duplicateThreshold: DefaultDuplicateThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract is a shortcut for New(WithClock(...)).Extract(text)
func Extract(text string, now time.Time) []Assignment {
	return New(WithClock(func() time.Time { return now })).Extract(text)
}

// Extract scans text and returns candidates ordered by confidence, highest
// first. It never fails: fragments that cannot produce a candidate are
// skipped, so the worst outcome is an empty result.
func (e *Extractor) Extract(text string) []Assignment {
	now := e.now()
	sentences := SplitSentences(text)

	e.log.Debug("starting extraction",
		zap.Int("text_length", len(text)),
		zap.Int("sentences", len(sentences)),
	)

	var candidates []Assignment
	for i, sentence := range sentences {
		next := ""
		if i+1 < len(sentences) {
			next = sentences[i+1]
		}
		combined := strings.ToLower(sentence + " " + next)

		if !lexicon.ContainsAny(combined, lexicon.AssignmentIndicators) {
			continue
		}

		assignment, ok := e.extractOne(sentence, next, combined, now)
		if !ok || assignment.Confidence <= e.minConfidence {
			continue
		}
		candidates = append(candidates, assignment)
	}

	result := e.deduplicate(candidates)
	e.log.Debug("extraction finished",
		zap.Int("candidates", len(candidates)),
		zap.Int("kept", len(result)),
	)
	return result
}

// SplitSentences splits on runs of . ! ? and drops fragments too short to
// describe anything
func SplitSentences(text string) []string {
	var sentences []string
	for _, part := range sentenceSplitRegex.Split(text, -1) {
		part = strings.TrimSpace(part)
		if utf8.RuneCountInString(part) > minSentenceLength {
			sentences = append(sentences, part)
		}
	}
	return sentences
}

// extractOne derives a candidate from a sentence and its lookahead window.
// A panic while deriving fields drops the sentence instead of the whole run.
func (e *Extractor) extractOne(sentence, next, combined string, now time.Time) (assignment Assignment, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Debug("skipping sentence", zap.Any("panic", r), zap.String("sentence", sentence))
			assignment, ok = Assignment{}, false
		}
	}()

	title := parser.CleanTitle(sentence)
	if utf8.RuneCountInString(title) < minTitleLength {
		return Assignment{}, false
	}

	return Assignment{
		Title:       title,
		Description: strings.TrimSpace(sentence + " " + next),
		Subject:     lexicon.SubjectOf(combined),
		Priority:    lexicon.PriorityOf(combined),
		Deadline:    parser.ResolveDeadline(combined, now),
		Type:        lexicon.TypeOf(combined),
		Confidence:  Confidence(combined, title),
	}, true
}

// Confidence scores how likely text describes a real assignment
func Confidence(text, title string) float64 {
	confidence := 0.5

	// Every distinct indicator adds to the score
	confidence += float64(lexicon.CountMatches(text, lexicon.AssignmentIndicators)) * 0.1

	// A deadline marker counts even if the date itself didn't resolve
	if lexicon.HasDeadlineMarker(text) {
		confidence += 0.2
	}

	if lexicon.HasSubjectKeyword(text) {
		confidence += 0.15
	}

	if utf8.RuneCountInString(title) < shortTitleLength {
		confidence -= 0.2
	}

	return clamp(confidence, 0, 1)
}

// deduplicate keeps the first of every group of similar titles, then
// orders the survivors by confidence (stable, so ties keep text order)
func (e *Extractor) deduplicate(candidates []Assignment) []Assignment {
	unique := make([]Assignment, 0, len(candidates))
	for _, candidate := range candidates {
		title := strings.ToLower(candidate.Title)
		duplicate := false
		for _, kept := range unique {
			if parser.Similarity(strings.ToLower(kept.Title), title) > e.duplicateThreshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, candidate)
		}
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Confidence > unique[j].Confidence
	})
	return unique
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
