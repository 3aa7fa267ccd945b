package service

import (
	"sort"

	"jaagrmind_backend/internal/config"
	"jaagrmind_backend/internal/model"
	"jaagrmind_backend/internal/util"
)

// RawAnswer is one client-submitted answer before validation. Any mark the
// client may have attached upstream is deliberately absent from this type:
// marks only ever come out of the catalog.
type RawAnswer struct {
	QuestionIndex  int `json:"questionIndex"`
	SelectedOption int `json:"selectedOption"`
	TimeTaken      int `json:"timeTaken"` // seconds, advisory
}

// ScoreReport is the output of a scoring pass: recomputed answers plus the
// total, per-section sums, per-section maxima and answered counts.
type ScoreReport struct {
	Answers       []model.SubmissionAnswer
	TotalScore    int
	TotalMax      int
	SectionScores map[model.Section]int
	SectionMax    map[model.Section]int
	SectionCounts map[model.Section]int
}

// Classification is the bucket assignment derived from a ScoreReport.
type Classification struct {
	AssignedBucket     model.Bucket
	SectionBuckets     map[model.Section]model.Bucket
	PrimarySkillArea   model.Section
	SecondarySkillArea model.Section // empty when fewer than two sections answered
}

// ValidateAnswers checks a raw answer set against the catalog: exactly one
// answer per question index, every selected option in range. Missing or
// negative per-question timing is coerced to 0 rather than rejected. The
// returned slice is aligned 1:1 with catalog order.
func ValidateAnswers(questions []model.AssessmentQuestion, raw []RawAnswer) ([]RawAnswer, error) {
	if len(raw) != len(questions) {
		return nil, util.NewValidationError(-1, "expected %d answers, got %d", len(questions), len(raw))
	}

	aligned := make([]RawAnswer, len(questions))
	seen := make([]bool, len(questions))

	for _, a := range raw {
		if a.QuestionIndex < 0 || a.QuestionIndex >= len(questions) {
			return nil, util.NewValidationError(a.QuestionIndex, "no such question")
		}
		if seen[a.QuestionIndex] {
			return nil, util.NewValidationError(a.QuestionIndex, "duplicate answer")
		}
		seen[a.QuestionIndex] = true

		opts, err := questions[a.QuestionIndex].ParseOptions()
		if err != nil {
			return nil, util.NewValidationError(a.QuestionIndex, "malformed question options")
		}
		if a.SelectedOption < 0 || a.SelectedOption >= len(opts) {
			return nil, util.NewValidationError(a.QuestionIndex, "selected option %d out of range", a.SelectedOption)
		}

		if a.TimeTaken < 0 {
			a.TimeTaken = 0
		}
		aligned[a.QuestionIndex] = a
	}

	// len(raw) == len(questions) with no duplicates implies no gaps, but a
	// missing index is the failure the caller needs named, so report the
	// first one explicitly.
	for i, ok := range seen {
		if !ok {
			return nil, util.NewValidationError(i, "missing answer")
		}
	}

	return aligned, nil
}

// ScoreAnswers recomputes every mark from the catalog weights and derives
// the totals. Answers must already be validated; this stage has no failure
// path of its own.
func ScoreAnswers(questions []model.AssessmentQuestion, validated []RawAnswer) ScoreReport {
	report := ScoreReport{
		Answers:       make([]model.SubmissionAnswer, 0, len(questions)),
		SectionScores: make(map[model.Section]int, len(model.Sections)),
		SectionMax:    make(map[model.Section]int, len(model.Sections)),
		SectionCounts: make(map[model.Section]int, len(model.Sections)),
	}

	for i, q := range questions {
		opts, _ := q.ParseOptions()
		marks := opts[validated[i].SelectedOption].Marks
		max := q.MaxMarks()

		report.Answers = append(report.Answers, model.SubmissionAnswer{
			QuestionIndex:  i,
			Section:        q.Section,
			SelectedOption: validated[i].SelectedOption,
			Marks:          marks,
			TimeTaken:      validated[i].TimeTaken,
		})

		report.TotalScore += marks
		report.TotalMax += max
		report.SectionScores[q.Section] += marks
		report.SectionMax[q.Section] += max
		report.SectionCounts[q.Section]++
	}

	return report
}

// Classifier maps scores to buckets using the configured fraction
// cut-points. Construct through NewClassifier so a broken threshold table
// is caught before any score reaches it.
type Classifier struct {
	stableMin   float64
	emergingMin float64
}

func NewClassifier(cfg config.ScoringConfig) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, util.ErrBadThresholds
	}
	return &Classifier{
		stableMin:   cfg.StableMinFraction,
		emergingMin: cfg.EmergingMinFraction,
	}, nil
}

// BucketOf is a pure function of (score, max): the same inputs always give
// the same bucket. A zero maximum (section with no questions) classifies
// as SupportNeeded, the most conservative reading.
func (c *Classifier) BucketOf(score, max int) model.Bucket {
	if max <= 0 {
		return model.BucketSupportNeeded
	}
	fraction := float64(score) / float64(max)
	switch {
	case fraction >= c.stableMin:
		return model.BucketStable
	case fraction >= c.emergingMin:
		return model.BucketEmerging
	default:
		return model.BucketSupportNeeded
	}
}

// Classify derives the overall bucket, the per-section buckets, and the
// primary/secondary skill areas. Skill areas are the most severe sections:
// buckets compared by severity, ties broken by ascending raw score, then by
// the fixed section order A<B<C<D. Sections without any answered question
// are never picked; when fewer than two sections are answered the
// secondary is left empty rather than guessed.
func (c *Classifier) Classify(report ScoreReport) Classification {
	result := Classification{
		AssignedBucket: c.BucketOf(report.TotalScore, report.TotalMax),
		SectionBuckets: make(map[model.Section]model.Bucket, len(model.Sections)),
	}

	answered := make([]model.Section, 0, len(model.Sections))
	for _, sec := range model.Sections {
		result.SectionBuckets[sec] = c.BucketOf(report.SectionScores[sec], report.SectionMax[sec])
		if report.SectionCounts[sec] > 0 {
			answered = append(answered, sec)
		}
	}

	// model.Sections is already in A<B<C<D order, and sort.SliceStable
	// keeps that order for full ties.
	sort.SliceStable(answered, func(i, j int) bool {
		si, sj := answered[i], answered[j]
		bi, bj := result.SectionBuckets[si], result.SectionBuckets[sj]
		if bi.Severity() != bj.Severity() {
			return bi.Severity() < bj.Severity()
		}
		return report.SectionScores[si] < report.SectionScores[sj]
	})

	if len(answered) > 0 {
		result.PrimarySkillArea = answered[0]
	}
	if len(answered) > 1 {
		result.SecondarySkillArea = answered[1]
	}

	return result
}
