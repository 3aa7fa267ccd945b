package service

import (
	"encoding/json"
	"errors"
	"testing"

	"jaagrmind_backend/internal/config"
	"jaagrmind_backend/internal/model"
	"jaagrmind_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func question(sec model.Section, marks ...int) model.AssessmentQuestion {
	opts := make([]model.QuestionOption, len(marks))
	for i, m := range marks {
		opts[i] = model.QuestionOption{Text: "option", Marks: m}
	}
	raw, _ := json.Marshal(opts)
	return model.AssessmentQuestion{Section: sec, Text: "q", Options: raw}
}

func defaultClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier(config.ScoringConfig{StableMinFraction: 0.75, EmergingMinFraction: 0.40})
	require.NoError(t, err)
	return c
}

func TestValidateAnswers(t *testing.T) {
	questions := []model.AssessmentQuestion{
		question(model.SectionA, 0, 1, 2),
		question(model.SectionB, 0, 1, 2),
	}

	tests := []struct {
		name      string
		raw       []RawAnswer
		wantIndex int
	}{
		{
			name:      "too few answers",
			raw:       []RawAnswer{{QuestionIndex: 0, SelectedOption: 0}},
			wantIndex: -1,
		},
		{
			name: "too many answers",
			raw: []RawAnswer{
				{QuestionIndex: 0, SelectedOption: 0},
				{QuestionIndex: 1, SelectedOption: 0},
				{QuestionIndex: 1, SelectedOption: 1},
			},
			wantIndex: -1,
		},
		{
			name: "question index out of range",
			raw: []RawAnswer{
				{QuestionIndex: 0, SelectedOption: 0},
				{QuestionIndex: 5, SelectedOption: 0},
			},
			wantIndex: 5,
		},
		{
			name: "negative question index",
			raw: []RawAnswer{
				{QuestionIndex: -1, SelectedOption: 0},
				{QuestionIndex: 1, SelectedOption: 0},
			},
			wantIndex: -1,
		},
		{
			name: "duplicate question index",
			raw: []RawAnswer{
				{QuestionIndex: 0, SelectedOption: 0},
				{QuestionIndex: 0, SelectedOption: 1},
			},
			wantIndex: 0,
		},
		{
			name: "selected option out of range",
			raw: []RawAnswer{
				{QuestionIndex: 0, SelectedOption: 3},
				{QuestionIndex: 1, SelectedOption: 0},
			},
			wantIndex: 0,
		},
		{
			name: "negative selected option",
			raw: []RawAnswer{
				{QuestionIndex: 0, SelectedOption: -1},
				{QuestionIndex: 1, SelectedOption: 0},
			},
			wantIndex: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAnswers(questions, tt.raw)
			require.Error(t, err)

			var verr *util.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantIndex, verr.QuestionIndex)
		})
	}
}

func TestValidateAnswersAlignsShuffledInput(t *testing.T) {
	questions := []model.AssessmentQuestion{
		question(model.SectionA, 0, 1, 2),
		question(model.SectionB, 0, 1, 2),
		question(model.SectionC, 0, 1, 2),
	}

	raw := []RawAnswer{
		{QuestionIndex: 2, SelectedOption: 2, TimeTaken: 30},
		{QuestionIndex: 0, SelectedOption: 1, TimeTaken: 10},
		{QuestionIndex: 1, SelectedOption: 0, TimeTaken: -5},
	}

	aligned, err := ValidateAnswers(questions, raw)
	require.NoError(t, err)
	require.Len(t, aligned, 3)

	assert.Equal(t, 1, aligned[0].SelectedOption)
	assert.Equal(t, 0, aligned[1].SelectedOption)
	assert.Equal(t, 2, aligned[2].SelectedOption)

	// Negative timing is coerced, not rejected.
	assert.Equal(t, 0, aligned[1].TimeTaken)
	assert.Equal(t, 30, aligned[2].TimeTaken)
}

func TestScoreAnswersRecomputesFromCatalog(t *testing.T) {
	questions := []model.AssessmentQuestion{
		question(model.SectionA, 0, 2, 4),
		question(model.SectionA, 0, 1, 3),
		question(model.SectionB, 0, 5),
	}

	validated := []RawAnswer{
		{QuestionIndex: 0, SelectedOption: 2, TimeTaken: 12},
		{QuestionIndex: 1, SelectedOption: 1},
		{QuestionIndex: 2, SelectedOption: 0},
	}

	report := ScoreAnswers(questions, validated)

	assert.Equal(t, 5, report.TotalScore)
	assert.Equal(t, 12, report.TotalMax)
	assert.Equal(t, 5, report.SectionScores[model.SectionA])
	assert.Equal(t, 7, report.SectionMax[model.SectionA])
	assert.Equal(t, 0, report.SectionScores[model.SectionB])
	assert.Equal(t, 5, report.SectionMax[model.SectionB])
	assert.Equal(t, 2, report.SectionCounts[model.SectionA])
	assert.Equal(t, 1, report.SectionCounts[model.SectionB])
	assert.Zero(t, report.SectionCounts[model.SectionC])

	require.Len(t, report.Answers, 3)
	assert.Equal(t, 4, report.Answers[0].Marks)
	assert.Equal(t, 1, report.Answers[1].Marks)
	assert.Equal(t, 0, report.Answers[2].Marks)
	assert.Equal(t, model.SectionA, report.Answers[0].Section)
	assert.Equal(t, 12, report.Answers[0].TimeTaken)
}

func TestNewClassifierRejectsBadThresholds(t *testing.T) {
	bad := []config.ScoringConfig{
		{StableMinFraction: 0.75, EmergingMinFraction: 0},
		{StableMinFraction: 0.75, EmergingMinFraction: 1},
		{StableMinFraction: 0.75, EmergingMinFraction: -0.1},
		{StableMinFraction: 0.40, EmergingMinFraction: 0.40},
		{StableMinFraction: 0.30, EmergingMinFraction: 0.40},
		{StableMinFraction: 1.1, EmergingMinFraction: 0.40},
	}
	for _, cfg := range bad {
		_, err := NewClassifier(cfg)
		assert.ErrorIs(t, err, util.ErrBadThresholds, "config %+v", cfg)
	}
}

func TestBucketOf(t *testing.T) {
	c := defaultClassifier(t)

	tests := []struct {
		name  string
		score int
		max   int
		want  model.Bucket
	}{
		{"perfect score", 20, 20, model.BucketStable},
		{"exactly at stable cut", 15, 20, model.BucketStable},
		{"just under stable cut", 14, 20, model.BucketEmerging},
		{"exactly at emerging cut", 8, 20, model.BucketEmerging},
		{"just under emerging cut", 7, 20, model.BucketSupportNeeded},
		{"zero score", 0, 20, model.BucketSupportNeeded},
		{"zero max", 0, 0, model.BucketSupportNeeded},
		{"negative max", 5, -1, model.BucketSupportNeeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.BucketOf(tt.score, tt.max))
		})
	}
}

func TestClassifyOverallAndSectionBuckets(t *testing.T) {
	c := defaultClassifier(t)

	questions := []model.AssessmentQuestion{
		question(model.SectionA, 0, 5), // A: 5/5 Stable
		question(model.SectionB, 0, 5), // B: 0/5 SupportNeeded
		question(model.SectionC, 0, 5), // C: 3/5 Emerging
		question(model.SectionD, 0, 3, 5),
	}
	questions[2].Options, _ = json.Marshal([]model.QuestionOption{
		{Text: "low", Marks: 0}, {Text: "mid", Marks: 3}, {Text: "high", Marks: 5},
	})

	validated := []RawAnswer{
		{QuestionIndex: 0, SelectedOption: 1},
		{QuestionIndex: 1, SelectedOption: 0},
		{QuestionIndex: 2, SelectedOption: 1},
		{QuestionIndex: 3, SelectedOption: 2},
	}

	report := ScoreAnswers(questions, validated)
	result := c.Classify(report)

	// 13/20 = 0.65 overall.
	assert.Equal(t, model.BucketEmerging, result.AssignedBucket)
	assert.Equal(t, model.BucketStable, result.SectionBuckets[model.SectionA])
	assert.Equal(t, model.BucketSupportNeeded, result.SectionBuckets[model.SectionB])
	assert.Equal(t, model.BucketEmerging, result.SectionBuckets[model.SectionC])
	assert.Equal(t, model.BucketStable, result.SectionBuckets[model.SectionD])

	// B is the most severe section, C the next.
	assert.Equal(t, model.SectionB, result.PrimarySkillArea)
	assert.Equal(t, model.SectionC, result.SecondarySkillArea)
}

func TestClassifySkillAreaTieBreaks(t *testing.T) {
	c := defaultClassifier(t)

	t.Run("full tie falls back to section order", func(t *testing.T) {
		questions := []model.AssessmentQuestion{
			question(model.SectionA, 0, 5),
			question(model.SectionB, 0, 5),
			question(model.SectionC, 0, 5),
			question(model.SectionD, 0, 5),
		}
		validated := []RawAnswer{
			{QuestionIndex: 0, SelectedOption: 0},
			{QuestionIndex: 1, SelectedOption: 0},
			{QuestionIndex: 2, SelectedOption: 0},
			{QuestionIndex: 3, SelectedOption: 0},
		}

		result := c.Classify(ScoreAnswers(questions, validated))
		assert.Equal(t, model.SectionA, result.PrimarySkillArea)
		assert.Equal(t, model.SectionB, result.SecondarySkillArea)
	})

	t.Run("same bucket broken by lower raw score", func(t *testing.T) {
		// B and D both SupportNeeded, D with the lower raw score.
		questions := []model.AssessmentQuestion{
			question(model.SectionA, 0, 5),
			question(model.SectionB, 0, 1, 10),
			question(model.SectionD, 0, 10),
		}
		validated := []RawAnswer{
			{QuestionIndex: 0, SelectedOption: 1},
			{QuestionIndex: 1, SelectedOption: 1},
			{QuestionIndex: 2, SelectedOption: 0},
		}

		result := c.Classify(ScoreAnswers(questions, validated))
		assert.Equal(t, model.SectionD, result.PrimarySkillArea)
		assert.Equal(t, model.SectionB, result.SecondarySkillArea)
	})

	t.Run("severity outranks raw score", func(t *testing.T) {
		// A is Emerging with raw 4; B is SupportNeeded with raw 30 out of
		// a much larger maximum. Severity, not raw score, picks primary.
		questions := []model.AssessmentQuestion{
			question(model.SectionA, 0, 4, 10),
			question(model.SectionB, 0, 30, 100),
		}
		validated := []RawAnswer{
			{QuestionIndex: 0, SelectedOption: 1},
			{QuestionIndex: 1, SelectedOption: 1},
		}

		result := c.Classify(ScoreAnswers(questions, validated))
		assert.Equal(t, model.SectionB, result.PrimarySkillArea)
		assert.Equal(t, model.SectionA, result.SecondarySkillArea)
	})
}

func TestClassifySparseSections(t *testing.T) {
	c := defaultClassifier(t)

	t.Run("single answered section leaves secondary empty", func(t *testing.T) {
		questions := []model.AssessmentQuestion{
			question(model.SectionC, 0, 5),
		}
		validated := []RawAnswer{{QuestionIndex: 0, SelectedOption: 0}}

		result := c.Classify(ScoreAnswers(questions, validated))
		assert.Equal(t, model.SectionC, result.PrimarySkillArea)
		assert.Empty(t, result.SecondarySkillArea)
	})

	t.Run("unanswered sections never picked as skill areas", func(t *testing.T) {
		questions := []model.AssessmentQuestion{
			question(model.SectionB, 0, 5),
			question(model.SectionD, 0, 5),
		}
		validated := []RawAnswer{
			{QuestionIndex: 0, SelectedOption: 1},
			{QuestionIndex: 1, SelectedOption: 1},
		}

		result := c.Classify(ScoreAnswers(questions, validated))
		assert.Equal(t, model.SectionB, result.PrimarySkillArea)
		assert.Equal(t, model.SectionD, result.SecondarySkillArea)

		// Sections with no questions still get the conservative bucket.
		assert.Equal(t, model.BucketSupportNeeded, result.SectionBuckets[model.SectionA])
		assert.Equal(t, model.BucketSupportNeeded, result.SectionBuckets[model.SectionC])
	})
}
