package service

import (
	"testing"

	"jaagrmind_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuestions(t *testing.T) {
	twoOptions := []model.QuestionOption{
		{Text: "no", Marks: 0},
		{Text: "yes", Marks: 5},
	}

	t.Run("order rewritten to slice position", func(t *testing.T) {
		questions, err := buildQuestions([]QuestionRequest{
			{Section: model.SectionB, Text: "first", Options: twoOptions},
			{Section: model.SectionA, Text: "second", Options: twoOptions},
		})
		require.NoError(t, err)
		require.Len(t, questions, 2)
		assert.Equal(t, 0, questions[0].Order)
		assert.Equal(t, 1, questions[1].Order)
		assert.Equal(t, model.SectionB, questions[0].Section)

		opts, err := questions[0].ParseOptions()
		require.NoError(t, err)
		assert.Equal(t, 5, opts[1].Marks)
	})

	t.Run("unknown section rejected", func(t *testing.T) {
		_, err := buildQuestions([]QuestionRequest{
			{Section: "E", Text: "q", Options: twoOptions},
		})
		assert.ErrorContains(t, err, "unknown section")
	})

	t.Run("fewer than two options rejected", func(t *testing.T) {
		_, err := buildQuestions([]QuestionRequest{
			{Section: model.SectionA, Text: "q", Options: twoOptions[:1]},
		})
		assert.ErrorContains(t, err, "at least two options")
	})

	t.Run("negative mark weight rejected", func(t *testing.T) {
		_, err := buildQuestions([]QuestionRequest{
			{Section: model.SectionA, Text: "q", Options: []model.QuestionOption{
				{Text: "a", Marks: 0},
				{Text: "b", Marks: -1},
			}},
		})
		assert.ErrorContains(t, err, "negative mark weight")
	})
}
