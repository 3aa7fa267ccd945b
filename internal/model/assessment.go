package model

import (
	"encoding/json"
	"time"
)

// swagger:model Assessment
type Assessment struct {
	BaseModel
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	TimeLimit   int        `gorm:"default:0" json:"timeLimit"` // Minutes, 0 = untimed
	IsPublished bool       `gorm:"default:false" json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// QuestionOption is one selectable choice with its fixed mark weight. The
// weights stored here are the only source of marks: client-reported marks
// are always discarded and recomputed from this catalog.
type QuestionOption struct {
	Text  string `json:"text"`
	Marks int    `json:"marks"`
}

// AssessmentQuestion is one catalog entry. Order defines the question index
// answers are matched against; Section places it in one of the four wellness
// sections.
// swagger:model AssessmentQuestion
type AssessmentQuestion struct {
	BaseModel
	AssessmentID uint            `gorm:"index;type:bigint unsigned" json:"assessmentId"`
	Order        int             `gorm:"default:0" json:"order"`
	Section      Section         `gorm:"type:enum('A','B','C','D');not null" json:"section"`
	Text         string          `gorm:"type:text;not null" json:"text"`
	Options      json.RawMessage `gorm:"type:json" json:"options"` // JSON: []QuestionOption
}

func (AssessmentQuestion) TableName() string {
	return "assessment_questions"
}

// ParseOptions decodes the stored option list.
func (q *AssessmentQuestion) ParseOptions() ([]QuestionOption, error) {
	var opts []QuestionOption
	if len(q.Options) == 0 {
		return opts, nil
	}
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// MaxMarks returns the highest option weight, i.e. the most this question
// can contribute to its section score.
func (q *AssessmentQuestion) MaxMarks() int {
	opts, err := q.ParseOptions()
	if err != nil {
		return 0
	}
	max := 0
	for _, o := range opts {
		if o.Marks > max {
			max = o.Marks
		}
	}
	return max
}
