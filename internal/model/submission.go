package model

import (
	"encoding/json"
	"time"
)

// SubmissionAnswer is one scored answer inside a submission. Marks is always
// the server-recomputed catalog weight for the selected option; TimeTaken is
// advisory only and never influences scoring.
type SubmissionAnswer struct {
	QuestionIndex  int     `json:"questionIndex"`
	Section        Section `json:"section"`
	SelectedOption int     `json:"selectedOption"`
	Marks          int     `json:"marks"`
	TimeTaken      int     `json:"timeTakenForQuestion"` // seconds
}

// Submission is the immutable record of one completed assessment. It is
// created exactly once per (student, assessment) pair; the composite unique
// index is what closes the double-submit race at the storage level.
// swagger:model Submission
type Submission struct {
	BaseModel
	StudentID    uint        `gorm:"not null;uniqueIndex:idx_student_assessment" json:"studentId"`
	AssessmentID uint        `gorm:"not null;uniqueIndex:idx_student_assessment" json:"assessmentId"`
	SchoolID     uint        `gorm:"index:idx_school_submitted" json:"schoolId"`
	Student      *Student    `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	School       *School     `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	Assessment   *Assessment `gorm:"foreignKey:AssessmentID" json:"assessment,omitempty"`

	TotalScore    int `gorm:"not null" json:"totalScore"`
	SectionScoreA int `gorm:"default:0" json:"sectionScoreA"`
	SectionScoreB int `gorm:"default:0" json:"sectionScoreB"`
	SectionScoreC int `gorm:"default:0" json:"sectionScoreC"`
	SectionScoreD int `gorm:"default:0" json:"sectionScoreD"`

	SectionBucketA Bucket `gorm:"size:20" json:"sectionBucketA"`
	SectionBucketB Bucket `gorm:"size:20" json:"sectionBucketB"`
	SectionBucketC Bucket `gorm:"size:20" json:"sectionBucketC"`
	SectionBucketD Bucket `gorm:"size:20" json:"sectionBucketD"`

	PrimarySkillArea   string `gorm:"size:10" json:"primarySkillArea"`
	SecondarySkillArea string `gorm:"size:10" json:"secondarySkillArea"`
	AssignedBucket     Bucket `gorm:"size:20;index;not null" json:"assignedBucket"`

	Answers   json.RawMessage `gorm:"type:json" json:"answers"` // JSON: []SubmissionAnswer
	TimeTaken int             `gorm:"not null" json:"timeTaken"` // seconds

	MobileNumber string `gorm:"size:20" json:"mobileNumber,omitempty"`
	Email        string `gorm:"size:100" json:"email,omitempty"`

	SubmittedAt time.Time `gorm:"index:idx_school_submitted,sort:desc" json:"submittedAt"`
}

func (Submission) TableName() string {
	return "submissions"
}

// SectionScore returns the stored score for a section.
func (s *Submission) SectionScore(sec Section) int {
	switch sec {
	case SectionA:
		return s.SectionScoreA
	case SectionB:
		return s.SectionScoreB
	case SectionC:
		return s.SectionScoreC
	case SectionD:
		return s.SectionScoreD
	}
	return 0
}

// SectionBucket returns the stored bucket for a section.
func (s *Submission) SectionBucket(sec Section) Bucket {
	switch sec {
	case SectionA:
		return s.SectionBucketA
	case SectionB:
		return s.SectionBucketB
	case SectionC:
		return s.SectionBucketC
	case SectionD:
		return s.SectionBucketD
	}
	return ""
}

// ParseAnswers decodes the stored answer list.
func (s *Submission) ParseAnswers() ([]SubmissionAnswer, error) {
	var answers []SubmissionAnswer
	if len(s.Answers) == 0 {
		return answers, nil
	}
	if err := json.Unmarshal(s.Answers, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}
