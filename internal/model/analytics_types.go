package model

import "time"

// GroupStats is one row of a breakdown keyed by school or class.
type GroupStats struct {
	Total    int64   `json:"total"`
	AvgScore float64 `json:"avgScore"`
}

// RecentSubmission is the dashboard-facing projection of a submission,
// denormalized with the student and school labels export consumers need.
type RecentSubmission struct {
	ID             uint      `json:"id"`
	StudentName    string    `json:"studentName"`
	AccessID       string    `json:"accessId"`
	Class          string    `json:"class"`
	Section        string    `json:"section"`
	SchoolName     string    `json:"schoolName"`
	AssessmentID   uint      `json:"assessmentId"`
	TotalScore     int       `json:"totalScore"`
	AssignedBucket Bucket    `json:"assignedBucket"`
	TimeTaken      int       `json:"timeTaken"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

// AnalyticsSummary is the aggregate view of a filtered submission set.
// BucketDistribution always carries all three labels, zero counts included.
type AnalyticsSummary struct {
	TotalSubmissions   int64                 `json:"totalSubmissions"`
	AvgScore           float64               `json:"avgScore"`
	AvgTimeTaken       float64               `json:"avgTimeTaken"`
	BucketDistribution map[Bucket]int64      `json:"bucketDistribution"`
	SchoolBreakdown    map[string]GroupStats `json:"schoolBreakdown"`
	ClassBreakdown     map[string]GroupStats `json:"classBreakdown"`
	RecentSubmissions  []RecentSubmission    `json:"recentSubmissions"`
}
