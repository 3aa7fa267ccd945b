// Recompute stored bucket assignments after a scoring threshold change.
//
// Bucket columns are denormalized onto each submission at ingest time, so
// changing scoring.stable_min_fraction or scoring.emerging_min_fraction in
// the config only affects new submissions. Run this once after a threshold
// change to bring historical rows in line.
//
// Usage: go run scripts/recompute_buckets.go

package main

import (
	"log"
	"os"

	"jaagrmind_backend/internal/config"
	"jaagrmind_backend/internal/model"
	"jaagrmind_backend/internal/service"
	"jaagrmind_backend/pkg/database"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("cannot read config file: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("cannot parse config file: %v", err)
	}

	classifier, err := service.NewClassifier(cfg.Scoring)
	if err != nil {
		log.Fatalf("invalid scoring thresholds: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("cannot connect to database: %v", err)
	}

	// Catalog cache: published catalogs are frozen, so one read per
	// assessment is enough.
	catalogs := make(map[uint][]model.AssessmentQuestion)

	var submissions []model.Submission
	if err := db.Find(&submissions).Error; err != nil {
		log.Fatalf("cannot load submissions: %v", err)
	}

	updated, skipped := 0, 0
	for _, sub := range submissions {
		questions, ok := catalogs[sub.AssessmentID]
		if !ok {
			var qs []model.AssessmentQuestion
			if err := db.Where("assessment_id = ?", sub.AssessmentID).
				Order("`order` ASC").Find(&qs).Error; err != nil {
				log.Fatalf("cannot load questions for assessment %d: %v", sub.AssessmentID, err)
			}
			catalogs[sub.AssessmentID] = qs
			questions = qs
		}

		stored, err := sub.ParseAnswers()
		if err != nil || len(stored) != len(questions) {
			log.Printf("submission %d: stored answers do not match catalog, skipping", sub.ID)
			skipped++
			continue
		}

		raw := make([]service.RawAnswer, len(stored))
		for i, a := range stored {
			raw[i] = service.RawAnswer{
				QuestionIndex:  a.QuestionIndex,
				SelectedOption: a.SelectedOption,
				TimeTaken:      a.TimeTaken,
			}
		}

		validated, err := service.ValidateAnswers(questions, raw)
		if err != nil {
			log.Printf("submission %d: stored answers fail validation, skipping: %v", sub.ID, err)
			skipped++
			continue
		}

		report := service.ScoreAnswers(questions, validated)
		result := classifier.Classify(report)

		err = db.Model(&model.Submission{}).Where("id = ?", sub.ID).Updates(map[string]interface{}{
			"assigned_bucket":      result.AssignedBucket,
			"section_bucket_a":     result.SectionBuckets[model.SectionA],
			"section_bucket_b":     result.SectionBuckets[model.SectionB],
			"section_bucket_c":     result.SectionBuckets[model.SectionC],
			"section_bucket_d":     result.SectionBuckets[model.SectionD],
			"primary_skill_area":   result.PrimarySkillArea,
			"secondary_skill_area": result.SecondarySkillArea,
		}).Error
		if err != nil {
			log.Fatalf("submission %d: update failed: %v", sub.ID, err)
		}
		updated++
	}

	log.Printf("done: %d submissions updated, %d skipped", updated, skipped)
}
