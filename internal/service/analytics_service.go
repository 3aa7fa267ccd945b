package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"jaagrmind_backend/internal/config"
	"jaagrmind_backend/internal/model"
	"jaagrmind_backend/internal/repository"
	"jaagrmind_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AnalyticsService is the read-side aggregation engine. It never mutates
// submissions and runs freely alongside submits; dashboards only need
// eventual visibility, which is also why short-TTL caching is acceptable.
type AnalyticsService struct {
	SubmissionRepo *repository.SubmissionRepository
	Redis          *redis.Client
	PageSize       int
	CacheTTL       time.Duration
}

func NewAnalyticsService(submissionRepo *repository.SubmissionRepository, rdb *redis.Client, cfg *config.Config) *AnalyticsService {
	pageSize := cfg.Analytics.RecentPageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	return &AnalyticsService{
		SubmissionRepo: submissionRepo,
		Redis:          rdb,
		PageSize:       pageSize,
		CacheTTL:       time.Duration(cfg.Analytics.CacheTTLSecs) * time.Second,
	}
}

// Aggregate summarizes the submissions matching the filter. All filter
// dimensions AND together in one combined query per statistic.
func (s *AnalyticsService) Aggregate(f repository.SubmissionFilter) (*model.AnalyticsSummary, error) {
	if cached := s.cacheGet(f); cached != nil {
		return cached, nil
	}

	total, err := s.SubmissionRepo.Count(f)
	if err != nil {
		return nil, err
	}

	avgScore, avgTime, err := s.SubmissionRepo.Averages(f)
	if err != nil {
		return nil, err
	}

	counts, err := s.SubmissionRepo.BucketCounts(f)
	if err != nil {
		return nil, err
	}

	schoolBreakdown, err := s.SubmissionRepo.SchoolBreakdown(f)
	if err != nil {
		return nil, err
	}

	classBreakdown, err := s.SubmissionRepo.ClassBreakdown(f)
	if err != nil {
		return nil, err
	}

	recent, err := s.SubmissionRepo.Recent(f, s.PageSize)
	if err != nil {
		return nil, err
	}

	summary := &model.AnalyticsSummary{
		TotalSubmissions:   total,
		AvgScore:           avgScore,
		AvgTimeTaken:       avgTime,
		BucketDistribution: FillBucketDistribution(counts),
		SchoolBreakdown:    schoolBreakdown,
		ClassBreakdown:     classBreakdown,
		RecentSubmissions:  recent,
	}

	s.cacheSet(f, summary)
	return summary, nil
}

// FillBucketDistribution completes a sparse count map so every bucket label
// appears, zero counts included.
func FillBucketDistribution(counts map[model.Bucket]int64) map[model.Bucket]int64 {
	full := make(map[model.Bucket]int64, len(model.Buckets))
	for _, b := range model.Buckets {
		full[b] = counts[b]
	}
	return full
}

// DistinctClasses lists class labels for a school's filter dropdowns.
func (s *AnalyticsService) DistinctClasses(schoolID uint) ([]string, error) {
	return s.SubmissionRepo.DistinctClasses(schoolID)
}

func (s *AnalyticsService) cacheKey(f repository.SubmissionFilter) string {
	raw, _ := json.Marshal(f)
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("analytics:summary:%s", hex.EncodeToString(sum[:8]))
}

func (s *AnalyticsService) cacheGet(f repository.SubmissionFilter) *model.AnalyticsSummary {
	if s.Redis == nil || s.CacheTTL <= 0 {
		return nil
	}
	data, err := s.Redis.Get(context.Background(), s.cacheKey(f)).Bytes()
	if err != nil {
		return nil
	}
	var summary model.AnalyticsSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil
	}
	return &summary
}

func (s *AnalyticsService) cacheSet(f repository.SubmissionFilter, summary *model.AnalyticsSummary) {
	if s.Redis == nil || s.CacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.Redis.Set(context.Background(), s.cacheKey(f), data, s.CacheTTL).Err(); err != nil {
		logger.Log.Debug("analytics cache write failed", zap.Error(err))
	}
}
