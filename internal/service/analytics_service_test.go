package service

import (
	"testing"

	"jaagrmind_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillBucketDistribution(t *testing.T) {
	t.Run("empty result set yields all-zero counts", func(t *testing.T) {
		full := FillBucketDistribution(nil)
		require.Len(t, full, len(model.Buckets))
		for _, b := range model.Buckets {
			assert.Zero(t, full[b])
		}
	})

	t.Run("missing buckets filled with zero", func(t *testing.T) {
		full := FillBucketDistribution(map[model.Bucket]int64{
			model.BucketStable: 7,
		})
		assert.Equal(t, int64(7), full[model.BucketStable])
		assert.Zero(t, full[model.BucketEmerging])
		assert.Zero(t, full[model.BucketSupportNeeded])
	})

	t.Run("present counts preserved", func(t *testing.T) {
		full := FillBucketDistribution(map[model.Bucket]int64{
			model.BucketStable:        3,
			model.BucketEmerging:      2,
			model.BucketSupportNeeded: 1,
		})
		assert.Equal(t, int64(3), full[model.BucketStable])
		assert.Equal(t, int64(2), full[model.BucketEmerging])
		assert.Equal(t, int64(1), full[model.BucketSupportNeeded])
	})
}
