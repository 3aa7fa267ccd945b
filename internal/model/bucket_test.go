package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketSeverityOrdering(t *testing.T) {
	assert.Less(t, BucketSupportNeeded.Severity(), BucketEmerging.Severity())
	assert.Less(t, BucketEmerging.Severity(), BucketStable.Severity())

	// Unknown labels sort after every real bucket.
	assert.Greater(t, Bucket("bogus").Severity(), BucketStable.Severity())
}

func TestBucketValid(t *testing.T) {
	for _, b := range Buckets {
		assert.True(t, b.Valid(), "bucket %s", b)
	}
	assert.False(t, Bucket("").Valid())
	assert.False(t, Bucket("stable").Valid(), "labels are case sensitive")
}

func TestBucketsListedBySeverity(t *testing.T) {
	for i := 1; i < len(Buckets); i++ {
		assert.Less(t, Buckets[i-1].Severity(), Buckets[i].Severity())
	}
}

func TestSectionValid(t *testing.T) {
	for _, s := range Sections {
		assert.True(t, s.Valid(), "section %s", s)
	}
	assert.False(t, Section("E").Valid())
	assert.False(t, Section("a").Valid())
}
