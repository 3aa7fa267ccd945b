package model

// Bucket is the ordinal wellness classification assigned per section and
// overall. It is a closed set; free-form labels never enter the system.
type Bucket string

const (
	BucketStable        Bucket = "Stable"
	BucketEmerging      Bucket = "Emerging"
	BucketSupportNeeded Bucket = "SupportNeeded"
)

// Severity ranks buckets for intervention targeting. Lower is more severe,
// so SupportNeeded sorts before Emerging, which sorts before Stable.
func (b Bucket) Severity() int {
	switch b {
	case BucketSupportNeeded:
		return 0
	case BucketEmerging:
		return 1
	case BucketStable:
		return 2
	}
	return 3
}

func (b Bucket) Valid() bool {
	switch b {
	case BucketStable, BucketEmerging, BucketSupportNeeded:
		return true
	}
	return false
}

// Buckets lists all labels in severity order, most severe first. Analytics
// relies on this to emit zero counts for buckets absent from a result set.
var Buckets = []Bucket{BucketSupportNeeded, BucketEmerging, BucketStable}

// Section is one of the four fixed wellness sections partitioning an
// assessment's questions.
type Section string

const (
	SectionA Section = "A"
	SectionB Section = "B"
	SectionC Section = "C"
	SectionD Section = "D"
)

// Sections is the fixed section order used for iteration and tie-breaking.
var Sections = []Section{SectionA, SectionB, SectionC, SectionD}

func (s Section) Valid() bool {
	switch s {
	case SectionA, SectionB, SectionC, SectionD:
		return true
	}
	return false
}
