package reposync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSortByTimestamp tests ordering normalization
func TestSortByTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   []int64
		want []int64
	}{
		{
			name: "reverse chronological input",
			in:   []int64{300, 200, 100},
			want: []int64{100, 200, 300},
		},
		{
			name: "shuffled input",
			in:   []int64{200, 100, 300},
			want: []int64{100, 200, 300},
		},
		{
			name: "already ascending",
			in:   []int64{100, 200, 300},
			want: []int64{100, 200, 300},
		},
		{
			name: "empty",
			in:   nil,
			want: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commits := make([]CommitRecord, len(tt.in))
			for i, ts := range tt.in {
				commits[i] = fakeCommit(i, ts, "c")
			}

			sortByTimestamp(commits)

			got := make([]int64, len(commits))
			for i, c := range commits {
				got[i] = c.Timestamp
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestSortByTimestampStable tests that equal timestamps keep their order
func TestSortByTimestampStable(t *testing.T) {
	a := fakeCommit(1, 200, "a")
	b := fakeCommit(2, 200, "b")
	c := fakeCommit(3, 100, "c")
	commits := []CommitRecord{a, b, c}

	sortByTimestamp(commits)

	assert.Equal(t, c.ID, commits[0].ID)
	assert.Equal(t, a.ID, commits[1].ID, "equal timestamps preserve input order")
	assert.Equal(t, b.ID, commits[2].ID)
}

// TestResettable tests the opaque-reference guard on records
func TestResettable(t *testing.T) {
	assert.True(t, fakeCommit(1, 100, "c").Resettable())
	assert.False(t, CommitRecord{ID: "abc", Timestamp: 100}.Resettable(),
		"records without a native ref cannot feed a reset")
}
