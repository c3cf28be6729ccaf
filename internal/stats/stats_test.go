package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeanpaul/rollbook/internal/student"
)

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil)
	assert.Zero(t, s.Count)
	assert.Empty(t, s.AgeBuckets)
	assert.Contains(t, s.Markdown(), "No student data")
}

func TestComputeMeans(t *testing.T) {
	s := Compute([]student.Student{
		{RollNumber: 1, Name: "Ann Lee", Age: 18, CGPA: 3.0},
		{RollNumber: 2, Name: "Bo Chan", Age: 22, CGPA: 4.0},
	})
	assert.Equal(t, 2, s.Count)
	assert.InDelta(t, 20.0, s.MeanAge, 1e-9)
	assert.InDelta(t, 3.5, s.MeanCGPA, 1e-9)
}

func TestBucketsSumToTotal(t *testing.T) {
	students := []student.Student{
		{RollNumber: 1, Name: "A", Age: 16, CGPA: 1.9},
		{RollNumber: 2, Name: "B", Age: 18, CGPA: 2.0},
		{RollNumber: 3, Name: "C", Age: 22, CGPA: 2.9},
		{RollNumber: 4, Name: "D", Age: 23, CGPA: 3.0},
		{RollNumber: 5, Name: "E", Age: 25, CGPA: 3.49},
		{RollNumber: 6, Name: "F", Age: 26, CGPA: 3.5},
		{RollNumber: 7, Name: "G", Age: 30, CGPA: 4.0},
	}
	s := Compute(students)

	sum := func(bs []Bucket) int {
		n := 0
		for _, b := range bs {
			n += b.Count
		}
		return n
	}
	assert.Equal(t, len(students), sum(s.AgeBuckets))
	assert.Equal(t, len(students), sum(s.CGPABuckets))
}

func TestBucketEdges(t *testing.T) {
	s := Compute([]student.Student{
		{RollNumber: 1, Name: "A", Age: 17, CGPA: 1.99},
		{RollNumber: 2, Name: "B", Age: 18, CGPA: 2.0},
		{RollNumber: 3, Name: "C", Age: 22, CGPA: 2.99},
		{RollNumber: 4, Name: "D", Age: 23, CGPA: 3.0},
		{RollNumber: 5, Name: "E", Age: 25, CGPA: 3.5},
		{RollNumber: 6, Name: "F", Age: 26, CGPA: 3.99},
	})

	ageCounts := map[string]int{}
	for _, b := range s.AgeBuckets {
		ageCounts[b.Label] = b.Count
	}
	assert.Equal(t, 1, ageCounts["<18"])
	assert.Equal(t, 2, ageCounts["18-22"])
	assert.Equal(t, 2, ageCounts["23-25"])
	assert.Equal(t, 1, ageCounts[">25"])

	cgpaCounts := map[string]int{}
	for _, b := range s.CGPABuckets {
		cgpaCounts[b.Label] = b.Count
	}
	assert.Equal(t, 1, cgpaCounts["<2.0"])
	assert.Equal(t, 2, cgpaCounts["2.0-2.9"])
	assert.Equal(t, 1, cgpaCounts["3.0-3.5"])
	assert.Equal(t, 2, cgpaCounts[">=3.5"])
}

func TestMarkdownOmitsEmptyBuckets(t *testing.T) {
	s := Compute([]student.Student{
		{RollNumber: 1, Name: "Ann Lee", Age: 20, CGPA: 3.8},
	})
	md := s.Markdown()
	assert.Contains(t, md, "18-22")
	assert.Contains(t, md, "100.0%")
	assert.False(t, strings.Contains(md, "23-25"), "empty buckets are hidden")
}
