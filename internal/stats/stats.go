// Package stats computes the summary screen: count, means, and two
// fixed-bucket distributions over age and CGPA.
package stats

import (
	"fmt"
	"strings"

	"github.com/jeanpaul/rollbook/internal/student"
)

// Bucket is one distribution slot. Percent is of the total collection.
type Bucket struct {
	Label   string
	Count   int
	Percent float64
}

// Summary holds everything the statistics screen shows. Means are
// undefined when Count is zero.
type Summary struct {
	Count       int
	MeanAge     float64
	MeanCGPA    float64
	AgeBuckets  []Bucket
	CGPABuckets []Bucket
}

// Compute makes a single pass over the records. Bucket counts always sum
// to Count for both distributions.
func Compute(students []student.Student) Summary {
	s := Summary{Count: len(students)}
	if s.Count == 0 {
		return s
	}

	ages := make([]int, 4)
	cgpas := make([]int, 4)
	var ageSum int
	var cgpaSum float64

	for _, st := range students {
		ageSum += st.Age
		cgpaSum += st.CGPA

		switch {
		case st.Age < 18:
			ages[0]++
		case st.Age <= 22:
			ages[1]++
		case st.Age <= 25:
			ages[2]++
		default:
			ages[3]++
		}

		switch {
		case st.CGPA < 2.0:
			cgpas[0]++
		case st.CGPA < 3.0:
			cgpas[1]++
		case st.CGPA < 3.5:
			cgpas[2]++
		default:
			cgpas[3]++
		}
	}

	s.MeanAge = float64(ageSum) / float64(s.Count)
	s.MeanCGPA = cgpaSum / float64(s.Count)
	s.AgeBuckets = buckets([]string{"<18", "18-22", "23-25", ">25"}, ages, s.Count)
	s.CGPABuckets = buckets([]string{"<2.0", "2.0-2.9", "3.0-3.5", ">=3.5"}, cgpas, s.Count)
	return s
}

func buckets(labels []string, counts []int, total int) []Bucket {
	out := make([]Bucket, len(labels))
	for i, label := range labels {
		out[i] = Bucket{
			Label:   label,
			Count:   counts[i],
			Percent: float64(counts[i]) / float64(total) * 100,
		}
	}
	return out
}

// Markdown renders the summary for the TUI (glamour) and the stats
// subcommand. Empty buckets are omitted from the tables.
func (s Summary) Markdown() string {
	if s.Count == 0 {
		return "No student data available.\n"
	}

	var b strings.Builder
	b.WriteString("# Student Statistics\n\n")
	fmt.Fprintf(&b, "- **Total Students**: %d\n", s.Count)
	fmt.Fprintf(&b, "- **Average Age**: %.1f years\n", s.MeanAge)
	fmt.Fprintf(&b, "- **Average CGPA**: %.2f\n", s.MeanCGPA)

	b.WriteString("\n## Age Distribution\n\n")
	writeBuckets(&b, s.AgeBuckets)
	b.WriteString("\n## CGPA Distribution\n\n")
	writeBuckets(&b, s.CGPABuckets)
	return b.String()
}

func writeBuckets(b *strings.Builder, buckets []Bucket) {
	b.WriteString("| Range | Count | Share |\n|---|---|---|\n")
	for _, bkt := range buckets {
		if bkt.Count == 0 {
			continue
		}
		fmt.Fprintf(b, "| %s | %d | %.1f%% |\n", bkt.Label, bkt.Count, bkt.Percent)
	}
}
