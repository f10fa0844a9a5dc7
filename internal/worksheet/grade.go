package worksheet

// DefaultGradeLevel is selected when a form is created.
const DefaultGradeLevel = "5th Grade"

// GradeLevels is the fixed list offered by the form, youngest first.
var GradeLevels = []string{
	"Kindergarten",
	"1st Grade",
	"2nd Grade",
	"3rd Grade",
	"4th Grade",
	"5th Grade",
	"6th Grade",
	"7th Grade",
	"8th Grade",
	"High School",
	"College",
}

// IsGradeLevel reports whether s is one of GradeLevels.
func IsGradeLevel(s string) bool {
	for _, g := range GradeLevels {
		if g == s {
			return true
		}
	}
	return false
}
