package store

// Level is the programme level of a record. It selects the grading policy.
type Level int

const (
	Undergraduate Level = iota
	Graduate
	Doctoral
)

// Valid reports whether l is one of the three defined levels.
func (l Level) Valid() bool {
	return l >= Undergraduate && l <= Doctoral
}

func (l Level) String() string {
	switch l {
	case Undergraduate:
		return "Undergraduate"
	case Graduate:
		return "Graduate"
	case Doctoral:
		return "Doctoral"
	default:
		return "Unknown"
	}
}

// Grade is a letter grade.
type Grade byte

const (
	GradeA Grade = 'A'
	GradeB Grade = 'B'
	GradeC Grade = 'C'
	GradeF Grade = 'F'
)

func (g Grade) String() string { return string(rune(g)) }

// policy holds the minimum average for A, B and C. Anything below C is F.
type policy struct {
	a, b, c int
}

var policies = [...]policy{
	Undergraduate: {a: 85, b: 70, c: 50},
	Graduate:      {a: 80, b: 65, c: 50},
	Doctoral:      {a: 90, b: 75, c: 60},
}

// GradeFor returns the letter grade for an average under the level's policy.
// Unknown levels always grade F.
func GradeFor(l Level, average int) Grade {
	if !l.Valid() {
		return GradeF
	}
	p := policies[l]
	switch {
	case average >= p.a:
		return GradeA
	case average >= p.b:
		return GradeB
	case average >= p.c:
		return GradeC
	default:
		return GradeF
	}
}
