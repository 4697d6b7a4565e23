package store

import (
	"strconv"

	"github.com/go-playground/validator/v10"
)

const (
	// MaxKeyLen is the maximum length of a record key in bytes.
	MaxKeyLen = 15
	// MaxNameLen is the maximum length of a record name in bytes.
	MaxNameLen = 63
	// MaxBranchLen is the maximum stored length of a branch; longer input is truncated.
	MaxBranchLen = 7

	defaultBranch = "N/A"
)

// Record is one academic entry. Key, name, branch and level are fixed at
// construction; individual scores can be changed with SetScore.
type Record struct {
	key    string
	name   string
	branch string
	level  Level
	scores []int
}

// Summary is the listing view of a record.
type Summary struct {
	Key     string
	Name    string
	Branch  string
	Level   Level
	Total   int
	Average int
	Grade   Grade
}

// recordFields carries the tag-checked constraints. Field order is the
// order in which violations are reported.
type recordFields struct {
	Key   string `validate:"required,recordkey"`
	Name  string `validate:"required,maxbytes=63"`
	Level Level  `validate:"min=0,max=2"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("recordkey", func(fl validator.FieldLevel) bool {
		return validKey(fl.Field().String())
	})
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})
	return v
}

// NewRecord validates the fields and returns a record holding a copy of scores.
func NewRecord(key, name, branch string, level Level, scores []int) (*Record, error) {
	return NewRecordN(key, name, branch, level, len(scores), scores)
}

// NewRecordN is like NewRecord with an explicit component count. A negative
// count is treated as zero. Components without an initial score start at 0.
func NewRecordN(key, name, branch string, level Level, count int, scores []int) (*Record, error) {
	if err := validateFields(key, name, level); err != nil {
		return nil, err
	}

	if branch == "" {
		branch = defaultBranch
	}
	if len(branch) > MaxBranchLen {
		branch = branch[:MaxBranchLen]
	}

	if count < 0 {
		count = 0
	}
	var marks []int
	if count > 0 {
		marks = make([]int, count)
		copy(marks, scores)
	}

	return &Record{
		key:    key,
		name:   name,
		branch: branch,
		level:  level,
		scores: marks,
	}, nil
}

func validateFields(key, name string, level Level) error {
	err := validate.Struct(recordFields{Key: key, Name: name, Level: level})
	if err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok || len(verrs) == 0 {
			return newError(InvalidKey, "%v", err)
		}
		fe := verrs[0]
		switch fe.Field() {
		case "Key":
			return newError(InvalidKey, "%q", key)
		case "Name":
			return newError(InvalidNameFormat, "name must be 1..%d bytes", MaxNameLen)
		default:
			return newError(InvalidLevel, "%d", int(level))
		}
	}
	return checkSecondName(name)
}

func validKey(key string) bool {
	if len(key) == 0 || len(key) > MaxKeyLen {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		ok := (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') || c == '-' || c == '_'
		if !ok {
			return false
		}
	}
	return true
}

// checkSecondName requires a token after the first space run and that
// token to be ASCII letters only. Later tokens are not inspected.
func checkSecondName(name string) error {
	i := 0
	for i < len(name) && name[i] != ' ' {
		i++
	}
	if i == len(name) {
		return newError(InvalidNameFormat, "no space in %q", name)
	}
	for i < len(name) && name[i] == ' ' {
		i++
	}
	if i == len(name) {
		return newError(InvalidNameFormat, "nothing after space in %q", name)
	}
	for ; i < len(name) && name[i] != ' '; i++ {
		if !isAlpha(name[i]) {
			return newError(InvalidNameChars, "%q at offset %d", name[i], i)
		}
	}
	return nil
}

func isAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func (r *Record) Key() string    { return r.key }
func (r *Record) Name() string   { return r.name }
func (r *Record) Branch() string { return r.branch }
func (r *Record) Level() Level   { return r.level }

// Components returns the fixed number of scores.
func (r *Record) Components() int { return len(r.scores) }

// Scores returns a copy of the scores.
func (r *Record) Scores() []int {
	if len(r.scores) == 0 {
		return nil
	}
	out := make([]int, len(r.scores))
	copy(out, r.scores)
	return out
}

// ScoreAt returns the score of component idx.
func (r *Record) ScoreAt(idx int) (int, error) {
	if idx < 0 || idx >= len(r.scores) {
		return 0, newError(IndexOutOfRange, "component %d of %d", idx, len(r.scores))
	}
	return r.scores[idx], nil
}

// SetScore replaces the score of component idx.
func (r *Record) SetScore(idx, value int) error {
	if idx < 0 || idx >= len(r.scores) {
		return newError(IndexOutOfRange, "component %d of %d", idx, len(r.scores))
	}
	r.scores[idx] = value
	return nil
}

// Total returns the sum of all scores.
func (r *Record) Total() int {
	total := 0
	for _, s := range r.scores {
		total += s
	}
	return total
}

// Average returns Total divided by the number of components, or 0 without scores.
func (r *Record) Average() int {
	if len(r.scores) == 0 {
		return 0
	}
	return r.Total() / len(r.scores)
}

// Grade returns the letter grade of Average under the record's level policy.
func (r *Record) Grade() Grade {
	return GradeFor(r.level, r.Average())
}

// Summary returns the listing view of the record.
func (r *Record) Summary() Summary {
	return Summary{
		Key:     r.key,
		Name:    r.name,
		Branch:  r.branch,
		Level:   r.level,
		Total:   r.Total(),
		Average: r.Average(),
		Grade:   r.Grade(),
	}
}
