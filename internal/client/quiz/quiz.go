// Package quiz runs the used-car trivia quiz: question selection by
// difficulty, answering, and the scored result.
package quiz

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"time"
)

type Difficulty string

const (
	DifficultyAll    Difficulty = ""
	DifficultyEasy   Difficulty = "초급"
	DifficultyMedium Difficulty = "중급"
	DifficultyHard   Difficulty = "고급"
)

// ParseDifficulty accepts the display names and easy/medium/hard/all.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "", "all", "전체":
		return DifficultyAll, nil
	case "easy", string(DifficultyEasy):
		return DifficultyEasy, nil
	case "medium", string(DifficultyMedium):
		return DifficultyMedium, nil
	case "hard", string(DifficultyHard):
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

type Category string

const (
	CategoryPurchase    Category = "구매 팁"
	CategoryInspection  Category = "점검 사항"
	CategoryPaperwork   Category = "서류 확인"
	CategoryNegotiation Category = "가격 협상"
	CategoryMaintenance Category = "유지 관리"
	CategoryInsurance   Category = "보험 및 세금"
	CategoryGeneral     Category = "일반 상식"
)

type Question struct {
	ID            int        `json:"id"`
	Question      string     `json:"question"`
	Options       []string   `json:"options"`
	CorrectAnswer int        `json:"correctAnswer"`
	Explanation   string     `json:"explanation"`
	Category      Category   `json:"category"`
	Difficulty    Difficulty `json:"difficulty"`
}

type Bank []Question

var (
	ErrEmptyBank       = errors.New("quiz: no questions match")
	ErrAlreadyAnswered = errors.New("quiz: question already answered")
	ErrNotAnswered     = errors.New("quiz: answer the current question first")
	ErrOptionRange     = errors.New("quiz: option out of range")
	ErrFinished        = errors.New("quiz: finished")
)

//go:embed sample.json
var sampleBank []byte

// DefaultBank returns the built-in sample questions.
func DefaultBank() (Bank, error) {
	return ParseBank(sampleBank)
}

// LoadBank reads a question bank from a JSON file. An empty path yields the
// built-in bank.
func LoadBank(path string) (Bank, error) {
	if path == "" {
		return DefaultBank()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quiz bank: %w", err)
	}
	return ParseBank(data)
}

func ParseBank(data []byte) (Bank, error) {
	var b Bank
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse quiz bank: %w", err)
	}
	for _, q := range b {
		if len(q.Options) < 2 || q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return nil, fmt.Errorf("quiz bank: question %d is malformed", q.ID)
		}
	}
	return b, nil
}

// Filter returns the questions of difficulty d; DifficultyAll keeps every one.
func (b Bank) Filter(d Difficulty) Bank {
	if d == DifficultyAll {
		return slices.Clone(b)
	}
	var out Bank
	for _, q := range b {
		if q.Difficulty == d {
			out = append(out, q)
		}
	}
	return out
}

// Quiz is one run over a shuffled selection of questions.
type Quiz struct {
	difficulty Difficulty
	questions  []Question
	answers    []int // -1 until answered
	current    int
	started    time.Time
	finished   time.Time
	now        func() time.Time
}

// Options tunes Start. Zero values use math/rand/v2's global source and
// time.Now.
type Options struct {
	Rand *rand.Rand
	Now  func() time.Time
}

// Start selects up to count questions of difficulty d in random order.
// When fewer questions are available the quiz is shortened and clamped
// reports true.
func Start(bank Bank, d Difficulty, count int, opts Options) (q *Quiz, clamped bool, err error) {
	pool := bank.Filter(d)
	if len(pool) == 0 || count <= 0 {
		return nil, false, ErrEmptyBank
	}
	if count > len(pool) {
		count = len(pool)
		clamped = true
	}

	shuffle := rand.Shuffle
	if opts.Rand != nil {
		shuffle = opts.Rand.Shuffle
	}
	shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	answers := make([]int, count)
	for i := range answers {
		answers[i] = -1
	}

	return &Quiz{
		difficulty: d,
		questions:  pool[:count],
		answers:    answers,
		started:    now(),
		now:        now,
	}, clamped, nil
}

func (q *Quiz) Len() int   { return len(q.questions) }
func (q *Quiz) Index() int { return q.current }
func (q *Quiz) Done() bool { return !q.finished.IsZero() }

// Current returns the question being asked.
func (q *Quiz) Current() (Question, bool) {
	if q.Done() {
		return Question{}, false
	}
	return q.questions[q.current], true
}

// Answer records option for the current question and reports whether it
// was right. Each question can be answered once.
func (q *Quiz) Answer(option int) (bool, error) {
	if q.Done() {
		return false, ErrFinished
	}
	cur := q.questions[q.current]
	if option < 0 || option >= len(cur.Options) {
		return false, ErrOptionRange
	}
	if q.answers[q.current] != -1 {
		return false, ErrAlreadyAnswered
	}
	q.answers[q.current] = option
	return option == cur.CorrectAnswer, nil
}

// Next moves to the following question. After the last one the quiz is
// finished and Next returns false.
func (q *Quiz) Next() (bool, error) {
	if q.Done() {
		return false, ErrFinished
	}
	if q.answers[q.current] == -1 {
		return false, ErrNotAnswered
	}
	if q.current < len(q.questions)-1 {
		q.current++
		return true, nil
	}
	q.finished = q.now()
	return false, nil
}

type CategoryScore struct {
	Total      int
	Correct    int
	Percentage int
}

type Result struct {
	Total          int
	Correct        int
	Wrong          int
	Score          int // percent, rounded
	Elapsed        time.Duration
	Difficulty     Difficulty
	CategoryScores map[Category]CategoryScore
}

// Result scores the quiz. Unanswered questions count as wrong; the elapsed
// time runs until the quiz finished, or until now for a quiz in progress.
func (q *Quiz) Result() Result {
	r := Result{
		Total:          len(q.questions),
		Difficulty:     q.difficulty,
		CategoryScores: make(map[Category]CategoryScore),
	}

	for i, question := range q.questions {
		cs := r.CategoryScores[question.Category]
		cs.Total++
		if q.answers[i] == question.CorrectAnswer {
			cs.Correct++
			r.Correct++
		}
		r.CategoryScores[question.Category] = cs
	}
	for cat, cs := range r.CategoryScores {
		cs.Percentage = percent(cs.Correct, cs.Total)
		r.CategoryScores[cat] = cs
	}

	r.Wrong = r.Total - r.Correct
	r.Score = percent(r.Correct, r.Total)

	end := q.finished
	if end.IsZero() {
		end = q.now()
	}
	r.Elapsed = end.Sub(q.started).Truncate(time.Second)
	return r
}

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return (n*200 + total) / (2 * total)
}

// Message is the verdict shown with the result.
func (r Result) Message() string {
	switch {
	case r.Score == 100:
		return "축하합니다! 당신은 중고차 전문가입니다!"
	case r.Score >= 80:
		return "훌륭합니다! 중고차에 대한 지식이 매우 뛰어납니다."
	case r.Score >= 60:
		return "좋은 성적입니다. 중고차에 대해 잘 알고 있지만 아직 배울 점이 있습니다."
	case r.Score >= 40:
		return "중고차에 대한 기본적인 지식이 있습니다. 조금 더 공부해보세요!"
	default:
		return "중고차에 대해 더 많이 배울 필요가 있습니다."
	}
}

// FormatElapsed renders d as m:ss.
func FormatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
