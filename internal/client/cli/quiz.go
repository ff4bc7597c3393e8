package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/dmitrijs2005/simcar/internal/client/quiz"
)

const defaultQuizCount = 5

// Quiz runs the used-car quiz: quiz [difficulty] [count]. Typing q
// abandons the run.
func (a *App) Quiz(ctx context.Context, args []string) error {
	var (
		d     quiz.Difficulty
		count = defaultQuizCount
		err   error
	)
	for _, arg := range args {
		if n, convErr := strconv.Atoi(arg); convErr == nil {
			count = n
			continue
		}
		if d, err = quiz.ParseDifficulty(arg); err != nil {
			return err
		}
	}

	q, clamped, err := quiz.Start(a.bank, d, count, a.quizOpts)
	if err != nil {
		if errors.Is(err, quiz.ErrEmptyBank) {
			return fmt.Errorf("선택한 조건에 맞는 문제가 없습니다: %w", err)
		}
		return err
	}
	if clamped {
		a.printf("선택한 필터로는 충분한 문제가 없습니다. 총 %d개의 문제로 퀴즈를 시작합니다.\n", q.Len())
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		cur, _ := q.Current()
		a.printf("\n문제 %d / %d  [%s · %s]\n%s\n", q.Index()+1, q.Len(), cur.Category, cur.Difficulty, cur.Question)
		for i, opt := range cur.Options {
			a.printf("  %d) %s\n", i+1, opt)
		}

		correct, err := a.answer(q, len(cur.Options))
		if err != nil {
			return err
		}
		if correct {
			a.println("정답입니다!")
		} else {
			a.printf("오답입니다. 정답: %d) %s\n", cur.CorrectAnswer+1, cur.Options[cur.CorrectAnswer])
		}
		if cur.Explanation != "" {
			a.println(cur.Explanation)
		}

		more, err := q.Next()
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	a.printResult(q.Result())
	return nil
}

// answer reads option numbers until one is accepted.
func (a *App) answer(q *quiz.Quiz, options int) (bool, error) {
	for {
		raw, err := getSimpleText(a.reader, fmt.Sprintf("답 (1-%d, q: 그만하기)", options), a.out)
		if err != nil {
			return false, err
		}
		if raw == "q" {
			return false, errCancelled
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			a.printf("1부터 %d 사이의 번호를 입력하세요.\n", options)
			continue
		}
		correct, err := q.Answer(n - 1)
		if errors.Is(err, quiz.ErrOptionRange) {
			a.printf("1부터 %d 사이의 번호를 입력하세요.\n", options)
			continue
		}
		return correct, err
	}
}

func (a *App) printResult(r quiz.Result) {
	a.printf("\n결과: %d문제 중 %d문제 정답 (%d점), 소요 시간 %s\n", r.Total, r.Correct, r.Score, quiz.FormatElapsed(r.Elapsed))
	a.println(r.Message())

	cats := make([]string, 0, len(r.CategoryScores))
	for c := range r.CategoryScores {
		cats = append(cats, string(c))
	}
	sort.Strings(cats)
	for _, c := range cats {
		cs := r.CategoryScores[quiz.Category(c)]
		a.printf("  %s: %d/%d (%d%%)\n", c, cs.Correct, cs.Total, cs.Percentage)
	}
}
