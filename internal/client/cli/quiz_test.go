package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/simcar/internal/client/quiz"
)

var oneQuestion = quiz.Bank{{
	ID:            1,
	Question:      "중고차 구매 시 가장 먼저 확인할 서류는?",
	Options:       []string{"자동차 등록증", "운전면허증", "주민등록등본"},
	CorrectAnswer: 0,
	Explanation:   "등록증으로 소유자와 차량 정보를 확인합니다.",
	Category:      quiz.CategoryPaperwork,
	Difficulty:    quiz.DifficultyEasy,
}}

func TestQuiz_RetriesInvalidAnswers(t *testing.T) {
	h := newHarness(t, "abc\n9\n1\n", oneQuestion)

	require.NoError(t, h.app.Quiz(context.Background(), []string{"easy"}))

	out := h.out.String()
	assert.Contains(t, out, "선택한 필터로는 충분한 문제가 없습니다. 총 1개의 문제로 퀴즈를 시작합니다.")
	assert.Contains(t, out, "1부터 3 사이의 번호를 입력하세요.")
	assert.Contains(t, out, "정답입니다!")
	assert.Contains(t, out, "1문제 중 1문제 정답 (100점)")
	assert.Contains(t, out, "서류 확인: 1/1 (100%)")
}

func TestQuiz_WrongAnswerShowsCorrectOne(t *testing.T) {
	h := newHarness(t, "2\n", oneQuestion)

	require.NoError(t, h.app.Quiz(context.Background(), []string{"1"}))

	out := h.out.String()
	assert.Contains(t, out, "오답입니다. 정답: 1) 자동차 등록증")
	assert.Contains(t, out, "(0점)")
}

func TestQuiz_Quit(t *testing.T) {
	h := newHarness(t, "q\n", oneQuestion)
	require.ErrorIs(t, h.app.Quiz(context.Background(), nil), errCancelled)
}

func TestQuiz_NoMatchingQuestions(t *testing.T) {
	h := newHarness(t, "", oneQuestion)
	require.ErrorIs(t, h.app.Quiz(context.Background(), []string{"hard"}), quiz.ErrEmptyBank)
	require.Error(t, h.app.Quiz(context.Background(), []string{"expert"}))
}
