package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/model"
	"github.com/aadidev-sraj/project-lyra/shared"
)

func quizFixture() *model.Quiz {
	return &model.Quiz{
		PassingScore: 70,
		Questions: []model.QuizQuestion{
			{ID: "q1", Question: "Pick A", CorrectAnswer: "A", Points: 10},
			{ID: "q2", Question: "True or false", CorrectAnswer: true, Points: 10},
			{ID: "q3", Question: "Pick two", CorrectAnswer: 2, Points: 10},
		},
	}
}

func quizAnswers(values ...interface{}) []dto.QuizAnswerSubmission {
	answers := make([]dto.QuizAnswerSubmission, 0, len(values))
	for _, v := range values {
		answers = append(answers, dto.QuizAnswerSubmission{Answer: v})
	}
	return answers
}

func TestGradeQuizAllCorrect(t *testing.T) {
	score, correct, answers := GradeQuiz(quizFixture(), quizAnswers("A", true, 2))

	assert.Equal(t, 100, score)
	assert.Equal(t, 3, correct)
	assert.Len(t, answers, 3)
	for _, a := range answers {
		assert.True(t, a.IsCorrect)
	}
}

func TestGradeQuizPartial(t *testing.T) {
	score, correct, answers := GradeQuiz(quizFixture(), quizAnswers("A", false, 2))

	assert.Equal(t, 67, score)
	assert.Equal(t, 2, correct)
	assert.False(t, answers[1].IsCorrect)
}

func TestGradeQuizUnansweredCountAsWrong(t *testing.T) {
	score, correct, answers := GradeQuiz(quizFixture(), quizAnswers("A"))

	assert.Equal(t, 33, score)
	assert.Equal(t, 1, correct)
	assert.Len(t, answers, 3)
	assert.False(t, answers[1].IsCorrect)
	assert.False(t, answers[2].IsCorrect)
}

func TestGradeQuizNumberTypesMatch(t *testing.T) {
	// Decoded request bodies carry numbers as float64
	_, correct, _ := GradeQuiz(quizFixture(), quizAnswers("A", true, float64(2)))
	assert.Equal(t, 3, correct)
}

func TestGradeQuizRecordsPerAnswerTime(t *testing.T) {
	_, _, answers := GradeQuiz(quizFixture(), []dto.QuizAnswerSubmission{
		{Answer: "A", TimeSpent: 12},
		{Answer: true, TimeSpent: 8},
	})

	assert.Equal(t, 12, answers[0].TimeSpent)
	assert.Equal(t, 8, answers[1].TimeSpent)
	assert.Equal(t, 0, answers[2].TimeSpent)
}

func TestGradeQuizFallbackQuestionIDs(t *testing.T) {
	quiz := &model.Quiz{
		Questions: []model.QuizQuestion{
			{Question: "first", CorrectAnswer: "x"},
			{Question: "second", CorrectAnswer: "y"},
		},
	}

	_, _, answers := GradeQuiz(quiz, quizAnswers("x", "y"))

	assert.Equal(t, "q1", answers[0].QuestionID)
	assert.Equal(t, "q2", answers[1].QuestionID)
}

func TestGradeQuizEmptyQuiz(t *testing.T) {
	score, correct, answers := GradeQuiz(&model.Quiz{}, quizAnswers("x"))

	assert.Equal(t, 0, score)
	assert.Equal(t, 0, correct)
	assert.Empty(t, answers)
}

// ==================== COMPLETION STATE MACHINE ====================

func sectionsFixture() []model.Section {
	return []model.Section{
		{ID: "s1", Title: "Intro", Type: "text", Order: 1},
		{ID: "s2", Title: "Hands-on", Type: "video", Order: 2},
	}
}

func TestApplySectionCompletionDrivesProgress(t *testing.T) {
	progress := &model.Progress{Status: shared.StatusNotStarted}
	sections := sectionsFixture()

	isNew, err := applySectionCompletion(progress, sections, "s1", 60)
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, 50, progress.Progress)
	assert.Equal(t, shared.StatusInProgress, progress.Status)
	assert.Equal(t, 60, progress.TimeSpent)

	isNew, err = applySectionCompletion(progress, sections, "s2", 30)
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, 100, progress.Progress)
	assert.Equal(t, 90, progress.TimeSpent)
}

func TestApplySectionCompletionIsIdempotent(t *testing.T) {
	progress := &model.Progress{Status: shared.StatusInProgress}
	sections := sectionsFixture()

	_, err := applySectionCompletion(progress, sections, "s1", 45)
	require.NoError(t, err)

	isNew, err := applySectionCompletion(progress, sections, "s1", 45)
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Len(t, progress.DecodeSectionsCompleted(), 1)
	assert.Equal(t, 50, progress.Progress)
	assert.Equal(t, 45, progress.TimeSpent)
}

func TestApplySectionCompletionUnknownSection(t *testing.T) {
	progress := &model.Progress{Status: shared.StatusInProgress}

	_, err := applySectionCompletion(progress, sectionsFixture(), "s9", 0)
	assert.ErrorIs(t, err, errSectionNotFound)
}

func TestMarkCompletedTransitionsOnce(t *testing.T) {
	progress := &model.Progress{Status: shared.StatusInProgress, Progress: 100}

	assert.True(t, markCompleted(progress))
	assert.Equal(t, shared.StatusCompleted, progress.Status)
	require.NotNil(t, progress.CompletedAt)
	assert.True(t, progress.CertificateIssued)
	assert.NotEmpty(t, progress.CertificateID)

	completedAt := *progress.CompletedAt
	certID := progress.CertificateID

	assert.False(t, markCompleted(progress))
	assert.Equal(t, completedAt, *progress.CompletedAt)
	assert.Equal(t, certID, progress.CertificateID)
}

func TestAllSectionsCompleteModuleRegardlessOfQuiz(t *testing.T) {
	// A module with an unpassed quiz still completes once every section is
	// done; the quiz is a separate path to completion, not a gate.
	progress := &model.Progress{Status: shared.StatusInProgress, BestQuizScore: 0}
	sections := sectionsFixture()

	for _, id := range []string{"s1", "s2"} {
		_, err := applySectionCompletion(progress, sections, id, 0)
		require.NoError(t, err)
	}

	require.Equal(t, 100, progress.Progress)
	assert.True(t, markCompleted(progress))
	assert.Equal(t, shared.StatusCompleted, progress.Status)
}

func TestQuizPassCompletesWithoutSections(t *testing.T) {
	// A first passing quiz attempt completes the module even with zero
	// sections done. The percentage keeps tracking sections.
	progress := &model.Progress{Status: shared.StatusInProgress, Progress: 0}

	assert.True(t, markCompleted(progress))
	assert.Equal(t, shared.StatusCompleted, progress.Status)
	assert.Equal(t, 0, progress.Progress)
	assert.Empty(t, progress.DecodeSectionsCompleted())
}

func TestCompletedStatusDoesNotRegress(t *testing.T) {
	progress := &model.Progress{Status: shared.StatusInProgress}
	sections := sectionsFixture()

	_, err := applySectionCompletion(progress, sections, "s1", 0)
	require.NoError(t, err)
	_, err = applySectionCompletion(progress, sections, "s2", 0)
	require.NoError(t, err)
	require.True(t, markCompleted(progress))

	// Re-passing the quiz on a completed module must not re-trigger the
	// one-time completion side effects.
	assert.False(t, markCompleted(progress))
	assert.Equal(t, shared.StatusCompleted, progress.Status)
}
