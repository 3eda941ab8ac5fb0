package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeQuiz(t *testing.T) {
	t.Run("missing quiz returns nil", func(t *testing.T) {
		m := &Module{}
		quiz, err := m.DecodeQuiz()
		assert.NoError(t, err)
		assert.Nil(t, quiz)
	})

	t.Run("null quiz returns nil", func(t *testing.T) {
		m := &Module{Quiz: json.RawMessage(`null`)}
		quiz, err := m.DecodeQuiz()
		assert.NoError(t, err)
		assert.Nil(t, quiz)
	})

	t.Run("quiz without questions returns nil", func(t *testing.T) {
		m := &Module{Quiz: json.RawMessage(`{"questions":[],"passingScore":50}`)}
		quiz, err := m.DecodeQuiz()
		assert.NoError(t, err)
		assert.Nil(t, quiz)
	})

	t.Run("passing score defaults to 70", func(t *testing.T) {
		m := &Module{Quiz: json.RawMessage(`{"questions":[{"id":"q1","question":"?","correctAnswer":"a"}]}`)}
		quiz, err := m.DecodeQuiz()
		assert.NoError(t, err)
		assert.NotNil(t, quiz)
		assert.Equal(t, 70, quiz.PassingScore)
	})

	t.Run("explicit passing score kept", func(t *testing.T) {
		m := &Module{Quiz: json.RawMessage(`{"questions":[{"id":"q1","question":"?","correctAnswer":"a"}],"passingScore":85}`)}
		quiz, err := m.DecodeQuiz()
		assert.NoError(t, err)
		assert.Equal(t, 85, quiz.PassingScore)
	})

	t.Run("malformed quiz errors", func(t *testing.T) {
		m := &Module{Quiz: json.RawMessage(`{`)}
		_, err := m.DecodeQuiz()
		assert.Error(t, err)
	})
}

func TestDecodeSections(t *testing.T) {
	m := &Module{Sections: json.RawMessage(`[{"id":"s1","title":"Intro","type":"text","order":1}]`)}

	sections, err := m.DecodeSections()
	assert.NoError(t, err)
	assert.Len(t, sections, 1)
	assert.Equal(t, "s1", sections[0].ID)

	empty := &Module{}
	sections, err = empty.DecodeSections()
	assert.NoError(t, err)
	assert.Empty(t, sections)
}

func TestCompletionRate(t *testing.T) {
	m := &Module{Stats: ModuleStats{Enrollments: 8, Completions: 2}}
	assert.Equal(t, 25, m.CompletionRate())

	fresh := &Module{}
	assert.Equal(t, 0, fresh.CompletionRate())
}
