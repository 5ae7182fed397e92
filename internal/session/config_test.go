package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/medprep/internal/question"
)

func TestResolveConfig_Defaults(t *testing.T) {
	cfg, err := ResolveConfig(ConfigPatch{})
	require.NoError(t, err)
	assert.Equal(t, ModeStudy, cfg.Mode)
	assert.Equal(t, DefaultQuestionsCount, cfg.QuestionsCount)
	assert.Equal(t, time.Duration(0), cfg.TimeLimit)
	assert.Empty(t, cfg.SpecialtyFilter)
	assert.Empty(t, cfg.DifficultyFilter)
}

func TestResolveConfig_MergesPatch(t *testing.T) {
	mode := ModeTimedPractice
	count := 25
	limit := 20 * time.Minute
	specialty := "Cardiología"

	cfg, err := ResolveConfig(ConfigPatch{
		Mode:            &mode,
		QuestionsCount:  &count,
		TimeLimit:       &limit,
		SpecialtyFilter: &specialty,
	})
	require.NoError(t, err)
	assert.Equal(t, ModeTimedPractice, cfg.Mode)
	assert.Equal(t, 25, cfg.QuestionsCount)
	assert.Equal(t, limit, cfg.TimeLimit)
	assert.Equal(t, "Cardiología", cfg.SpecialtyFilter)
}

func TestResolveConfig_CollectsAllViolations(t *testing.T) {
	mode := Mode("speedrun")
	count := 9000
	limit := -time.Second
	specialty := "Astrología"

	_, err := ResolveConfig(ConfigPatch{
		Mode:            &mode,
		QuestionsCount:  &count,
		TimeLimit:       &limit,
		SpecialtyFilter: &specialty,
	})
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 4, "all violations must be collected, not fail-fast")
}

func TestResolveConfig_QuestionsCountBounds(t *testing.T) {
	for _, count := range []int{0, -1, 501} {
		count := count
		_, err := ResolveConfig(ConfigPatch{QuestionsCount: &count})
		assert.Error(t, err, "count %d must be rejected", count)
	}
	for _, count := range []int{1, 500} {
		count := count
		_, err := ResolveConfig(ConfigPatch{QuestionsCount: &count})
		assert.NoError(t, err, "count %d must be accepted", count)
	}
}

func TestResolveConfig_UnknownDifficulty(t *testing.T) {
	bad := question.Difficulty("imposible")
	_, err := ResolveConfig(ConfigPatch{DifficultyFilter: &bad})
	require.Error(t, err)
}

func TestConfigPatch_IsZero(t *testing.T) {
	assert.True(t, ConfigPatch{}.IsZero())
	count := 5
	assert.False(t, ConfigPatch{QuestionsCount: &count}.IsZero())
}
