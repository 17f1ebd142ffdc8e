package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/gamerack-go/apperror"
)

type scoredPayload struct {
	Score  int    `json:"score" validate:"required,min=1,max=5"`
	Review string `json:"review" validate:"required"`
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(scoredPayload{Score: 4, Review: "good"})
	assert.NoError(t, err)
}

func TestStruct_ScoreTooHigh(t *testing.T) {
	err := Struct(scoredPayload{Score: 6, Review: "good"})
	require.Error(t, err)

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.ValidationError, appErr.Type)
	require.Contains(t, appErr.Fields, "score")
	assert.Equal(t, []string{"ensure this value is less than or equal to 5"}, appErr.Fields["score"])
}

func TestStruct_ScoreZeroIsMissing(t *testing.T) {
	err := Struct(scoredPayload{Review: "good"})
	require.Error(t, err)

	appErr, _ := apperror.FromError(err)
	require.Contains(t, appErr.Fields, "score")
	assert.Equal(t, []string{"this field is required"}, appErr.Fields["score"])
}

func TestStruct_CollectsEveryFailedField(t *testing.T) {
	err := Struct(scoredPayload{Score: 0, Review: ""})
	require.Error(t, err)

	appErr, _ := apperror.FromError(err)
	assert.Len(t, appErr.Fields, 2)
	assert.Contains(t, appErr.Fields, "score")
	assert.Contains(t, appErr.Fields, "review")
}

func TestStruct_UsesJSONFieldNames(t *testing.T) {
	type payload struct {
		CoverURL string `json:"cover_url" validate:"required,url"`
	}
	err := Struct(payload{CoverURL: "not a url"})
	require.Error(t, err)

	appErr, _ := apperror.FromError(err)
	assert.Contains(t, appErr.Fields, "cover_url")
	assert.NotContains(t, appErr.Fields, "CoverURL")
}

func TestStruct_DateFormat(t *testing.T) {
	type payload struct {
		ReleaseDate string `json:"release_date" validate:"required,datetime=2006-01-02"`
	}
	assert.NoError(t, Struct(payload{ReleaseDate: "2017-02-24"}))

	err := Struct(payload{ReleaseDate: "24/02/2017"})
	require.Error(t, err)
	appErr, _ := apperror.FromError(err)
	assert.Contains(t, appErr.Fields, "release_date")
}
