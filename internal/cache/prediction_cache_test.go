package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"innerparts/internal/model"
)

func TestAnswerDigestIsOrderIndependent(t *testing.T) {
	a := model.Answers{"Q1": "0", "Q2": "21-50%", "Q3": "1, 2"}
	b := model.Answers{"Q3": "1, 2", "Q1": "0", "Q2": "21-50%"}

	assert.Equal(t, AnswerDigest(a), AnswerDigest(b))
	assert.Len(t, AnswerDigest(a), 64)
}

func TestAnswerDigestDistinguishesAnswerSets(t *testing.T) {
	base := model.Answers{"Q1": "0", "Q2": "21-50%"}

	changedValue := model.Answers{"Q1": "1", "Q2": "21-50%"}
	assert.NotEqual(t, AnswerDigest(base), AnswerDigest(changedValue))

	extraKey := model.Answers{"Q1": "0", "Q2": "21-50%", "Q3": ""}
	assert.NotEqual(t, AnswerDigest(base), AnswerDigest(extraKey))

	swappedKeys := model.Answers{"Q1": "21-50%", "Q2": "0"}
	assert.NotEqual(t, AnswerDigest(base), AnswerDigest(swappedKeys))
}
