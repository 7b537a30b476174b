package models

import (
	"fmt"
	"strconv"
	"strings"
)

// AnswerFieldPrefix prefixes every quiz answer form field
const AnswerFieldPrefix = "user_answers_"

// AnswerKey identifies the quiz item a submitted answer belongs to
type AnswerKey struct {
	Skill string
	Index int
}

// FieldName renders the key as a form field name: user_answers_<skill>_<index>
func (k AnswerKey) FieldName() string {
	return fmt.Sprintf("%s%s_%d", AnswerFieldPrefix, k.Skill, k.Index)
}

// ParseAnswerField is the inverse of FieldName. The index is taken from
// after the last underscore so skill names may contain underscores.
func ParseAnswerField(name string) (AnswerKey, bool) {
	rest, ok := strings.CutPrefix(name, AnswerFieldPrefix)
	if !ok {
		return AnswerKey{}, false
	}
	sep := strings.LastIndex(rest, "_")
	if sep <= 0 || sep == len(rest)-1 {
		return AnswerKey{}, false
	}
	index, err := strconv.Atoi(rest[sep+1:])
	if err != nil || index < 0 {
		return AnswerKey{}, false
	}
	return AnswerKey{Skill: rest[:sep], Index: index}, true
}

// Answers maps quiz items to the submitted choice
type Answers map[AnswerKey]string
