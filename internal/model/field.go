package model

// ScoreField selects which score a ranked query orders by
type ScoreField string

const (
	FieldTotal       ScoreField = "total"
	FieldCompetition ScoreField = "competition"
)

// ParseScoreField validates a caller-supplied field name.
// An empty value defaults to the all-time total.
func ParseScoreField(s string) (ScoreField, error) {
	switch ScoreField(s) {
	case "":
		return FieldTotal, nil
	case FieldTotal:
		return FieldTotal, nil
	case FieldCompetition:
		return FieldCompetition, nil
	default:
		return "", ErrInvalidField
	}
}
