// pkg/matching/labels.go
package matching

const unknownLabel = "The Unique One"

var mbtiLabels = map[string]string{
	"INTJ": "The Architect",
	"INTP": "The Logician",
	"ENTJ": "The Commander",
	"ENTP": "The Debater",
	"INFJ": "The Advocate",
	"INFP": "The Mediator",
	"ENFJ": "The Protagonist",
	"ENFP": "The Campaigner",
	"ISTJ": "The Logistician",
	"ISFJ": "The Defender",
	"ESTJ": "The Executive",
	"ESFJ": "The Consul",
	"ISTP": "The Virtuoso",
	"ISFP": "The Adventurer",
	"ESTP": "The Entrepreneur",
	"ESFP": "The Entertainer",
}

// MBTILabel returns the display nickname for code. Lookup is exact on the
// upper-case code; anything else gets the fallback label.
func MBTILabel(code string) string {
	if label, ok := mbtiLabels[code]; ok {
		return label
	}
	return unknownLabel
}

// Label is MBTILabel for a typed code.
func (m MBTI) Label() string {
	return MBTILabel(string(m))
}
