// internal/workers/matching/derive-user-profile/models.go
package deriveuserprofile

import "pawmatch-workers/pkg/matching"

type Input struct {
	UserID  string               `json:"userId"`
	Answers matching.QuizAnswers `json:"answers"`
}

type Output struct {
	UserProfile  matching.UserProfile `json:"userProfile"`
	MBTILabel    string               `json:"mbtiLabel"`
	ProfileSaved bool                 `json:"profileSaved"`
}
