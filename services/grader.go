package services

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/aadidev-sraj/project-lyra/shared"
)

// GradeResult is the raw outcome of grading one submission, before any
// hint penalty is applied.
type GradeResult struct {
	Score    int
	Passed   bool
	Feedback string
}

// Grader scores a submission against the stored solution for one
// challenge type.
type Grader interface {
	Type() string
	Threshold() int
	Grade(answers, solution json.RawMessage) (*GradeResult, error)
}

var graders = map[string]Grader{
	shared.ChallengePhishingDetection:     phishingGrader{},
	shared.ChallengePasswordStrength:      passwordGrader{},
	shared.ChallengeNetworkAnalysis:       networkGrader{},
	shared.ChallengeMalwareIdentification: malwareGrader{},
}

// GraderFor returns the grader registered for a challenge type.
func GraderFor(challengeType string) (Grader, bool) {
	g, ok := graders[challengeType]
	return g, ok
}

// ApplyHintPenalty deducts 5 points per hint used, floored at zero.
func ApplyHintPenalty(score, hintsUsed int) int {
	final := score - hintsUsed*5
	if final < 0 {
		return 0
	}
	return final
}

func decodeList(raw json.RawMessage) ([]interface{}, error) {
	var list []interface{}
	if len(raw) == 0 {
		return list, nil
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("expected a JSON array: %w", err)
	}
	return list, nil
}

func containsDeep(list []interface{}, item interface{}) bool {
	for _, candidate := range list {
		if reflect.DeepEqual(candidate, item) {
			return true
		}
	}
	return false
}

func percentage(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// ==================== PHISHING DETECTION ====================

// phishingGrader scores the set of items flagged as phishing. Each missed
// item lowers the hit rate and each false positive costs 10 points.
type phishingGrader struct{}

func (phishingGrader) Type() string   { return shared.ChallengePhishingDetection }
func (phishingGrader) Threshold() int { return 70 }

func (g phishingGrader) Grade(answers, solution json.RawMessage) (*GradeResult, error) {
	selected, err := decodeList(answers)
	if err != nil {
		return nil, err
	}
	expected, err := decodeList(solution)
	if err != nil {
		return nil, err
	}

	correct := 0
	for _, item := range expected {
		if containsDeep(selected, item) {
			correct++
		}
	}
	falsePositives := 0
	for _, item := range selected {
		if !containsDeep(expected, item) {
			falsePositives++
		}
	}

	score := percentage(correct, len(expected)) - falsePositives*10
	if score < 0 {
		score = 0
	}

	return &GradeResult{
		Score:  score,
		Passed: score >= g.Threshold(),
		Feedback: fmt.Sprintf("You identified %d of %d phishing attempts with %d false positives",
			correct, len(expected), falsePositives),
	}, nil
}

// ==================== PASSWORD STRENGTH ====================

// passwordGrader compares ratings position by position against the
// reference ratings.
type passwordGrader struct{}

func (passwordGrader) Type() string   { return shared.ChallengePasswordStrength }
func (passwordGrader) Threshold() int { return 80 }

func (g passwordGrader) Grade(answers, solution json.RawMessage) (*GradeResult, error) {
	ratings, err := decodeList(answers)
	if err != nil {
		return nil, err
	}
	expected, err := decodeList(solution)
	if err != nil {
		return nil, err
	}

	correct := 0
	for i := 0; i < len(ratings) && i < len(expected); i++ {
		if reflect.DeepEqual(ratings[i], expected[i]) {
			correct++
		}
	}

	score := percentage(correct, len(expected))

	return &GradeResult{
		Score:    score,
		Passed:   score >= g.Threshold(),
		Feedback: fmt.Sprintf("You rated %d of %d passwords correctly", correct, len(expected)),
	}, nil
}

// ==================== NETWORK ANALYSIS ====================

// networkGrader scores flagged log entries. False positives cost 5 points
// each since noisy flagging defeats the exercise.
type networkGrader struct{}

func (networkGrader) Type() string   { return shared.ChallengeNetworkAnalysis }
func (networkGrader) Threshold() int { return 75 }

func (g networkGrader) Grade(answers, solution json.RawMessage) (*GradeResult, error) {
	flagged, err := decodeList(answers)
	if err != nil {
		return nil, err
	}
	expected, err := decodeList(solution)
	if err != nil {
		return nil, err
	}

	correct := 0
	for _, item := range expected {
		if containsDeep(flagged, item) {
			correct++
		}
	}
	falsePositives := 0
	for _, item := range flagged {
		if !containsDeep(expected, item) {
			falsePositives++
		}
	}

	score := percentage(correct, len(expected)) - falsePositives*5
	if score < 0 {
		score = 0
	}

	return &GradeResult{
		Score:  score,
		Passed: score >= g.Threshold(),
		Feedback: fmt.Sprintf("You flagged %d of %d suspicious entries with %d false positives",
			correct, len(expected), falsePositives),
	}, nil
}

// ==================== MALWARE IDENTIFICATION ====================

// malwareGrader is all or nothing: the submission must match the solution
// exactly.
type malwareGrader struct{}

func (malwareGrader) Type() string   { return shared.ChallengeMalwareIdentification }
func (malwareGrader) Threshold() int { return 100 }

func (g malwareGrader) Grade(answers, solution json.RawMessage) (*GradeResult, error) {
	var submitted, expected interface{}
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &submitted); err != nil {
			return nil, fmt.Errorf("invalid answers payload: %w", err)
		}
	}
	if len(solution) > 0 {
		if err := json.Unmarshal(solution, &expected); err != nil {
			return nil, fmt.Errorf("invalid solution payload: %w", err)
		}
	}

	if reflect.DeepEqual(submitted, expected) {
		return &GradeResult{
			Score:    100,
			Passed:   true,
			Feedback: "Correct identification",
		}, nil
	}

	return &GradeResult{
		Score:    0,
		Passed:   false,
		Feedback: "Incorrect identification",
	}, nil
}
