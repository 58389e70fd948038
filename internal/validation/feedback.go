package validation

import (
	"strconv"
	"strings"

	"github.com/southgate-leisure/feedback/internal/model"
)

// RuleError is a failed submission rule. The message is shown to the visitor
// verbatim, so callers can tell validation failures apart from storage errors.
type RuleError struct {
	Message string
}

func (e *RuleError) Error() string {
	return e.Message
}

// Submission holds the raw form values of a feedback submission, before any
// normalization. Validation runs against this struct so the rules stay pure
// and independent of the HTTP layer.
type Submission struct {
	Activity string
	Rating   string
	Comments string
	Email    string
	Name     string
	BetterID string
	Consent  string
}

const (
	CommentsMinLen = 10
	CommentsMaxLen = 2000
	NameMaxLen     = 50
	BetterIDMaxLen = 30
)

// rule pairs a predicate with the message reported when it fails.
// Rules are evaluated in order and only the first failure is reported,
// so field precedence is encoded by position in the list.
type rule struct {
	ok      func(s Submission) bool
	message string
}

var submissionRules = []rule{
	{
		ok:      func(s Submission) bool { return s.Activity != "" },
		message: "Activity is required",
	},
	{
		ok:      func(s Submission) bool { return s.Activity == "" || model.ValidActivity(s.Activity) },
		message: "Invalid activity selected",
	},
	{
		ok:      func(s Submission) bool { return s.Rating != "" },
		message: "Rating is required",
	},
	{
		ok: func(s Submission) bool {
			n, err := strconv.Atoi(strings.TrimSpace(s.Rating))
			return err == nil && n >= 1 && n <= 5
		},
		message: "Rating must be between 1 and 5",
	},
	{
		ok:      func(s Submission) bool { return strings.TrimSpace(s.Comments) != "" },
		message: "Comments are required",
	},
	{
		ok: func(s Submission) bool {
			n := len(strings.TrimSpace(s.Comments))
			return n >= CommentsMinLen && n <= CommentsMaxLen
		},
		message: "Comments must be between 10 and 2000 characters",
	},
	{
		ok: func(s Submission) bool {
			email := strings.TrimSpace(s.Email)
			return email == "" || ValidateEmail(email) == nil
		},
		message: "Invalid email address",
	},
	{
		ok:      func(s Submission) bool { return len(strings.TrimSpace(s.Name)) <= NameMaxLen },
		message: "Name is too long",
	},
	{
		ok:      func(s Submission) bool { return len(strings.TrimSpace(s.BetterID)) <= BetterIDMaxLen },
		message: "Better ID is too long",
	},
	{
		ok:      func(s Submission) bool { return s.Consent == "on" },
		message: "You must agree to the privacy policy",
	},
}

// ValidateSubmission runs the rule chain and returns the first failure as a
// *RuleError, or nil when every rule passes.
func ValidateSubmission(s Submission) error {
	for _, r := range submissionRules {
		if !r.ok(s) {
			return &RuleError{Message: r.message}
		}
	}
	return nil
}
