package validation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jetfriend/jetfriend-api/internal/types"
)

// Ensure implementation satisfies the interface
var _ ContactVerifier = (*ContactVerifierImpl)(nil)

// ContactVerifier validates phone-number formatting and website
// reachability. The combined sub-score is the mean of whichever sub-checks
// were applicable.
type ContactVerifier interface {
	Verify(ctx context.Context, phone, website string) types.ValidationResult
}

type ContactVerifierImpl struct {
	logger       *slog.Logger
	urlChecker   URLChecker
	probeTimeout time.Duration
}

func NewContactVerifier(urlChecker URLChecker, probeTimeout time.Duration, logger *slog.Logger) *ContactVerifierImpl {
	return &ContactVerifierImpl{
		logger:       logger,
		urlChecker:   urlChecker,
		probeTimeout: probeTimeout,
	}
}

func (v *ContactVerifierImpl) Verify(ctx context.Context, phone, website string) types.ValidationResult {
	result := types.ValidationResult{Kind: types.CheckContact}

	var applicable int
	var total float64
	var details []string

	if phone != "" {
		applicable++
		if formatted, ok := validatePhoneFormat(phone); ok {
			total += 1.0
			details = append(details, "phone "+formatted)
		} else {
			details = append(details, "phone format invalid")
		}
	}

	if website != "" {
		applicable++
		urlResult := v.urlChecker.Check(ctx, website, v.probeTimeout)
		total += urlResult.SubScore
		if urlResult.Passed {
			details = append(details, "website reachable")
		} else {
			details = append(details, "website unreachable: "+urlResult.Detail)
		}
	}

	if applicable == 0 {
		result.Detail = "no contact info"
		return result
	}

	result.SubScore = total / float64(applicable)
	result.Passed = result.SubScore > 0
	result.Detail = strings.Join(details, "; ")
	return result
}

// validatePhoneFormat accepts international numbers (+ followed by 10-16
// digits total) and bare US numbers (10 digits, or 11 starting with 1),
// normalizing the latter to +1 form.
func validatePhoneFormat(phone string) (string, bool) {
	var clean strings.Builder
	for i, r := range phone {
		if r >= '0' && r <= '9' {
			clean.WriteRune(r)
		} else if r == '+' && i == 0 {
			clean.WriteRune(r)
		}
	}
	s := clean.String()

	if strings.HasPrefix(s, "+") {
		if len(s) >= 10 && len(s) <= 16 {
			return s, true
		}
		return "", false
	}

	switch {
	case len(s) == 10:
		return "+1" + s, true
	case len(s) == 11 && strings.HasPrefix(s, "1"):
		return "+" + s, true
	default:
		return "", false
	}
}
