package planner

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument indicates the planner inputs cannot produce a plan.
var ErrInvalidArgument = errors.New("invalid argument")

// ValidateIntroShape checks the intro bounds that can be verified without
// knowing the page count of the source.
func ValidateIntroShape(intro *IntroRange) error {
	if intro == nil {
		return nil
	}
	if intro.Start < 1 {
		return fmt.Errorf("%w: intro start must be at least 1, got %d", ErrInvalidArgument, intro.Start)
	}
	if intro.End < intro.Start {
		return fmt.Errorf("%w: intro end %d is before intro start %d", ErrInvalidArgument, intro.End, intro.Start)
	}
	return nil
}

// Plan divides the body pages of a totalPages-long document across partCount parts.
//
// Body pages follow the intro range (or start at page 1 without one). Each part
// receives body/partCount pages; the first body%partCount parts receive one
// extra page. When partCount exceeds the body length, trailing parts get no
// body pages.
func Plan(totalPages, partCount int, intro *IntroRange) (*SplitPlan, error) {
	if partCount < 1 {
		return nil, fmt.Errorf("%w: part count must be at least 1, got %d", ErrInvalidArgument, partCount)
	}
	if totalPages < 1 {
		return nil, fmt.Errorf("%w: document has no pages", ErrInvalidArgument)
	}
	if err := ValidateIntroShape(intro); err != nil {
		return nil, err
	}

	introPages := 0
	firstBody := 1
	var shared *IntroRange
	if intro != nil {
		if intro.Start > totalPages || intro.End > totalPages {
			return nil, fmt.Errorf("%w: intro range %s exceeds document length %d", ErrInvalidArgument, intro, totalPages)
		}
		shared = &IntroRange{Start: intro.Start, End: intro.End}
		introPages = shared.PageCount()
		firstBody = shared.End + 1
	}

	bodyPages := totalPages - firstBody + 1
	base := bodyPages / partCount
	remainder := bodyPages % partCount

	plan := &SplitPlan{
		TotalPages: totalPages,
		IntroPages: introPages,
		BodyPages:  bodyPages,
		PartCount:  partCount,
		Intro:      shared,
		Parts:      make([]PartPlan, 0, partCount),
	}

	start := firstBody
	for i := 0; i < partCount; i++ {
		count := base
		if i < remainder {
			count++
		}

		part := PartPlan{
			Index:     i + 1,
			StartPage: start,
			EndPage:   start + count - 1,
			PageCount: count,
		}
		if shared != nil {
			introStart, introEnd := shared.Start, shared.End
			part.IntroStartPage = &introStart
			part.IntroEndPage = &introEnd
			part.WithIntro = true
			part.Intro = shared
		}

		plan.Parts = append(plan.Parts, part)
		start += count
	}

	return plan, nil
}
