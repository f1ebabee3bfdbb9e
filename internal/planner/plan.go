package planner

import "fmt"

// IntroRange is a 1-based inclusive page span replicated at the start of every part.
type IntroRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// PageCount returns the number of pages in the range.
func (r IntroRange) PageCount() int {
	return r.End - r.Start + 1
}

// String formats the range as "start-end".
func (r IntroRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// PartPlan describes the pages that make up a single output part.
type PartPlan struct {
	// Index is the 1-based part number
	Index int `json:"index" yaml:"index"`

	// StartPage is the first body page (1-based, inclusive)
	StartPage int `json:"start_page" yaml:"start_page"`

	// EndPage is the last body page (1-based, inclusive). EndPage == StartPage-1
	// for a part without body pages.
	EndPage int `json:"end_page" yaml:"end_page"`

	// PageCount is the number of body pages
	PageCount int `json:"page_count" yaml:"page_count"`

	IntroStartPage *int `json:"intro_start_page" yaml:"intro_start_page"`
	IntroEndPage   *int `json:"intro_end_page" yaml:"intro_end_page"`
	WithIntro      bool `json:"with_intro" yaml:"with_intro"`

	// Intro is shared by every part of the same plan
	Intro *IntroRange `json:"-" yaml:"-"`
}

// TotalPages returns the number of pages the part's output document holds.
func (p PartPlan) TotalPages() int {
	if p.Intro == nil {
		return p.PageCount
	}
	return p.Intro.PageCount() + p.PageCount
}

// IsEmpty reports whether the part has no body pages.
func (p PartPlan) IsEmpty() bool {
	return p.PageCount == 0
}

// SplitPlan represents a plan to split a source document into parts.
// A plan is never modified after Plan returns it.
type SplitPlan struct {
	TotalPages int         `json:"total_pages" yaml:"total_pages"`
	IntroPages int         `json:"intro_pages" yaml:"intro_pages"`
	BodyPages  int         `json:"body_pages" yaml:"body_pages"`
	PartCount  int         `json:"part_count" yaml:"part_count"`
	Intro      *IntroRange `json:"intro,omitempty" yaml:"intro,omitempty"`
	Parts      []PartPlan  `json:"parts" yaml:"parts"`
}

// EmptyParts returns the indexes of parts without body pages.
func (p *SplitPlan) EmptyParts() []int {
	var empty []int
	for _, part := range p.Parts {
		if part.IsEmpty() {
			empty = append(empty, part.Index)
		}
	}
	return empty
}

// UnusedPages returns the number of leading pages before the intro. Those
// pages belong to no part.
func (p *SplitPlan) UnusedPages() int {
	if p.Intro == nil {
		return 0
	}
	return p.Intro.Start - 1
}
