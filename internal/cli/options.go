package cli

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/danieljhkim/pdfsplit/internal/config"
	"github.com/danieljhkim/pdfsplit/internal/engine"
	"github.com/danieljhkim/pdfsplit/internal/planner"
)

// splitOptions holds the flags that only make sense per invocation.
// Settings that can also live in a config file are resolved by config.Load.
type splitOptions struct {
	FilePath   string `validate:"required" flag:"file-path"`
	Parts      int    `validate:"min=1" flag:"parts"`
	IntroStart *int   `validate:"required_with=IntroEnd,omitempty,min=1" flag:"intro-start"`
	IntroEnd   *int   `validate:"required_with=IntroStart,omitempty,min=1" flag:"intro-end"`
	Verbose    bool
	DryRun     bool
}

var optionsValidator = newOptionsValidator()

func newOptionsValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("flag")
	})
	return v
}

// validate checks the options and reports failures as invalid arguments.
func (o *splitOptions) validate() error {
	err := optionsValidator.Struct(o)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", engine.ErrInvalidArgument, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFlagError(fe))
	}
	return fmt.Errorf("%w: %s", engine.ErrInvalidArgument, strings.Join(msgs, "; "))
}

func describeFlagError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("--%s is required", fe.Field())
	case "required_with":
		other := map[string]string{"IntroStart": "intro-start", "IntroEnd": "intro-end"}[fe.Param()]
		return fmt.Sprintf("--%s is required with --%s", fe.Field(), other)
	case "min":
		return fmt.Sprintf("--%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("--%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

// intro returns the requested intro range, or nil when none was given.
func (o *splitOptions) intro() *planner.IntroRange {
	if o.IntroStart == nil || o.IntroEnd == nil {
		return nil
	}
	return &planner.IntroRange{Start: *o.IntroStart, End: *o.IntroEnd}
}

// request builds the engine request from the options and resolved settings.
func (o *splitOptions) request(cfg *config.Config) *engine.SplitRequest {
	return &engine.SplitRequest{
		FilePath:       o.FilePath,
		Parts:          o.Parts,
		Intro:          o.intro(),
		OutputDir:      cfg.OutputDir,
		OutputBasename: cfg.OutputBasename,
		Extension:      cfg.Extension,
		EmptyParts:     engine.EmptyPartsPolicy(cfg.EmptyParts),
		Verbose:        o.Verbose,
		DryRun:         o.DryRun,
	}
}
