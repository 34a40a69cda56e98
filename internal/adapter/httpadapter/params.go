package httpadapter

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// queryParams are the optional query parameters shared by the chart and feed routes.
// An unknown location is not an error; lookups fall back to the default preset.
type queryParams struct {
	Days     int    `validate:"min=1,max=36500"`
	Location string `validate:"max=100"`
}

func parseQueryParams(values url.Values, defaultDays int) (queryParams, error) {
	p := queryParams{
		Days:     defaultDays,
		Location: strings.TrimSpace(values.Get("location")),
	}

	if raw := values.Get("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return queryParams{}, fmt.Errorf("days: %q is not an integer", raw)
		}
		p.Days = days
	}

	if err := validate.Struct(p); err != nil {
		return queryParams{}, describeValidation(err)
	}
	return p, nil
}

func describeValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s: must be at least %s", field, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s: must be at most %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
