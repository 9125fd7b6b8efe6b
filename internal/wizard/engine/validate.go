package engine

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"

	"github.com/stratum-mining/sv2-wizard/internal/wizard/steps"
)

var fieldValidator = newFieldValidator()

func newFieldValidator() *validator.Validate {
	v := validator.New()
	// whole accepts floats without a fractional part. Other kinds pass.
	if err := v.RegisterValidation("whole", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		switch f.Kind() {
		case reflect.Float32, reflect.Float64:
			x := f.Float()
			return x == math.Trunc(x) && !math.IsInf(x, 0)
		}
		return true
	}); err != nil {
		panic(err)
	}
	return v
}

// CheckField validates v against the Validate tags of f. Blank values are
// left to the required check and always pass.
func CheckField(f steps.Field, v any) error {
	if f.Validate == "" || blank(v) {
		return nil
	}

	switch f.Type {
	case steps.FieldNumber:
		n, err := number(v)
		if err != nil {
			return &FieldError{Key: f.Key, Label: f.Label, Reason: "must be a number"}
		}
		v = n
	case steps.FieldText:
		v = cast.ToString(v)
	}

	err := fieldValidator.Var(v, f.Validate)
	if err == nil {
		return nil
	}
	return &FieldError{Key: f.Key, Label: f.Label, Reason: reason(err)}
}

// number converts v to float64. Strings are read as decimal.
func number(v any) (float64, error) {
	switch val := v.(type) {
	case bool:
		return 0, fmt.Errorf("%v is not a number", v)
	case string:
		return strconv.ParseFloat(strings.TrimSpace(val), 64)
	}
	return cast.ToFloat64E(v)
}

func reason(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch fe.Tag() {
	case "whole":
		return "must be a whole number"
	case "min", "gte":
		return "must be at least " + fe.Param() + unit
	case "max", "lte":
		return "must be at most " + fe.Param() + unit
	case "gt":
		return "must be greater than " + fe.Param()
	case "excludesall":
		return "must not contain any of " + fe.Param()
	case "hostname_port":
		return "must be a host:port address"
	}
	return "failed the " + fe.Tag() + " check"
}

// blank reports whether v is nil or a whitespace-only string.
func blank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}
