package validate

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Severity grades an issue. Only errors fail validation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one rule violation.
type Issue struct {
	Path     string
	Message  string
	Severity Severity
}

func (i Issue) String() string {
	label := "ERROR"
	if i.Severity == SeverityWarning {
		label = "WARNING"
	}
	return fmt.Sprintf("[%s] %s: %s", label, i.Path, i.Message)
}

func errorf(path, format string, args ...any) Issue {
	return Issue{Path: path, Message: fmt.Sprintf(format, args...), Severity: SeverityError}
}

func warnf(path, format string, args ...any) Issue {
	return Issue{Path: path, Message: fmt.Sprintf(format, args...), Severity: SeverityWarning}
}

// Counts returns the number of errors and warnings in issues.
func Counts(issues []Issue) (errs, warnings int) {
	for _, i := range issues {
		if i.Severity == SeverityError {
			errs++
		} else {
			warnings++
		}
	}
	return errs, warnings
}

// Summary formats the closing line of a validation run.
func Summary(issues []Issue) string {
	errs, warnings := Counts(issues)
	return printer.Sprintf("Validation complete: %d error(s), %d warning(s)", errs, warnings)
}
