// Package questions implements question sources for the quiz machine.
package questions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/abhisek/quizzer/internal/quiz"
)

// BankVersion is the bank file format version written by this package.
const BankVersion = "1.0.0"

// ErrUnsupportedVersion is returned for bank files of another major version.
var ErrUnsupportedVersion = errors.New("unsupported bank version")

// Bank is the versioned question file format. A bare JSON array of
// questions is accepted as well.
type Bank struct {
	Version   string          `json:"version,omitempty"`
	Questions []quiz.Question `json:"questions"`
}

// Parse decodes and validates a question bank.
func Parse(data []byte) ([]quiz.Question, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("parse bank: empty document")
	}

	var qs []quiz.Question
	if data[0] == '[' {
		if err := json.Unmarshal(data, &qs); err != nil {
			return nil, fmt.Errorf("parse bank: %w", err)
		}
	} else {
		var b Bank
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("parse bank: %w", err)
		}
		if err := checkVersion(b.Version); err != nil {
			return nil, err
		}
		qs = b.Questions
	}

	if err := quiz.ValidateQuestions(qs); err != nil {
		return nil, fmt.Errorf("parse bank: %w", err)
	}
	return qs, nil
}

// Marshal encodes qs in the versioned bank format.
func Marshal(qs []quiz.Question) ([]byte, error) {
	return json.MarshalIndent(Bank{Version: BankVersion, Questions: qs}, "", "  ")
}

func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	canonical := v
	if !strings.HasPrefix(canonical, "v") {
		canonical = "v" + canonical
	}
	if !semver.IsValid(canonical) {
		return fmt.Errorf("parse bank: invalid version %q", v)
	}
	if semver.Major(canonical) != semver.Major("v"+BankVersion) {
		return fmt.Errorf("%w: %s", ErrUnsupportedVersion, v)
	}
	return nil
}
