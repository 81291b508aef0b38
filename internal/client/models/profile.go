package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/roomsync/internal/common"
)

// OccupationStudent requires the academic fields to be filled in.
const OccupationStudent = "student"

// ValidateProfile checks the fields required to complete a profile and
// returns ErrProfileIncomplete naming whatever is missing.
func ValidateProfile(fields map[string]any) error {
	var missing []string

	for _, k := range []string{"gender", "age", "occupation"} {
		if !present(fields[k]) {
			missing = append(missing, k)
		}
	}
	if present(fields["age"]) && !positive(fields["age"]) {
		missing = append(missing, "age")
	}

	if occ, _ := fields["occupation"].(string); strings.EqualFold(occ, OccupationStudent) {
		for _, k := range []string{"university", "yearOfStudy"} {
			if !present(fields[k]) {
				missing = append(missing, k)
			}
		}
	}

	for _, k := range []string{"lifestyle", "personality"} {
		if !present(fields[k]) {
			missing = append(missing, k)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", common.ErrProfileIncomplete, strings.Join(missing, ", "))
	}
	return nil
}

func present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(x) != ""
	case []any:
		return len(x) > 0
	case []string:
		return len(x) > 0
	default:
		return true
	}
}

func positive(v any) bool {
	switch x := v.(type) {
	case int:
		return x > 0
	case int64:
		return x > 0
	case float64:
		return x > 0
	case json.Number:
		f, err := x.Float64()
		return err == nil && f > 0
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		return err == nil && n > 0
	default:
		return false
	}
}
