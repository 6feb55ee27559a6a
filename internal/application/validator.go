package application

import (
	"encoding/json"
	"strconv"

	"github.com/ericfisherdev/hwnotify/internal/domain/model"
)

// Keys every status API response must carry.
const (
	keyHomeworks   = "homeworks"
	keyCurrentDate = "current_date"
)

// ValidateResponse checks the shape of a decoded status API response and
// returns its work items together with the cursor for the next request.
// Both required keys are checked for presence individually.
func ValidateResponse(raw any) (model.Batch, error) {
	response, ok := raw.(map[string]any)
	if !ok || response == nil {
		return model.Batch{}, &model.SchemaError{Reason: "not a mapping"}
	}

	homeworksValue, hasHomeworks := response[keyHomeworks]
	currentDate, hasCurrentDate := response[keyCurrentDate]
	if !hasHomeworks || !hasCurrentDate {
		return model.Batch{}, &model.SchemaError{Reason: "missing required keys"}
	}

	homeworks, ok := homeworksValue.([]any)
	if !ok {
		return model.Batch{}, &model.SchemaError{Reason: "homeworks not a list"}
	}

	cursor, ok := cursorFromValue(currentDate)
	if !ok {
		return model.Batch{}, &model.SchemaError{Reason: "current_date not a cursor value"}
	}

	return model.Batch{Items: homeworks, CurrentDate: cursor}, nil
}

// cursorFromValue converts a decoded current_date into its wire form.
// Adapters decode with json.Number, but plain Go numbers are accepted too.
func cursorFromValue(v any) (model.Cursor, bool) {
	switch c := v.(type) {
	case json.Number:
		return model.Cursor(c.String()), true
	case string:
		if c == "" {
			return "", false
		}
		return model.Cursor(c), true
	case int:
		return model.Cursor(strconv.Itoa(c)), true
	case int64:
		return model.Cursor(strconv.FormatInt(c, 10)), true
	case float64:
		return model.Cursor(strconv.FormatFloat(c, 'f', -1, 64)), true
	default:
		return "", false
	}
}
