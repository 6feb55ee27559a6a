package application

import (
	"fmt"
	"strings"

	"github.com/ericfisherdev/hwnotify/internal/domain/model"
)

// homeworkVerdicts is the fixed table of verdict texts per review status.
var homeworkVerdicts = map[model.HomeworkStatus]string{
	model.HomeworkStatusApproved:  "The work has been reviewed: the reviewer liked everything. Hooray!",
	model.HomeworkStatusReviewing: "The work has been taken for review by a reviewer.",
	model.HomeworkStatusRejected:  "The work has been reviewed: the reviewer has comments.",
}

// nameKeys lists the keys a work item may carry its name under, in order of
// preference. The upstream API uses homework_name.
var nameKeys = []string{"homework_name", "name"}

const keyStatus = "status"

// markdownEscaper backslash-escapes the punctuation that could turn part of
// a homework name into markup when the verdict is rendered.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`&`, `\&`,
	`~`, `\~`,
)

// InterpretStatus maps a single work item to the verdict message that
// announces its current status. The verdict is markdown: the status is bold
// and the name is escaped so it renders literally.
func InterpretStatus(item any) (model.Verdict, error) {
	hw, err := parseHomework(item)
	if err != nil {
		return "", err
	}

	verdict, ok := homeworkVerdicts[hw.Status]
	if !ok {
		return "", &model.UnexpectedStatusError{Status: string(hw.Status)}
	}

	return model.Verdict(fmt.Sprintf(`Status of homework "%s" changed to **%s**: %s`,
		markdownEscaper.Replace(hw.Name), hw.Status, verdict)), nil
}

// parseHomework extracts name and status from a raw work item.
func parseHomework(item any) (model.Homework, error) {
	fields, ok := item.(map[string]any)
	if !ok || fields == nil {
		return model.Homework{}, &model.SchemaError{Reason: "item not a mapping"}
	}

	var name string
	found := false
	for _, key := range nameKeys {
		if v, ok := fields[key]; ok {
			name = fmt.Sprint(v)
			found = true
			break
		}
	}
	if !found {
		return model.Homework{}, &model.MissingFieldError{Field: nameKeys[0]}
	}

	status, ok := fields[keyStatus]
	if !ok {
		return model.Homework{}, &model.MissingFieldError{Field: keyStatus}
	}

	return model.Homework{
		Name:   name,
		Status: model.HomeworkStatus(fmt.Sprint(status)),
	}, nil
}
