package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestValidate_TagColor(t *testing.T) {
	testCases := []struct {
		color   *string
		wantErr bool
	}{
		{nil, false},
		{strPtr("#FF0000"), false},
		{strPtr("#a1b2c3"), false},
		{strPtr("#FFF"), true},
		{strPtr("FF0000"), true},
		{strPtr("#GG0000"), true},
		{strPtr("#FF00001"), true},
	}

	for _, tc := range testCases {
		err := Validate(TagCreate{Name: "urgent", Color: tc.color})
		if tc.wantErr {
			assert.Error(t, err, *tc.color)
			assert.Contains(t, err.Error(), "color")
		} else {
			assert.NoError(t, err)
		}
	}
}

func TestValidate_UserCreate(t *testing.T) {
	valid := UserCreate{Email: "a@x.com", Username: "alice_01"}
	assert.NoError(t, Validate(valid))

	badEmail := valid
	badEmail.Email = "not-an-email"
	err := Validate(badEmail)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "email")

	shortName := valid
	shortName.Username = "al"
	assert.Error(t, Validate(shortName))

	badChars := valid
	badChars.Username = "alice-smith"
	err = Validate(badChars)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "username")

	shortPassword := valid
	shortPassword.Password = strPtr("short")
	assert.Error(t, Validate(shortPassword))
}

func TestValidate_TaskEnums(t *testing.T) {
	status := TaskStatus("done")
	err := Validate(TaskCreate{Title: "t", ProjectID: uuid.New(), Status: &status})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status")

	priority := TaskPriority("urgent")
	err = Validate(TaskUpdate{Priority: &priority})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "priority")

	ok := TaskStatusOnHold
	assert.NoError(t, Validate(TaskUpdate{Status: &ok}))
}

func TestValidate_RequiredFields(t *testing.T) {
	err := Validate(TaskCreate{Title: "t"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "project_id is required")

	err = Validate(CommentCreate{TaskID: uuid.New(), CreatedBy: uuid.New()})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "content is required")

	negative := -1.5
	err = Validate(AssignmentCreate{TaskID: uuid.New(), UserID: uuid.New(), HoursAllocated: &negative})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "hours_allocated")
}
