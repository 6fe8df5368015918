package models

// Read-time projections that embed related entities for display. They are
// assembled by the services from base rows and never persisted.

type TaskWithRelations struct {
	Task
	Project  *Project `json:"project,omitempty"`
	Assignee *User    `json:"assignee,omitempty"`
}

type TaskDetail struct {
	Task
	Project     *Project         `json:"project,omitempty"`
	Assignee    *User            `json:"assignee,omitempty"`
	Tags        []Tag            `json:"tags"`
	Assignments []TaskAssignment `json:"assignments"`
	Comments    []TaskComment    `json:"comments"`
}

type ProjectDetail struct {
	Project
	Owner          *User `json:"owner,omitempty"`
	TaskCount      int64 `json:"task_count"`
	CompletedCount int64 `json:"completed_count"`
}

type AssignmentDetail struct {
	TaskAssignment
	User *User `json:"user,omitempty"`
	Task *Task `json:"task,omitempty"`
}

type CommentDetail struct {
	TaskComment
	Author *User `json:"author,omitempty"`
	Task   *Task `json:"task,omitempty"`
}

type TagWithTasks struct {
	Tag
	Tasks []Task `json:"tasks"`
}
