package broker

import "strings"

type EventType string

// Event types in the form <resource>.<action>. Published subjects are the
// event type behind the configured prefix, e.g. "taskboard.task.created".
const (
	UserCreated EventType = "user.created"
	UserUpdated EventType = "user.updated"
	UserDeleted EventType = "user.deleted"

	ProjectCreated     EventType = "project.created"
	ProjectUpdated     EventType = "project.updated"
	ProjectDeleted     EventType = "project.deleted"
	ProjectSoftDeleted EventType = "project.soft_deleted"
	ProjectRestored    EventType = "project.restored"

	TaskCreated EventType = "task.created"
	TaskUpdated EventType = "task.updated"
	TaskDeleted EventType = "task.deleted"

	TagCreated  EventType = "tag.created"
	TagUpdated  EventType = "tag.updated"
	TagDeleted  EventType = "tag.deleted"
	TagAttached EventType = "tag.attached"
	TagDetached EventType = "tag.detached"

	AssignmentCreated EventType = "assignment.created"
	AssignmentUpdated EventType = "assignment.updated"
	AssignmentDeleted EventType = "assignment.deleted"

	CommentCreated EventType = "comment.created"
	CommentUpdated EventType = "comment.updated"
	CommentDeleted EventType = "comment.deleted"
)

// Subject joins prefix and event into a NATS subject
func Subject(prefix, event string) string {
	return prefix + "." + strings.ToLower(event)
}

// AllSubjects matches every event under prefix
func AllSubjects(prefix string) string {
	return prefix + ".>"
}

// EventFromSubject strips prefix from a received subject
func EventFromSubject(prefix, subject string) string {
	return strings.TrimPrefix(subject, prefix+".")
}
