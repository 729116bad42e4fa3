package entity

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrListNotFound = errors.New("list not found")
	ErrTaskNotFound = errors.New("task not found")
)

type TaskComment struct {
	UserID    string    `bson:"userId" json:"userId"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

type Task struct {
	ID          bson.ObjectID `bson:"_id" json:"id"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	AssignedTo  string        `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Priority    string        `bson:"priority" json:"priority"`
	DueDate     *time.Time    `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	Comments    []TaskComment `bson:"comments" json:"comments"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}

type BoardList struct {
	ID        bson.ObjectID `bson:"_id" json:"id"`
	Title     string        `bson:"title" json:"title"`
	Tasks     []Task        `bson:"tasks" json:"tasks"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// Board is the per-channel Kanban structure, stored as one document with
// embedded lists and tasks, mutated in memory and saved whole.
type Board struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	ChannelID bson.ObjectID `bson:"channelId" json:"channelId"`
	Title     string        `bson:"title" json:"title"`
	Lists     []BoardList   `bson:"lists" json:"lists"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

func (b *Board) CreateList(title string) *BoardList {
	now := time.Now().UTC()
	b.Lists = append(b.Lists, BoardList{
		ID:        bson.NewObjectID(),
		Title:     title,
		Tasks:     []Task{},
		CreatedAt: now,
		UpdatedAt: now,
	})
	return &b.Lists[len(b.Lists)-1]
}

func (b *Board) FindList(listID bson.ObjectID) *BoardList {
	for i := range b.Lists {
		if b.Lists[i].ID == listID {
			return &b.Lists[i]
		}
	}
	return nil
}

// FindTask locates a task across all lists.
func (b *Board) FindTask(taskID bson.ObjectID) (*BoardList, *Task) {
	for i := range b.Lists {
		for j := range b.Lists[i].Tasks {
			if b.Lists[i].Tasks[j].ID == taskID {
				return &b.Lists[i], &b.Lists[i].Tasks[j]
			}
		}
	}
	return nil, nil
}

func (b *Board) AddTask(listID bson.ObjectID, task Task) (*Task, error) {
	list := b.FindList(listID)
	if list == nil {
		return nil, ErrListNotFound
	}

	now := time.Now().UTC()
	task.ID = bson.NewObjectID()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Priority == "" {
		task.Priority = TaskPriorityMedium
	}
	if task.Comments == nil {
		task.Comments = []TaskComment{}
	}

	list.Tasks = append(list.Tasks, task)
	list.UpdatedAt = now
	return &list.Tasks[len(list.Tasks)-1], nil
}

func (b *Board) UpdateTask(taskID bson.ObjectID, apply func(*Task)) (*Task, error) {
	_, task := b.FindTask(taskID)
	if task == nil {
		return nil, ErrTaskNotFound
	}

	apply(task)
	task.UpdatedAt = time.Now().UTC()
	return task, nil
}

// MoveTask removes the task from its current list and appends it to the
// destination list, preserving task contents.
func (b *Board) MoveTask(taskID, toListID bson.ObjectID) error {
	fromList, task := b.FindTask(taskID)
	if task == nil {
		return ErrTaskNotFound
	}

	toList := b.FindList(toListID)
	if toList == nil {
		return ErrListNotFound
	}

	moved := *task
	for i := range fromList.Tasks {
		if fromList.Tasks[i].ID == taskID {
			fromList.Tasks = append(fromList.Tasks[:i], fromList.Tasks[i+1:]...)
			break
		}
	}

	now := time.Now().UTC()
	fromList.UpdatedAt = now
	toList.UpdatedAt = now
	toList.Tasks = append(toList.Tasks, moved)
	return nil
}

func (b *Board) AddComment(taskID bson.ObjectID, userID, text string) (*Task, error) {
	return b.UpdateTask(taskID, func(t *Task) {
		t.Comments = append(t.Comments, TaskComment{
			UserID:    userID,
			Text:      text,
			CreatedAt: time.Now().UTC(),
		})
	})
}
