package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func newTestBoard() *Board {
	return &Board{
		ID:        bson.NewObjectID(),
		ChannelID: bson.NewObjectID(),
		Title:     "Sprint Board",
	}
}

func TestBoard_CreateList(t *testing.T) {
	board := newTestBoard()

	list := board.CreateList("To Do")

	require.NotNil(t, list)
	assert.False(t, list.ID.IsZero())
	assert.Equal(t, "To Do", list.Title)
	assert.NotNil(t, list.Tasks)
	assert.Len(t, board.Lists, 1)
}

func TestBoard_AddTask(t *testing.T) {
	board := newTestBoard()
	list := board.CreateList("To Do")

	task, err := board.AddTask(list.ID, Task{Title: "write docs"})

	require.NoError(t, err)
	assert.False(t, task.ID.IsZero())
	assert.Equal(t, TaskPriorityMedium, task.Priority, "priority defaults to medium")
	assert.NotNil(t, task.Comments)

	_, err = board.AddTask(bson.NewObjectID(), Task{Title: "orphan"})
	assert.ErrorIs(t, err, ErrListNotFound)
}

func TestBoard_AddTask_KeepsExplicitPriority(t *testing.T) {
	board := newTestBoard()
	list := board.CreateList("To Do")

	task, err := board.AddTask(list.ID, Task{Title: "urgent", Priority: TaskPriorityHigh})

	require.NoError(t, err)
	assert.Equal(t, TaskPriorityHigh, task.Priority)
}

func TestBoard_UpdateTask(t *testing.T) {
	board := newTestBoard()
	list := board.CreateList("To Do")
	task, err := board.AddTask(list.ID, Task{Title: "draft"})
	require.NoError(t, err)

	updated, err := board.UpdateTask(task.ID, func(t *Task) {
		t.Title = "final"
		t.AssignedTo = "alice"
	})

	require.NoError(t, err)
	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, "alice", updated.AssignedTo)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))

	_, err = board.UpdateTask(bson.NewObjectID(), func(t *Task) {})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestBoard_MoveTask(t *testing.T) {
	board := newTestBoard()
	todo := board.CreateList("To Do")
	done := board.CreateList("Done")
	task, err := board.AddTask(todo.ID, Task{Title: "ship it"})
	require.NoError(t, err)
	taskID := task.ID

	require.NoError(t, board.MoveTask(taskID, done.ID))

	assert.Empty(t, board.FindList(todo.ID).Tasks)
	movedList, moved := board.FindTask(taskID)
	require.NotNil(t, moved)
	assert.Equal(t, done.ID, movedList.ID)
	assert.Equal(t, "ship it", moved.Title)
}

func TestBoard_MoveTask_UnknownTargets(t *testing.T) {
	board := newTestBoard()
	todo := board.CreateList("To Do")
	task, err := board.AddTask(todo.ID, Task{Title: "stay put"})
	require.NoError(t, err)

	assert.ErrorIs(t, board.MoveTask(bson.NewObjectID(), todo.ID), ErrTaskNotFound)
	assert.ErrorIs(t, board.MoveTask(task.ID, bson.NewObjectID()), ErrListNotFound)

	// Failed move leaves the task in place.
	_, still := board.FindTask(task.ID)
	assert.NotNil(t, still)
}

func TestBoard_AddComment(t *testing.T) {
	board := newTestBoard()
	list := board.CreateList("To Do")
	task, err := board.AddTask(list.ID, Task{Title: "discuss"})
	require.NoError(t, err)

	commented, err := board.AddComment(task.ID, "alice", "looks good")
	require.NoError(t, err)
	require.Len(t, commented.Comments, 1)
	assert.Equal(t, "alice", commented.Comments[0].UserID)
	assert.Equal(t, "looks good", commented.Comments[0].Text)

	_, err = board.AddComment(bson.NewObjectID(), "alice", "lost")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}
