package graphql_api

import "github.com/graphql-go/graphql"

// Output types mirror the REST DTOs; field names follow the json tags so the
// default resolver can walk the structs.

var memberType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Member",
	Fields: graphql.Fields{
		"user_id": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"role":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var workspaceType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Workspace",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"owner":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"members":     &graphql.Field{Type: graphql.NewList(memberType)},
		"channels":    &graphql.Field{Type: graphql.NewList(graphql.ID)},
		"invite_code": &graphql.Field{Type: graphql.String},
		"created_at":  &graphql.Field{Type: graphql.DateTime},
		"updated_at":  &graphql.Field{Type: graphql.DateTime},
	},
})

var channelType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Channel",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"workspace_id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"type":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"created_at":   &graphql.Field{Type: graphql.DateTime},
	},
})

var inviteCodeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "InviteCode",
	Fields: graphql.Fields{
		"workspace_id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"invite_code":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var commentType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Comment",
	Fields: graphql.Fields{
		"user_id":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"text":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"created_at": &graphql.Field{Type: graphql.DateTime},
	},
})

var taskType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Task",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.String},
		"assigned_to": &graphql.Field{Type: graphql.String},
		"priority":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"due_date":    &graphql.Field{Type: graphql.DateTime},
		"comments":    &graphql.Field{Type: graphql.NewList(commentType)},
		"created_at":  &graphql.Field{Type: graphql.DateTime},
		"updated_at":  &graphql.Field{Type: graphql.DateTime},
	},
})

var listType = graphql.NewObject(graphql.ObjectConfig{
	Name: "List",
	Fields: graphql.Fields{
		"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"title": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"tasks": &graphql.Field{Type: graphql.NewList(taskType)},
	},
})

var boardType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Board",
	Fields: graphql.Fields{
		"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"channel_id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"title":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"lists":      &graphql.Field{Type: graphql.NewList(listType)},
		"created_at": &graphql.Field{Type: graphql.DateTime},
		"updated_at": &graphql.Field{Type: graphql.DateTime},
	},
})

var callSettingsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CallSettings",
	Fields: graphql.Fields{
		"video_enabled":          &graphql.Field{Type: graphql.Boolean},
		"audio_enabled":          &graphql.Field{Type: graphql.Boolean},
		"screen_sharing_enabled": &graphql.Field{Type: graphql.Boolean},
	},
})

var callType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Call",
	Fields: graphql.Fields{
		"id":               &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"room_id":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"type":             &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"participants":     &graphql.Field{Type: graphql.NewList(graphql.String)},
		"created_by":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"status":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"started_at":       &graphql.Field{Type: graphql.DateTime},
		"ended_at":         &graphql.Field{Type: graphql.DateTime},
		"duration_seconds": &graphql.Field{Type: graphql.Float},
		"settings":         &graphql.Field{Type: callSettingsType},
	},
})
