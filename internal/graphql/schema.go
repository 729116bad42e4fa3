package graphql_api

import (
	"github.com/graphql-go/graphql"

	"github.com/Mandalorian7773/Collabie/internal/dtos/board_dto"
	"github.com/Mandalorian7773/Collabie/internal/dtos/call_dto"
	"github.com/Mandalorian7773/Collabie/internal/dtos/workspace_dto"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"github.com/Mandalorian7773/Collabie/internal/middleware"
	board_service "github.com/Mandalorian7773/Collabie/internal/use-case/board-case"
	call_service "github.com/Mandalorian7773/Collabie/internal/use-case/call-case"
	workspace_service "github.com/Mandalorian7773/Collabie/internal/use-case/workspace-case"
	"github.com/Mandalorian7773/Collabie/state"
)

// Resolver bundles the services the schema dispatches to.
type Resolver struct {
	Workspaces workspace_service.WorkspaceServiceContract
	Boards     board_service.BoardServiceContract
	Calls      call_service.CallServiceContract
}

func NewResolver(appState *state.AppState) *Resolver {
	return &Resolver{
		Workspaces: workspace_service.NewWorkspaceService(appState),
		Boards:     board_service.NewBoardService(appState),
		Calls:      call_service.NewCallService(appState),
	}
}

func userID(p graphql.ResolveParams) (string, *app_error.AppError) {
	claims, appErr := middleware.ClaimsFromContext(p.Context)
	if appErr != nil {
		return "", appErr
	}
	return claims.Sub, nil
}

func stringArg(p graphql.ResolveParams, name string) string {
	v, _ := p.Args[name].(string)
	return v
}

func optStringArg(p graphql.ResolveParams, name string) *string {
	v, ok := p.Args[name].(string)
	if !ok {
		return nil
	}
	return &v
}

func NewSchema(r *Resolver) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"myWorkspaces": &graphql.Field{
				Type: graphql.NewList(workspaceType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					uid, appErr := userID(p)
					if appErr != nil {
						return nil, appErr
					}
					resp, err := r.Workspaces.ListForUser(p.Context, uid)
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
			"workspace": &graphql.Field{
				Type: workspaceType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					uid, appErr := userID(p)
					if appErr != nil {
						return nil, appErr
					}
					resp, err := r.Workspaces.Get(p.Context, stringArg(p, "id"), uid)
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
			"workspaceByInviteCode": &graphql.Field{
				Type: workspaceType,
				Args: graphql.FieldConfigArgument{
					"invite_code": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if _, appErr := userID(p); appErr != nil {
						return nil, appErr
					}
					resp, err := r.Workspaces.GetByInviteCode(p.Context, stringArg(p, "invite_code"))
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
			"channels": &graphql.Field{
				Type: graphql.NewList(channelType),
				Args: graphql.FieldConfigArgument{
					"workspace_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					uid, appErr := userID(p)
					if appErr != nil {
						return nil, appErr
					}
					resp, err := r.Workspaces.ListChannels(p.Context, stringArg(p, "workspace_id"), uid)
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
			"boardByChannel": &graphql.Field{
				Type: boardType,
				Args: graphql.FieldConfigArgument{
					"channel_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					uid, appErr := userID(p)
					if appErr != nil {
						return nil, appErr
					}
					resp, err := r.Boards.GetByChannel(p.Context, stringArg(p, "channel_id"), uid)
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
			"call": &graphql.Field{
				Type: callType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if _, appErr := userID(p); appErr != nil {
						return nil, appErr
					}
					resp, err := r.Calls.Get(p.Context, stringArg(p, "id"))
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
			"activeCallsByRoom": &graphql.Field{
				Type: graphql.NewList(callType),
				Args: graphql.FieldConfigArgument{
					"room_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if _, appErr := userID(p); appErr != nil {
						return nil, appErr
					}
					resp, err := r.Calls.ActiveByRoom(p.Context, stringArg(p, "room_id"))
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
			"myActiveCalls": &graphql.Field{
				Type: graphql.NewList(callType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					uid, appErr := userID(p)
					if appErr != nil {
						return nil, appErr
					}
					resp, err := r.Calls.ActiveByUser(p.Context, uid)
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createWorkspace": &graphql.Field{
				Type: workspaceType,
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					uid, appErr := userID(p)
					if appErr != nil {
						return nil, appErr
					}
					resp, err := r.Workspaces.Create(p.Context, workspace_dto.CreateWorkspaceRequest{Name: stringArg(p, "name")}, uid)
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
			"generateInviteCode": &graphql.Field{
				Type: inviteCodeType,
				Args: graphql.FieldConfigArgument{
					"workspace_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					uid, appErr := userID(p)
					if appErr != nil {
						return nil, appErr
					}
					resp, err := r.Workspaces.GenerateInviteCode(p.Context, stringArg(p, "workspace_id"), uid)
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
			"joinWorkspace": &graphql.Field{
				Type: workspaceType,
				Args: graphql.FieldConfigArgument{
					"invite_code": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					uid, appErr := userID(p)
					if appErr != nil {
						return nil, appErr
					}
					resp, err := r.Workspaces.Join(p.Context, workspace_dto.JoinWorkspaceRequest{InviteCode: stringArg(p, "invite_code")}, uid)
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
			"updateMemberRole": &graphql.Field{
				Type: workspaceType,
				Args: graphql.FieldConfigArgument{
					"workspace_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"user_id":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"role":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					uid, appErr := userID(p)
					if appErr != nil {
						return nil, appErr
					}
					req := workspace_dto.UpdateMemberRoleRequest{
						UserID: stringArg(p, "user_id"),
						Role:   stringArg(p, "role"),
					}
					resp, err := r.Workspaces.UpdateMemberRole(p.Context, stringArg(p, "workspace_id"), req, uid)
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
			"leaveWorkspace": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"workspace_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					uid, appErr := userID(p)
					if appErr != nil {
						return nil, appErr
					}
					if err := r.Workspaces.Leave(p.Context, stringArg(p, "workspace_id"), uid); err != nil {
						return nil, err
					}
					return true, nil
				},
			},
			"createChannel": &graphql.Field{
				Type: channelType,
				Args: graphql.FieldConfigArgument{
					"workspace_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"name":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"type":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					uid, appErr := userID(p)
					if appErr != nil {
						return nil, appErr
					}
					req := workspace_dto.CreateChannelRequest{
						Name: stringArg(p, "name"),
						Type: stringArg(p, "type"),
					}
					resp, err := r.Workspaces.CreateChannel(p.Context, stringArg(p, "workspace_id"), req, uid)
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
			"deleteChannel": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"workspace_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"channel_id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					uid, appErr := userID(p)
					if appErr != nil {
						return nil, appErr
					}
					if err := r.Workspaces.DeleteChannel(p.Context, stringArg(p, "workspace_id"), stringArg(p, "channel_id"), uid); err != nil {
						return nil, err
					}
					return true, nil
				},
			},
			"createBoard": &graphql.Field{
				Type: boardType,
				Args: graphql.FieldConfigArgument{
					"channel_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"title":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					uid, appErr := userID(p)
					if appErr != nil {
						return nil, appErr
					}
					resp, err := r.Boards.Create(p.Context, stringArg(p, "channel_id"), board_dto.CreateBoardRequest{Title: stringArg(p, "title")}, uid)
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
			"createList": &graphql.Field{
				Type: boardType,
				Args: graphql.FieldConfigArgument{
					"board_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"title":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					uid, appErr := userID(p)
					if appErr != nil {
						return nil, appErr
					}
					resp, err := r.Boards.CreateList(p.Context, stringArg(p, "board_id"), board_dto.CreateListRequest{Title: stringArg(p, "title")}, uid)
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
			"addTask": &graphql.Field{
				Type: boardType,
				Args: graphql.FieldConfigArgument{
					"board_id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"list_id":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"title":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"assigned_to": &graphql.ArgumentConfig{Type: graphql.String},
					"priority":    &graphql.ArgumentConfig{Type: graphql.String},
					"due_date":    &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					uid, appErr := userID(p)
					if appErr != nil {
						return nil, appErr
					}
					req := board_dto.AddTaskRequest{
						ListID:      stringArg(p, "list_id"),
						Title:       stringArg(p, "title"),
						Description: stringArg(p, "description"),
						AssignedTo:  optStringArg(p, "assigned_to"),
						Priority:    stringArg(p, "priority"),
						DueDate:     optStringArg(p, "due_date"),
					}
					resp, err := r.Boards.AddTask(p.Context, stringArg(p, "board_id"), req, uid)
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
			"updateTask": &graphql.Field{
				Type: boardType,
				Args: graphql.FieldConfigArgument{
					"board_id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"task_id":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"title":       &graphql.ArgumentConfig{Type: graphql.String},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"assigned_to": &graphql.ArgumentConfig{Type: graphql.String},
					"priority":    &graphql.ArgumentConfig{Type: graphql.String},
					"due_date":    &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					uid, appErr := userID(p)
					if appErr != nil {
						return nil, appErr
					}
					req := board_dto.UpdateTaskRequest{
						Title:       optStringArg(p, "title"),
						Description: optStringArg(p, "description"),
						AssignedTo:  optStringArg(p, "assigned_to"),
						Priority:    optStringArg(p, "priority"),
						DueDate:     optStringArg(p, "due_date"),
					}
					resp, err := r.Boards.UpdateTask(p.Context, stringArg(p, "board_id"), stringArg(p, "task_id"), req, uid)
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
			"moveTask": &graphql.Field{
				Type: boardType,
				Args: graphql.FieldConfigArgument{
					"board_id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"task_id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"to_list_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					uid, appErr := userID(p)
					if appErr != nil {
						return nil, appErr
					}
					req := board_dto.MoveTaskRequest{ToListID: stringArg(p, "to_list_id")}
					resp, err := r.Boards.MoveTask(p.Context, stringArg(p, "board_id"), stringArg(p, "task_id"), req, uid)
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
			"addComment": &graphql.Field{
				Type: boardType,
				Args: graphql.FieldConfigArgument{
					"board_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"task_id":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"text":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					uid, appErr := userID(p)
					if appErr != nil {
						return nil, appErr
					}
					req := board_dto.AddCommentRequest{Text: stringArg(p, "text")}
					resp, err := r.Boards.AddComment(p.Context, stringArg(p, "board_id"), stringArg(p, "task_id"), req, uid)
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
			"startCall": &graphql.Field{
				Type: callType,
				Args: graphql.FieldConfigArgument{
					"room_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"type":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					uid, appErr := userID(p)
					if appErr != nil {
						return nil, appErr
					}
					req := call_dto.StartCallRequest{
						RoomID: stringArg(p, "room_id"),
						Type:   stringArg(p, "type"),
					}
					resp, err := r.Calls.Start(p.Context, req, uid)
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
			"endCall": &graphql.Field{
				Type: callType,
				Args: graphql.FieldConfigArgument{
					"call_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"status":  &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					uid, appErr := userID(p)
					if appErr != nil {
						return nil, appErr
					}
					resp, err := r.Calls.End(p.Context, stringArg(p, "call_id"), stringArg(p, "status"), uid)
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
			"joinCall": &graphql.Field{
				Type: callType,
				Args: graphql.FieldConfigArgument{
					"call_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					uid, appErr := userID(p)
					if appErr != nil {
						return nil, appErr
					}
					resp, err := r.Calls.Join(p.Context, stringArg(p, "call_id"), uid)
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
			"leaveCall": &graphql.Field{
				Type: callType,
				Args: graphql.FieldConfigArgument{
					"call_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					uid, appErr := userID(p)
					if appErr != nil {
						return nil, appErr
					}
					resp, err := r.Calls.Leave(p.Context, stringArg(p, "call_id"), uid)
					if err != nil {
						return nil, err
					}
					return resp, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
