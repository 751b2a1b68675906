package tool

import "context"

type ToolRepository interface {
	Create(ctx context.Context, t Tool) (Tool, error)
	GetByID(ctx context.Context, id string) (Tool, error)
	Update(ctx context.Context, t Tool) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ToolFilter) ([]Tool, int64, error)
}

type ToolService interface {
	Create(ctx context.Context, req CreateToolRequest) (ToolResponse, error)
	Get(ctx context.Context, id string) (ToolResponse, error)
	Update(ctx context.Context, req UpdateToolRequest) (ToolResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ToolFilter) (ListToolsResponse, error)
	Assign(ctx context.Context, req AssignToolRequest) (ToolResponse, error)
	Return(ctx context.Context, id string) (ToolResponse, error)
}
