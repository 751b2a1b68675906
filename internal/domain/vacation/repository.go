package vacation

import "context"

type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	UpdateStatus(ctx context.Context, req Request) error
	List(ctx context.Context, filter RequestFilter) ([]Request, int64, error)
}

type RequestService interface {
	Submit(ctx context.Context, req CreateRequest) (RequestResponse, error)
	Get(ctx context.Context, id string) (RequestResponse, error)
	List(ctx context.Context, filter RequestFilter) (ListRequestsResponse, error)
	MyRequests(ctx context.Context, filter RequestFilter) (ListRequestsResponse, error)
	Approve(ctx context.Context, id string) (RequestResponse, error)
	Reject(ctx context.Context, req RejectRequest) (RequestResponse, error)
	Cancel(ctx context.Context, id string) (RequestResponse, error)
}
