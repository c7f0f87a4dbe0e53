package attendance

import "context"

type Service interface {
	CheckIn(ctx context.Context, req CheckInRequest) (SessionResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (SessionResponse, error)
	CorrectSession(ctx context.Context, req CorrectSessionRequest) (SessionResponse, error)
	GetSession(ctx context.Context, id string) (SessionResponse, error)
}
