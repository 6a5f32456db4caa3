package services

import "context"

// persistentContext detaches follow-up work (event delivery) from the request's cancellation.
func persistentContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return context.WithoutCancel(ctx)
}
