// Package redis connects to Redis and implements the one-time value store
// used for OAuth state and login exchange codes.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := redis.NewOnceStore(client, cfg.KeyPrefix)
//
// OnceStore satisfies auth.OnceStore without importing it.
package redis
