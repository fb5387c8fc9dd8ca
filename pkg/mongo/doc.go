// Package mongo connects to MongoDB and stores user accounts.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	users := mongo.NewUserStorage(db)
//	if err := users.EnsureIndexes(ctx); err != nil {
//		return err
//	}
//
// UserStorage implements auth.Storage. Email is unique; googleId and steamId
// are unique among accounts that have them (sparse indexes), so the database
// enforces one account per provider identity even under concurrent sign-ins.
// Unique violations are returned as *auth.DuplicateKeyError naming the field.
package mongo
