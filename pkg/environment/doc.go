// Package environment names the deployment stage (APP_ENV) and carries it
// through request contexts so logs and handlers can tell production from
// development.
//
//	env := environment.Parse(cfg.AppEnv)
//	r.Use(environment.Middleware(env))
package environment
