// Package newsapi searches articles on NewsAPI (newsapi.org) and passes the
// reply through untouched.
package newsapi
