// Package binder decodes HTTP request bodies into typed structs.
//
// JSON binds application/json bodies through struct json tags. Form binds
// urlencoded and multipart bodies through form and file tags:
//
//	type UploadRequest struct {
//		Title string                `form:"title"`
//		Image *multipart.FileHeader `file:"profileImage"`
//	}
//
//	handler.Wrap(h, handler.WithBinders[handler.Context, UploadRequest](binder.Form(binder.DefaultMaxMemory)))
//
// Query binds URL parameters through query tags and can be combined with
// either body binder.
//
// Binders never alter decoded values. Canonicalization such as email
// lowercasing belongs to the service that owns the field.
package binder
