// Package file stores uploaded files behind a small Storage interface with a
// local disk backend and an S3 backend.
//
// Uploads are validated by sniffing their content, never by trusting the
// client supplied Content-Type:
//
//	mimeType, err := file.ValidateImage(fh, file.DefaultMaxImageSize)
//	if err != nil {
//		return err
//	}
//	key, err := file.ProfileImageKey(userID, fh, mimeType)
//	if err != nil {
//		return err
//	}
//	stored, err := storage.Save(ctx, fh, key)
//
// Keys are slash separated and must not contain "..". LocalStorage writes to
// a temporary file and renames it into place. S3Storage works with AWS and
// S3-compatible services.
package file
